package api

import (
	"fmt"
	"io"
	"net/http"
)

// Fetcher resolves a fully assembled URL into a status code and a body.
// Transport failures are returned unchanged; the client does not retry.
type Fetcher interface {
	Fetch(url string) (statusCode int, body []byte, err error)
}

// StatusError is returned when the server answers with a non-success status
// code. The body is not decoded in that case.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("server returned HTTP error code: %d", e.Code)
}

type httpFetcher struct {
	client *http.Client
}

func (h *httpFetcher) Fetch(reqURL string) (int, []byte, error) {
	resp, err := h.client.Get(reqURL)
	if nil != err {
		return 0, nil, err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if nil != err {
		return resp.StatusCode, nil, err
	}
	return resp.StatusCode, body, nil
}
