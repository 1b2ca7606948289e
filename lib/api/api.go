// Package api is a client for the OpenSky Network REST API
// https://openskynetwork.github.io/opensky-api/
//
// Transport is pluggable: the client assembles URLs, checks status codes and
// decodes bodies, nothing more. Retries, rate limiting and caching are left
// to the caller.
package api

import (
	"net/http"
	"net/url"
	"time"
)

const (
	apiHost     = "opensky-network.org"
	apiBasePath = "/api"
)

type (
	// API creates request builders for the OpenSky endpoints.
	API struct {
		login   *login
		fetcher Fetcher
	}

	login struct {
		user, pass string
	}

	Option func(*API)
)

// WithLogin embeds the account credentials in the request URLs. Anonymous
// access works too, with lower rate limits and no historical data.
func WithLogin(user, pass string) Option {
	return func(a *API) {
		a.login = &login{user: user, pass: pass}
	}
}

// WithFetcher replaces the HTTP transport, mostly for tests.
func WithFetcher(f Fetcher) Option {
	return func(a *API) {
		a.fetcher = f
	}
}

func New(opts ...Option) *API {
	a := &API{
		fetcher: &httpFetcher{client: &http.Client{Timeout: 30 * time.Second}},
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// endpoint assembles the full request URL, credentials included.
func (a *API) endpoint(path string, query url.Values) string {
	u := url.URL{
		Scheme:   "https",
		Host:     apiHost,
		Path:     apiBasePath + path,
		RawQuery: query.Encode(),
	}
	if nil != a.login {
		u.User = url.UserPassword(a.login.user, a.login.pass)
	}
	return u.String()
}
