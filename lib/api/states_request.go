package api

import (
	"net/http"
	"net/url"
	"strconv"

	"plane.watch/opensky/lib/states"
)

// StateRequestBuilder describes one query against the /states endpoints.
type StateRequestBuilder struct {
	api     *API
	time    *uint64
	bbox    *BoundingBox
	icao24s []string
	serials []uint64
}

// GetStates starts a state vector request. With no further filters it returns
// every aircraft currently tracked.
func (a *API) GetStates() *StateRequestBuilder {
	return &StateRequestBuilder{api: a}
}

// AtTime pins the snapshot time, in seconds since epoch. How far back this
// may reach depends on the account's access to historical data.
func (r *StateRequestBuilder) AtTime(ts uint64) *StateRequestBuilder {
	r.time = &ts
	return r
}

// WithIcao24 filters by a transponder address in hex string form, e.g.
// "3c6444". May be called repeatedly to include more aircraft.
func (r *StateRequestBuilder) WithIcao24(address string) *StateRequestBuilder {
	r.icao24s = append(r.icao24s, address)
	return r
}

// WithBBox limits results to the given area, replacing any earlier box.
func (r *StateRequestBuilder) WithBBox(bbox BoundingBox) *StateRequestBuilder {
	r.bbox = &bbox
	return r
}

// WithSerial limits results to data from one of your own receivers and
// switches to the /states/own endpoint, which is not rate limited. The serial
// must be registered to the authenticated account or the server answers 403.
func (r *StateRequestBuilder) WithSerial(serial uint64) *StateRequestBuilder {
	r.serials = append(r.serials, serial)
	return r
}

// Send fetches and decodes the state vectors this builder describes.
func (r *StateRequestBuilder) Send() (*states.States, error) {
	query := url.Values{}
	if nil != r.time {
		query.Set("time", strconv.FormatUint(*r.time, 10))
	}
	if nil != r.bbox {
		query.Set("lamin", formatCoord(r.bbox.LatMin))
		query.Set("lamax", formatCoord(r.bbox.LatMax))
		query.Set("lomin", formatCoord(r.bbox.LonMin))
		query.Set("lomax", formatCoord(r.bbox.LonMax))
	}
	for _, address := range r.icao24s {
		query.Add("icao24", address)
	}

	endpoint := "/states/all"
	if len(r.serials) > 0 {
		endpoint = "/states/own"
		for _, serial := range r.serials {
			query.Add("serials", strconv.FormatUint(serial, 10))
		}
	}

	status, body, err := r.api.fetcher.Fetch(r.api.endpoint(endpoint, query))
	if nil != err {
		return nil, err
	}
	if http.StatusOK != status {
		return nil, &StatusError{Code: status}
	}
	return states.Decode(body, r.time)
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
