package api

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/rs/zerolog/log"

	"plane.watch/opensky/lib/flights"
)

// documented maximum query intervals per flights endpoint, in seconds
const (
	maxIntervalAll      = 2 * 60 * 60
	maxIntervalAircraft = 30 * 24 * 60 * 60
	maxIntervalAirport  = 7 * 24 * 60 * 60
)

// FlightsRequestBuilder describes one query against the /flights endpoints.
type FlightsRequestBuilder struct {
	api        *API
	begin, end uint64
	endpoint   string
	filterKey  string
	filterVal  string
}

// GetFlights starts a flights request for the given interval, in seconds
// since epoch. Unfiltered queries must not span more than two hours.
func (a *API) GetFlights(begin, end uint64) *FlightsRequestBuilder {
	return &FlightsRequestBuilder{api: a, begin: begin, end: end, endpoint: "all"}
}

// InInterval replaces the query interval, letting one builder be reused.
func (r *FlightsRequestBuilder) InInterval(begin, end uint64) *FlightsRequestBuilder {
	r.begin = begin
	r.end = end
	return r
}

// ByAircraft filters by a transponder address in hex string form. The
// interval may span up to 30 days.
func (r *FlightsRequestBuilder) ByAircraft(address string) *FlightsRequestBuilder {
	r.endpoint = "aircraft"
	r.filterKey = "icao24"
	r.filterVal = address
	return r
}

// ByArrival filters by arrival airport, given as a 4-letter ICAO code. The
// interval may span up to 7 days.
func (r *FlightsRequestBuilder) ByArrival(airportIcao string) *FlightsRequestBuilder {
	r.endpoint = "arrival"
	r.filterKey = "airport"
	r.filterVal = airportIcao
	return r
}

// ByDeparture filters by departure airport, given as a 4-letter ICAO code.
// The interval may span up to 7 days.
func (r *FlightsRequestBuilder) ByDeparture(airportIcao string) *FlightsRequestBuilder {
	r.endpoint = "departure"
	r.filterKey = "airport"
	r.filterVal = airportIcao
	return r
}

func (r *FlightsRequestBuilder) maxInterval() uint64 {
	switch r.endpoint {
	case "aircraft":
		return maxIntervalAircraft
	case "arrival", "departure":
		return maxIntervalAirport
	default:
		return maxIntervalAll
	}
}

// Send fetches and decodes the flights this builder describes. The server
// answers 404 when no flights matched; that decodes to an empty slice, not an
// error.
func (r *FlightsRequestBuilder) Send() ([]flights.Flight, error) {
	if interval := r.end - r.begin; interval > r.maxInterval() {
		log.Warn().
			Uint64("interval", interval).
			Uint64("limit", r.maxInterval()).
			Msg("Flights query interval exceeds the documented limit")
	}

	query := url.Values{}
	query.Set("begin", strconv.FormatUint(r.begin, 10))
	query.Set("end", strconv.FormatUint(r.end, 10))
	if "" != r.filterKey {
		query.Set(r.filterKey, r.filterVal)
	}

	status, body, err := r.api.fetcher.Fetch(r.api.endpoint("/flights/"+r.endpoint, query))
	if nil != err {
		return nil, err
	}
	switch status {
	case http.StatusOK:
		return flights.Decode(body)
	case http.StatusNotFound:
		return []flights.Flight{}, nil
	default:
		return nil, &StatusError{Code: status}
	}
}
