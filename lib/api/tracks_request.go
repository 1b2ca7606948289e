package api

import (
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"

	"plane.watch/opensky/lib/tracks"
)

// tracks are only kept for 30 days
const maxTrackAge = 30 * 24 * 60 * 60

// TrackRequestBuilder describes one query against the /tracks endpoint.
type TrackRequestBuilder struct {
	api    *API
	icao24 string
	time   uint64
}

// GetTracks starts a trajectory request for the aircraft with the given
// transponder address in hex string form. Waypoints are a thinned-out
// selection of the aircraft's state vectors, showing the general movement
// pattern rather than every report.
func (a *API) GetTracks(icao24 string) *TrackRequestBuilder {
	return &TrackRequestBuilder{api: a, icao24: icao24}
}

// AtTime selects the flight whose track was active at the given unix
// timestamp. Zero, the default, means the live track.
func (r *TrackRequestBuilder) AtTime(ts uint64) *TrackRequestBuilder {
	r.time = ts
	return r
}

// Send fetches and decodes the track this builder describes.
func (r *TrackRequestBuilder) Send() (*tracks.FlightTrack, error) {
	if 0 != r.time {
		if age := uint64(time.Now().Unix()) - r.time; age > maxTrackAge {
			log.Warn().
				Uint64("age", age).
				Uint64("limit", uint64(maxTrackAge)).
				Msg("Track query reaches back beyond the documented limit")
		}
	}

	query := url.Values{}
	query.Set("icao24", r.icao24)
	query.Set("time", strconv.FormatUint(r.time, 10))

	status, body, err := r.api.fetcher.Fetch(r.api.endpoint("/tracks/all", query))
	if nil != err {
		return nil, err
	}
	if http.StatusOK != status {
		return nil, &StatusError{Code: status}
	}
	return tracks.Decode(body)
}
