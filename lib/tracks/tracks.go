// Package tracks decodes reconstructed flight trajectories from the
// /tracks/all endpoint. The envelope is a keyed object, the waypoints inside
// it are positional six element arrays, or keyed objects in the canonical
// form.
package tracks

import (
	"fmt"
	"strconv"

	jsoniter "github.com/json-iterator/go"

	"plane.watch/opensky/lib/wire"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// index -> field table for the positional waypoint array
const (
	wpTimeField         = 0
	wpLatitudeField     = 1
	wpLongitudeField    = 2
	wpBaroAltitudeField = 3
	wpTrueTrackField    = 4
	wpOnGroundField     = 5

	waypointLen = 6
)

type (
	// FlightTrack is the trajectory of one aircraft around a given time.
	FlightTrack struct {
		// Icao24 is the unique 24-bit transponder address as a lower case hex
		// string.
		Icao24 string
		// StartTime and EndTime are the times of the first and last waypoint
		// in seconds since epoch. The endpoint reports these as floating
		// point, unlike the integer timestamps everywhere else.
		StartTime float64
		EndTime   float64
		// Callsign that holds for the whole track.
		Callsign *string
		// Path holds the sampled waypoints in order.
		Path []Waypoint
	}

	// Waypoint is one sampled point of a trajectory.
	Waypoint struct {
		// Time is the unix timestamp the waypoint is associated with.
		Time uint64
		// Latitude and Longitude are WGS-84 decimal degrees.
		Latitude  *float64
		Longitude *float64
		// BaroAltitude is the barometric altitude in meters.
		BaroAltitude *float64
		// TrueTrack in decimal degrees clockwise from north.
		TrueTrack *float64
		// OnGround indicates the position came from a surface position report.
		OnGround bool
	}
)

// Decode parses a /tracks response body. A null path decodes to an empty
// slice.
func Decode(body []byte) (*FlightTrack, error) {
	var raw map[string]any
	if err := json.Unmarshal(body, &raw); nil != err {
		return nil, fmt.Errorf("track response: %w", err)
	}
	f := wire.Object(raw)

	track := &FlightTrack{Path: []Waypoint{}}
	var err error
	if track.Icao24, err = f.ReqString(-1, "icao24"); nil != err {
		return nil, err
	}
	if track.StartTime, err = f.ReqFloat(-1, "start_time"); nil != err {
		return nil, err
	}
	if track.EndTime, err = f.ReqFloat(-1, "end_time"); nil != err {
		return nil, err
	}
	if track.Callsign, err = f.OptString(-1, "callsign"); nil != err {
		return nil, err
	}

	pathValue := f.Value(-1, "path")
	if nil == pathValue {
		return track, nil
	}
	points, ok := pathValue.([]any)
	if !ok {
		return nil, &wire.FieldError{Field: "path", Index: -1, Want: "array or null", Got: pathValue}
	}
	for i, pv := range points {
		wp, err := decodeWaypoint(pv)
		if nil != err {
			return nil, fmt.Errorf("path[%d]: %w", i, err)
		}
		track.Path = append(track.Path, *wp)
	}
	return track, nil
}

func decodeWaypoint(v any) (*Waypoint, error) {
	var f wire.Fields
	switch rec := v.(type) {
	case []any:
		if waypointLen != len(rec) {
			return nil, &wire.LengthError{Want: strconv.Itoa(waypointLen), Got: len(rec)}
		}
		f = wire.Array(rec)
	case map[string]any:
		f = wire.Object(rec)
	default:
		return nil, &wire.FieldError{Field: "waypoint", Index: -1, Want: "array or object", Got: v}
	}

	wp := &Waypoint{}
	var err error
	if wp.Time, err = f.ReqUint(wpTimeField, "time"); nil != err {
		return nil, err
	}
	if wp.Latitude, err = f.OptFloat(wpLatitudeField, "latitude"); nil != err {
		return nil, err
	}
	if wp.Longitude, err = f.OptFloat(wpLongitudeField, "longitude"); nil != err {
		return nil, err
	}
	if wp.BaroAltitude, err = f.OptFloat(wpBaroAltitudeField, "baro_altitude"); nil != err {
		return nil, err
	}
	if wp.TrueTrack, err = f.OptFloat(wpTrueTrackField, "true_track"); nil != err {
		return nil, err
	}
	if wp.OnGround, err = f.ReqBool(wpOnGroundField, "on_ground"); nil != err {
		return nil, err
	}
	return wp, nil
}

// the canonical keyed representation
type (
	trackJSON struct {
		Icao24    string         `json:"icao24"`
		StartTime float64        `json:"start_time"`
		EndTime   float64        `json:"end_time"`
		Callsign  *string        `json:"callsign"`
		Path      []waypointJSON `json:"path"`
	}

	waypointJSON struct {
		Time         uint64   `json:"time"`
		Latitude     *float64 `json:"latitude"`
		Longitude    *float64 `json:"longitude"`
		BaroAltitude *float64 `json:"baro_altitude"`
		TrueTrack    *float64 `json:"true_track"`
		OnGround     bool     `json:"on_ground"`
	}
)

// EncodeCanonical renders the track in its keyed object form, waypoints
// included. Decoding the result yields an equal value.
func EncodeCanonical(track *FlightTrack) ([]byte, error) {
	out := trackJSON{
		Icao24:    track.Icao24,
		StartTime: track.StartTime,
		EndTime:   track.EndTime,
		Callsign:  track.Callsign,
		Path:      make([]waypointJSON, 0, len(track.Path)),
	}
	for _, wp := range track.Path {
		out.Path = append(out.Path, waypointJSON{
			Time:         wp.Time,
			Latitude:     wp.Latitude,
			Longitude:    wp.Longitude,
			BaroAltitude: wp.BaroAltitude,
			TrueTrack:    wp.TrueTrack,
			OnGround:     wp.OnGround,
		})
	}
	return json.Marshal(out)
}
