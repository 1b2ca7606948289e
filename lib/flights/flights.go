// Package flights decodes historical flight summaries from the /flights
// endpoints. Unlike states and tracks these records are keyed objects on the
// wire, but the keys are lowerCamelCase while the canonical form below uses
// snake_case; both decode identically.
package flights

import (
	"fmt"

	jsoniter "github.com/json-iterator/go"

	"plane.watch/opensky/lib/wire"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Flight is one estimated flight of one aircraft.
type Flight struct {
	// Icao24 is the unique 24-bit transponder address as a lower case hex
	// string.
	Icao24 string
	// FirstSeen and LastSeen are the estimated departure and arrival times as
	// unix timestamps.
	FirstSeen uint64
	LastSeen  uint64
	// EstDepartureAirport and EstArrivalAirport are ICAO codes, nil when the
	// airport could not be identified.
	EstDepartureAirport *string
	EstArrivalAirport   *string
	// Callsign seen most frequently during the flight.
	Callsign *string
	// Distances in meters from the last received airborne position to the
	// estimated airports.
	EstDepartureAirportHorizDistance *uint32
	EstDepartureAirportVertDistance  *uint32
	EstArrivalAirportHorizDistance   *uint32
	EstArrivalAirportVertDistance    *uint32
	// Counts of other plausible airports in short distance of the estimates.
	DepartureAirportCandidatesCount uint16
	ArrivalAirportCandidatesCount   uint16
}

// Decode parses a /flights response body into its flight records.
func Decode(body []byte) ([]Flight, error) {
	var raws []any
	if err := json.Unmarshal(body, &raws); nil != err {
		return nil, fmt.Errorf("flights response: %w", err)
	}
	out := make([]Flight, 0, len(raws))
	for i, rv := range raws {
		fl, err := decodeFlight(rv)
		if nil != err {
			return nil, fmt.Errorf("flights[%d]: %w", i, err)
		}
		out = append(out, *fl)
	}
	return out, nil
}

func decodeFlight(v any) (*Flight, error) {
	m, ok := v.(map[string]any)
	if !ok {
		return nil, &wire.FieldError{Field: "flight", Index: -1, Want: "object", Got: v}
	}
	f := wire.Object(m)

	fl := &Flight{}
	var err error
	if fl.Icao24, err = f.ReqString(-1, "icao24"); nil != err {
		return nil, err
	}
	if fl.FirstSeen, err = f.ReqUint(-1, "first_seen"); nil != err {
		return nil, err
	}
	if fl.LastSeen, err = f.ReqUint(-1, "last_seen"); nil != err {
		return nil, err
	}
	if fl.EstDepartureAirport, err = f.OptString(-1, "est_departure_airport"); nil != err {
		return nil, err
	}
	if fl.EstArrivalAirport, err = f.OptString(-1, "est_arrival_airport"); nil != err {
		return nil, err
	}
	if fl.Callsign, err = f.OptString(-1, "callsign"); nil != err {
		return nil, err
	}
	if fl.EstDepartureAirportHorizDistance, err = optUint32(f, "est_departure_airport_horiz_distance"); nil != err {
		return nil, err
	}
	if fl.EstDepartureAirportVertDistance, err = optUint32(f, "est_departure_airport_vert_distance"); nil != err {
		return nil, err
	}
	if fl.EstArrivalAirportHorizDistance, err = optUint32(f, "est_arrival_airport_horiz_distance"); nil != err {
		return nil, err
	}
	if fl.EstArrivalAirportVertDistance, err = optUint32(f, "est_arrival_airport_vert_distance"); nil != err {
		return nil, err
	}
	var count uint64
	if count, err = f.ReqUint(-1, "departure_airport_candidates_count"); nil != err {
		return nil, err
	}
	fl.DepartureAirportCandidatesCount = uint16(count)
	if count, err = f.ReqUint(-1, "arrival_airport_candidates_count"); nil != err {
		return nil, err
	}
	fl.ArrivalAirportCandidatesCount = uint16(count)

	return fl, nil
}

func optUint32(f wire.Fields, name string) (*uint32, error) {
	u, err := f.OptUint(-1, name)
	if nil != err || nil == u {
		return nil, err
	}
	v := uint32(*u)
	return &v, nil
}

// the canonical snake_case representation
type flightJSON struct {
	Icao24                           string  `json:"icao24"`
	FirstSeen                        uint64  `json:"first_seen"`
	EstDepartureAirport              *string `json:"est_departure_airport"`
	LastSeen                         uint64  `json:"last_seen"`
	EstArrivalAirport                *string `json:"est_arrival_airport"`
	Callsign                         *string `json:"callsign"`
	EstDepartureAirportHorizDistance *uint32 `json:"est_departure_airport_horiz_distance"`
	EstDepartureAirportVertDistance  *uint32 `json:"est_departure_airport_vert_distance"`
	EstArrivalAirportHorizDistance   *uint32 `json:"est_arrival_airport_horiz_distance"`
	EstArrivalAirportVertDistance    *uint32 `json:"est_arrival_airport_vert_distance"`
	DepartureAirportCandidatesCount  uint16  `json:"departure_airport_candidates_count"`
	ArrivalAirportCandidatesCount    uint16  `json:"arrival_airport_candidates_count"`
}

// EncodeCanonical renders the flights with snake_case keys. Decoding the
// result yields equal records.
func EncodeCanonical(records []Flight) ([]byte, error) {
	out := make([]flightJSON, 0, len(records))
	for _, fl := range records {
		out = append(out, flightJSON{
			Icao24:                           fl.Icao24,
			FirstSeen:                        fl.FirstSeen,
			EstDepartureAirport:              fl.EstDepartureAirport,
			LastSeen:                         fl.LastSeen,
			EstArrivalAirport:                fl.EstArrivalAirport,
			Callsign:                         fl.Callsign,
			EstDepartureAirportHorizDistance: fl.EstDepartureAirportHorizDistance,
			EstDepartureAirportVertDistance:  fl.EstDepartureAirportVertDistance,
			EstArrivalAirportHorizDistance:   fl.EstArrivalAirportHorizDistance,
			EstArrivalAirportVertDistance:    fl.EstArrivalAirportVertDistance,
			DepartureAirportCandidatesCount:  fl.DepartureAirportCandidatesCount,
			ArrivalAirportCandidatesCount:    fl.ArrivalAirportCandidatesCount,
		})
	}
	return json.Marshal(out)
}
