package states

import (
	"fmt"
	"strconv"

	jsoniter "github.com/json-iterator/go"
	"github.com/rs/zerolog/log"

	"plane.watch/opensky/lib/wire"
)

// canonical encodes must stay byte exact, ConfigFastest's lossy floats would
// mangle coordinates
var json = jsoniter.ConfigCompatibleWithStandardLibrary

// index -> field table for the positional states array
const (
	svIcaoField           = 0
	svCallsignField       = 1
	svOriginCountryField  = 2
	svTimePositionField   = 3
	svLastContactField    = 4
	svLongitudeField      = 5
	svLatitudeField       = 6
	svBaroAltitudeField   = 7
	svOnGroundField       = 8
	svVelocityField       = 9
	svTrueTrackField      = 10
	svVerticalRateField   = 11
	svSensorsField        = 12
	svGeoAltitudeField    = 13
	svSquawkField         = 14
	svSpiField            = 15
	svPositionSourceField = 16
	svCategoryField       = 17

	shortFormLen = 17
	longFormLen  = 18
)

// VariantError reports that the states array matched no known schema variant.
// Both attempts are kept so operators can tell which side drifted.
type VariantError struct {
	Primary     Form
	PrimaryErr  error
	Fallback    Form
	FallbackErr error
}

func (e *VariantError) Error() string {
	return fmt.Sprintf("state vectors match no known schema variant; %s form: %v; %s form: %v",
		e.Primary, e.PrimaryErr, e.Fallback, e.FallbackErr)
}

func (e *VariantError) Unwrap() error {
	return e.PrimaryErr
}

// Decode parses a /states response body.
//
// The nested records are positional and exist in two historical variants.
// When requestedTime is nil the 18 element long form is attempted first,
// falling back to the 17 element short form against the same bytes. When the
// caller pinned a time the order is reversed, since archived snapshots only
// ever use the short form. The ordering is a deliberate heuristic for an
// undocumented schema that has changed without notice; the branch taken is
// recorded on the result.
//
// A null states collection decodes to an empty slice. A null time is replaced
// with requestedTime when one was given; that substitution and the enum
// fallbacks are the only places this decoder tolerates bad data silently.
func Decode(body []byte, requestedTime *uint64) (*States, error) {
	var raw struct {
		Time   *uint64 `json:"time"`
		States []any   `json:"states"`
	}
	if err := json.Unmarshal(body, &raw); nil != err {
		return nil, fmt.Errorf("states response: %w", err)
	}

	out := &States{States: []StateVector{}}
	switch {
	case nil != raw.Time:
		out.Time = *raw.Time
	case nil != requestedTime:
		out.Time = *requestedTime
		out.Anomalies.Notef("time", "null in response, substituted requested time %d", *requestedTime)
	default:
		return nil, &wire.FieldError{Field: "time", Index: -1, Want: "unsigned integer", Got: nil}
	}

	if 0 == len(raw.States) {
		return out, nil
	}

	primary, secondary := FormLong, FormShort
	if nil != requestedTime {
		primary, secondary = FormShort, FormLong
	}

	vectors, anomalies, err := decodeVectors(raw.States, primary)
	if nil == err {
		out.Form = primary
		out.States = vectors
		out.Anomalies = append(out.Anomalies, anomalies...)
		return out, nil
	}

	vectors, anomalies, fbErr := decodeVectors(raw.States, secondary)
	if nil != fbErr {
		return nil, &VariantError{Primary: primary, PrimaryErr: err, Fallback: secondary, FallbackErr: fbErr}
	}
	log.Warn().
		Str("primary", string(primary)).
		Str("fallback", string(secondary)).
		Msg("State vector schema fallback")
	out.Anomalies.Notef("states", "%s form failed (%v), decoded as %s form", primary, err, secondary)
	out.Form = secondary
	out.Fallback = true
	out.States = vectors
	out.Anomalies = append(out.Anomalies, anomalies...)
	return out, nil
}

func decodeVectors(raws []any, form Form) ([]StateVector, wire.Anomalies, error) {
	vectors := make([]StateVector, 0, len(raws))
	var anomalies wire.Anomalies
	for i, rv := range raws {
		sv, err := decodeVector(rv, form, &anomalies)
		if nil != err {
			return nil, nil, fmt.Errorf("states[%d]: %w", i, err)
		}
		vectors = append(vectors, *sv)
	}
	return vectors, anomalies, nil
}

func decodeVector(v any, form Form, an *wire.Anomalies) (*StateVector, error) {
	var f wire.Fields
	withCategory := FormLong == form

	switch rec := v.(type) {
	case []any:
		want := longFormLen
		if FormShort == form {
			want = shortFormLen
		}
		if len(rec) != want {
			return nil, &wire.LengthError{Want: strconv.Itoa(want), Got: len(rec)}
		}
		f = wire.Array(rec)
	case map[string]any:
		f = wire.Object(rec)
		// the keyed shape always carries the field, possibly null
		withCategory = true
	default:
		return nil, &wire.FieldError{Field: "state vector", Index: -1, Want: "array or object", Got: v}
	}

	sv := &StateVector{}
	var err error
	if sv.Icao24, err = f.ReqString(svIcaoField, "icao24"); nil != err {
		return nil, err
	}
	if "" == sv.Icao24 {
		return nil, fmt.Errorf("field icao24: must not be empty")
	}
	if sv.Callsign, err = f.OptString(svCallsignField, "callsign"); nil != err {
		return nil, err
	}
	if sv.OriginCountry, err = f.ReqString(svOriginCountryField, "origin_country"); nil != err {
		return nil, err
	}
	if sv.TimePosition, err = f.OptUint(svTimePositionField, "time_position"); nil != err {
		return nil, err
	}
	if sv.LastContact, err = f.ReqUint(svLastContactField, "last_contact"); nil != err {
		return nil, err
	}
	if sv.Longitude, err = f.OptFloat(svLongitudeField, "longitude"); nil != err {
		return nil, err
	}
	if sv.Latitude, err = f.OptFloat(svLatitudeField, "latitude"); nil != err {
		return nil, err
	}
	if sv.BaroAltitude, err = f.OptFloat(svBaroAltitudeField, "baro_altitude"); nil != err {
		return nil, err
	}
	if sv.OnGround, err = f.ReqBool(svOnGroundField, "on_ground"); nil != err {
		return nil, err
	}
	if sv.Velocity, err = f.OptFloat(svVelocityField, "velocity"); nil != err {
		return nil, err
	}
	if sv.TrueTrack, err = f.OptFloat(svTrueTrackField, "true_track"); nil != err {
		return nil, err
	}
	if sv.VerticalRate, err = f.OptFloat(svVerticalRateField, "vertical_rate"); nil != err {
		return nil, err
	}
	if sv.Sensors, err = f.OptUints(svSensorsField, "sensors"); nil != err {
		return nil, err
	}
	if sv.GeoAltitude, err = f.OptFloat(svGeoAltitudeField, "geo_altitude"); nil != err {
		return nil, err
	}
	if sv.Squawk, err = f.OptString(svSquawkField, "squawk"); nil != err {
		return nil, err
	}
	if sv.Spi, err = f.ReqBool(svSpiField, "spi"); nil != err {
		return nil, err
	}
	psv, err := f.Req(svPositionSourceField, "position_source")
	if nil != err {
		return nil, err
	}
	sv.PositionSource = DecodePositionSource(psv, an)

	if withCategory {
		if cv := f.Value(svCategoryField, "category"); nil != cv {
			cat := DecodeAircraftCategory(cv, an)
			sv.Category = &cat
		}
	}

	return sv, nil
}
