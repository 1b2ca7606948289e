package states

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"plane.watch/opensky/lib/wire"
)

func TestMain(m *testing.M) {
	zerolog.SetGlobalLevel(zerolog.Disabled)
	m.Run()
}

func ptr[T any](v T) *T {
	return &v
}

// observed response of /states/all?time=1458564121&icao24=3c6444
const statesFixture = `{"time":1458564121,"states":[["3c6444","DLH9LF  ","Germany",1458564120,1458564120,6.1546,50.1964,9639.3,false,232.88,98.26,4.55,null,9547.86,"1000",false,0,null]]}`

// the same snapshot in its canonical keyed form
const statesCanonical = `{"time":1458564121,"states":[{"icao24":"3c6444","callsign":"DLH9LF  ","origin_country":"Germany","time_position":1458564120,"last_contact":1458564120,"longitude":6.1546,"latitude":50.1964,"baro_altitude":9639.3,"on_ground":false,"velocity":232.88,"true_track":98.26,"vertical_rate":4.55,"sensors":null,"geo_altitude":9547.86,"squawk":"1000","spi":false,"position_source":"ADSB","category":null}]}`

func fixtureVector() StateVector {
	return StateVector{
		Icao24:         "3c6444",
		Callsign:       ptr("DLH9LF  "),
		OriginCountry:  "Germany",
		TimePosition:   ptr(uint64(1458564120)),
		LastContact:    1458564120,
		Longitude:      ptr(6.1546),
		Latitude:       ptr(50.1964),
		BaroAltitude:   ptr(9639.3),
		OnGround:       false,
		Velocity:       ptr(232.88),
		TrueTrack:      ptr(98.26),
		VerticalRate:   ptr(4.55),
		GeoAltitude:    ptr(9547.86),
		Squawk:         ptr("1000"),
		Spi:            false,
		PositionSource: SourceADSB,
	}
}

func TestDecodeFixture(t *testing.T) {
	result, err := Decode([]byte(statesFixture), nil)
	if nil != err {
		t.Fatalf("Decode() error = %v", err)
	}
	if 1458564121 != result.Time {
		t.Errorf("time = %d, want 1458564121", result.Time)
	}
	if 1 != len(result.States) {
		t.Fatalf("got %d state vectors, want 1", len(result.States))
	}
	if FormLong != result.Form || result.Fallback {
		t.Errorf("form = %s (fallback=%t), want long primary", result.Form, result.Fallback)
	}
	want := fixtureVector()
	if !reflect.DeepEqual(result.States[0], want) {
		t.Errorf("vector = %+v, want %+v", result.States[0], want)
	}
}

func TestEncodeCanonicalFixture(t *testing.T) {
	result, err := Decode([]byte(statesFixture), nil)
	if nil != err {
		t.Fatalf("Decode() error = %v", err)
	}
	out, err := EncodeCanonical(result)
	if nil != err {
		t.Fatalf("EncodeCanonical() error = %v", err)
	}
	if statesCanonical != string(out) {
		t.Errorf("canonical encoding mismatch\n got: %s\nwant: %s", out, statesCanonical)
	}
}

// the positional and the keyed shape of the same record must decode
// identically
func TestDualShapeEquivalence(t *testing.T) {
	fromArray, err := Decode([]byte(statesFixture), nil)
	if nil != err {
		t.Fatalf("array form Decode() error = %v", err)
	}
	fromObject, err := Decode([]byte(statesCanonical), nil)
	if nil != err {
		t.Fatalf("object form Decode() error = %v", err)
	}
	if fromArray.Time != fromObject.Time {
		t.Errorf("time differs: %d vs %d", fromArray.Time, fromObject.Time)
	}
	if !reflect.DeepEqual(fromArray.States, fromObject.States) {
		t.Errorf("records differ\narray:  %+v\nobject: %+v", fromArray.States, fromObject.States)
	}
}

func TestRoundTrip(t *testing.T) {
	original := &States{
		Time: 1458564121,
		States: []StateVector{
			fixtureVector(),
			{
				Icao24:         "8990ed",
				OriginCountry:  "Japan",
				LastContact:    1458564100,
				OnGround:       true,
				Sensors:        []uint64{1893, 2013},
				Spi:            true,
				PositionSource: SourceMLAT,
				Category:       ptr(CategoryHeavy),
			},
		},
	}
	encoded, err := EncodeCanonical(original)
	if nil != err {
		t.Fatalf("EncodeCanonical() error = %v", err)
	}
	decoded, err := Decode(encoded, nil)
	if nil != err {
		t.Fatalf("Decode() error = %v", err)
	}
	if original.Time != decoded.Time {
		t.Errorf("time = %d, want %d", decoded.Time, original.Time)
	}
	if !reflect.DeepEqual(original.States, decoded.States) {
		t.Errorf("round trip mismatch\n got: %+v\nwant: %+v", decoded.States, original.States)
	}
}

const (
	svRow17 = `["3c6444","DLH9LF  ","Germany",1458564120,1458564120,6.1546,50.1964,9639.3,false,232.88,98.26,4.55,null,9547.86,"1000",false,0]`
	svRow18 = `["3c6444","DLH9LF  ","Germany",1458564120,1458564120,6.1546,50.1964,9639.3,false,232.88,98.26,4.55,null,9547.86,"1000",false,0,2]`
)

func statesBody(row string) []byte {
	return []byte(`{"time":1458564121,"states":[` + row + `]}`)
}

func TestVariableLength(t *testing.T) {
	t.Run("17 elements", func(t *testing.T) {
		result, err := Decode(statesBody(svRow17), nil)
		if nil != err {
			t.Fatalf("Decode() error = %v", err)
		}
		if nil != result.States[0].Category {
			t.Errorf("category = %v, want none", *result.States[0].Category)
		}
	})

	t.Run("18 elements", func(t *testing.T) {
		result, err := Decode(statesBody(svRow18), nil)
		if nil != err {
			t.Fatalf("Decode() error = %v", err)
		}
		if nil == result.States[0].Category || CategoryLight != *result.States[0].Category {
			t.Errorf("category = %v, want Light", result.States[0].Category)
		}
	})

	badLengths := []struct {
		name string
		row  string
		want string
	}{
		{name: "16 elements", row: svRow17[:len(svRow17)-len(`,0]`)] + `]`, want: "got 16"},
		{name: "19 elements", row: svRow18[:len(svRow18)-1] + `,null]`, want: "got 19"},
	}
	for _, tt := range badLengths {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(statesBody(tt.row), nil)
			if nil == err {
				t.Fatal("expected a decode error")
			}
			var variantErr *VariantError
			if !errors.As(err, &variantErr) {
				t.Errorf("error type = %T, want *VariantError", err)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not report the observed length %q", err, tt.want)
			}
		})
	}
}

func TestNullCollection(t *testing.T) {
	bodies := []string{
		`{"time":1458564121,"states":null}`,
		`{"time":1458564121}`,
		`{"time":1458564121,"states":[]}`,
	}
	for _, body := range bodies {
		result, err := Decode([]byte(body), nil)
		if nil != err {
			t.Errorf("Decode(%s) error = %v", body, err)
			continue
		}
		if 1458564121 != result.Time {
			t.Errorf("Decode(%s) time = %d, want 1458564121", body, result.Time)
		}
		if nil == result.States || 0 != len(result.States) {
			t.Errorf("Decode(%s) states = %v, want empty slice", body, result.States)
		}
	}
}

func TestNullTime(t *testing.T) {
	body := []byte(`{"time":null,"states":null}`)

	result, err := Decode(body, ptr(uint64(1458564000)))
	if nil != err {
		t.Fatalf("Decode() error = %v", err)
	}
	if 1458564000 != result.Time {
		t.Errorf("time = %d, want the substituted 1458564000", result.Time)
	}
	if !result.Anomalies.Field("time") {
		t.Error("expected the substitution to be recorded as an anomaly")
	}

	if _, err = Decode(body, nil); nil == err {
		t.Error("expected an error with no requested time to substitute")
	}
}

func TestEnumFallbackInVector(t *testing.T) {
	unknownSource := strings.Replace(svRow17, `false,0]`, `false,99]`, 1)
	result, err := Decode(statesBody(unknownSource), nil)
	if nil != err {
		t.Fatalf("Decode() error = %v", err)
	}
	if SourceADSB != result.States[0].PositionSource {
		t.Errorf("position source = %s, want the ADSB default", result.States[0].PositionSource)
	}
	if !result.Anomalies.Field("position_source") {
		t.Error("expected the fallback to be recorded as an anomaly")
	}

	namedSource := strings.Replace(svRow17, `false,0]`, `false,"MLAT"]`, 1)
	result, err = Decode(statesBody(namedSource), nil)
	if nil != err {
		t.Fatalf("Decode() error = %v", err)
	}
	if SourceMLAT != result.States[0].PositionSource {
		t.Errorf("position source = %s, want MLAT", result.States[0].PositionSource)
	}
	if result.Anomalies.Field("position_source") {
		t.Error("a known name must not record an anomaly")
	}
}

func TestSchemaFallbackOrdering(t *testing.T) {
	tests := []struct {
		name          string
		row           string
		requestedTime *uint64
		wantForm      Form
		wantFallback  bool
	}{
		{
			name:         "unpinned short data falls back",
			row:          svRow17,
			wantForm:     FormShort,
			wantFallback: true,
		},
		{
			name:     "unpinned long data decodes directly",
			row:      svRow18,
			wantForm: FormLong,
		},
		{
			name:          "pinned time prefers the short form",
			row:           svRow17,
			requestedTime: ptr(uint64(1458564121)),
			wantForm:      FormShort,
		},
		{
			name:          "pinned long data falls back the other way",
			row:           svRow18,
			requestedTime: ptr(uint64(1458564121)),
			wantForm:      FormLong,
			wantFallback:  true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Decode(statesBody(tt.row), tt.requestedTime)
			if nil != err {
				t.Fatalf("Decode() error = %v", err)
			}
			if tt.wantForm != result.Form {
				t.Errorf("form = %s, want %s", result.Form, tt.wantForm)
			}
			if tt.wantFallback != result.Fallback {
				t.Errorf("fallback = %t, want %t", result.Fallback, tt.wantFallback)
			}
			if tt.wantFallback && !result.Anomalies.Field("states") {
				t.Error("expected the schema fallback to be recorded as an anomaly")
			}
		})
	}
}

func TestFieldErrorContext(t *testing.T) {
	// on_ground at element 8 carries a string instead of a boolean
	badRow := strings.Replace(svRow18, `9639.3,false`, `9639.3,"false"`, 1)
	_, err := Decode(statesBody(badRow), nil)
	if nil == err {
		t.Fatal("expected a decode error")
	}
	var fieldErr *wire.FieldError
	if !errors.As(err, &fieldErr) {
		t.Fatalf("error type = %T, want *wire.FieldError in the chain", err)
	}
	if "on_ground" != fieldErr.Field {
		t.Errorf("field = %s, want on_ground", fieldErr.Field)
	}
	if 8 != fieldErr.Index {
		t.Errorf("index = %d, want 8", fieldErr.Index)
	}
}

func TestEmptyIcao24Rejected(t *testing.T) {
	badRow := strings.Replace(svRow18, `"3c6444"`, `""`, 1)
	if _, err := Decode(statesBody(badRow), nil); nil == err {
		t.Error("expected a decode error for an empty icao24")
	}
}

func TestTopLevelNotAMap(t *testing.T) {
	if _, err := Decode([]byte(`[1,2,3]`), nil); nil == err {
		t.Error("expected a decode error for a non-map response")
	}
}
