package states

import (
	"testing"

	"plane.watch/opensky/lib/wire"
)

func TestDecodePositionSource(t *testing.T) {
	tests := []struct {
		name        string
		in          any
		want        PositionSource
		wantAnomaly bool
	}{
		{name: "ordinal 0", in: float64(0), want: SourceADSB},
		{name: "ordinal 3", in: float64(3), want: SourceFLARM},
		{name: "unknown ordinal", in: float64(99), want: SourceADSB, wantAnomaly: true},
		{name: "name", in: "MLAT", want: SourceMLAT},
		{name: "unknown name", in: "Mlat", want: SourceADSB, wantAnomaly: true},
		{name: "wrong type", in: true, want: SourceADSB, wantAnomaly: true},
		{name: "negative ordinal", in: float64(-1), want: SourceADSB, wantAnomaly: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var an wire.Anomalies
			if got := DecodePositionSource(tt.in, &an); tt.want != got {
				t.Errorf("DecodePositionSource(%v) = %s, want %s", tt.in, got, tt.want)
			}
			if tt.wantAnomaly != an.Field("position_source") {
				t.Errorf("anomaly recorded = %t, want %t", !tt.wantAnomaly, tt.wantAnomaly)
			}
		})
	}
}

func TestDecodeAircraftCategory(t *testing.T) {
	tests := []struct {
		name        string
		in          any
		want        AircraftCategory
		wantAnomaly bool
	}{
		{name: "ordinal 0", in: float64(0), want: CategoryNoInformation},
		{name: "ordinal 20", in: float64(20), want: CategoryLineObstacle},
		{name: "unknown ordinal", in: float64(21), want: CategoryNoInformation, wantAnomaly: true},
		{name: "name", in: "Heavy", want: CategoryHeavy},
		{name: "unknown name", in: "heavy", want: CategoryNoInformation, wantAnomaly: true},
		{name: "wrong type", in: []any{}, want: CategoryNoInformation, wantAnomaly: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var an wire.Anomalies
			if got := DecodeAircraftCategory(tt.in, &an); tt.want != got {
				t.Errorf("DecodeAircraftCategory(%v) = %s, want %s", tt.in, got, tt.want)
			}
			if tt.wantAnomaly != an.Field("category") {
				t.Errorf("anomaly recorded = %t, want %t", !tt.wantAnomaly, tt.wantAnomaly)
			}
		})
	}
}

func TestEnumStrings(t *testing.T) {
	if "ASTERIX" != SourceASTERIX.String() {
		t.Errorf("SourceASTERIX = %s", SourceASTERIX)
	}
	if "ADSB" != PositionSource(200).String() {
		t.Errorf("out of range source = %s, want the ADSB default", PositionSource(200))
	}
	if "Glider" != CategoryGlider.String() {
		t.Errorf("CategoryGlider = %s", CategoryGlider)
	}
	if "NoInformation" != AircraftCategory(200).String() {
		t.Errorf("out of range category = %s, want the NoInformation default", AircraftCategory(200))
	}
}

func TestEnumMarshalNames(t *testing.T) {
	out, err := json.Marshal(struct {
		Source   PositionSource   `json:"position_source"`
		Category AircraftCategory `json:"category"`
	}{Source: SourceFLARM, Category: CategoryRotorcraft})
	if nil != err {
		t.Fatalf("Marshal() error = %v", err)
	}
	want := `{"position_source":"FLARM","category":"Rotorcraft"}`
	if want != string(out) {
		t.Errorf("marshal = %s, want %s", out, want)
	}
}
