package states

type (
	// the canonical keyed representation, stable across the positional wire
	// variants. Field order matches the positional table.
	statesJSON struct {
		Time   uint64            `json:"time"`
		States []stateVectorJSON `json:"states"`
	}

	stateVectorJSON struct {
		Icao24         string            `json:"icao24"`
		Callsign       *string           `json:"callsign"`
		OriginCountry  string            `json:"origin_country"`
		TimePosition   *uint64           `json:"time_position"`
		LastContact    uint64            `json:"last_contact"`
		Longitude      *float64          `json:"longitude"`
		Latitude       *float64          `json:"latitude"`
		BaroAltitude   *float64          `json:"baro_altitude"`
		OnGround       bool              `json:"on_ground"`
		Velocity       *float64          `json:"velocity"`
		TrueTrack      *float64          `json:"true_track"`
		VerticalRate   *float64          `json:"vertical_rate"`
		Sensors        []uint64          `json:"sensors"`
		GeoAltitude    *float64          `json:"geo_altitude"`
		Squawk         *string           `json:"squawk"`
		Spi            bool              `json:"spi"`
		PositionSource PositionSource    `json:"position_source"`
		Category       *AircraftCategory `json:"category"`
	}
)

// EncodeCanonical renders the keyed object form with canonical enum names.
// Decoding the result yields an equal value, which makes it safe for
// snapshots and caches while the positional wire format keeps shifting.
func EncodeCanonical(s *States) ([]byte, error) {
	out := statesJSON{
		Time:   s.Time,
		States: make([]stateVectorJSON, 0, len(s.States)),
	}
	for i := range s.States {
		out.States = append(out.States, canonicalVector(&s.States[i]))
	}
	return json.Marshal(out)
}

func canonicalVector(sv *StateVector) stateVectorJSON {
	return stateVectorJSON{
		Icao24:         sv.Icao24,
		Callsign:       sv.Callsign,
		OriginCountry:  sv.OriginCountry,
		TimePosition:   sv.TimePosition,
		LastContact:    sv.LastContact,
		Longitude:      sv.Longitude,
		Latitude:       sv.Latitude,
		BaroAltitude:   sv.BaroAltitude,
		OnGround:       sv.OnGround,
		Velocity:       sv.Velocity,
		TrueTrack:      sv.TrueTrack,
		VerticalRate:   sv.VerticalRate,
		Sensors:        sv.Sensors,
		GeoAltitude:    sv.GeoAltitude,
		Squawk:         sv.Squawk,
		Spi:            sv.Spi,
		PositionSource: sv.PositionSource,
		Category:       sv.Category,
	}
}
