package states

import (
	"github.com/rs/zerolog/log"

	"plane.watch/opensky/lib/wire"
)

// PositionSource is the origin of a state vector's position report.
type PositionSource uint8

const (
	SourceADSB PositionSource = iota
	SourceASTERIX
	SourceMLAT
	SourceFLARM
)

var positionSourceNames = [...]string{"ADSB", "ASTERIX", "MLAT", "FLARM"}

func (p PositionSource) String() string {
	if int(p) < len(positionSourceNames) {
		return positionSourceNames[p]
	}
	return positionSourceNames[SourceADSB]
}

// MarshalJSON always emits the canonical name, never the wire ordinal, so
// round trips through the canonical form stay stable.
func (p PositionSource) MarshalJSON() ([]byte, error) {
	return []byte(`"` + p.String() + `"`), nil
}

// DecodePositionSource maps a wire value, either a small integer ordinal or a
// canonical name, onto a PositionSource. Unknown values recover to ADSB and
// are recorded as an anomaly rather than failing the decode; the server grows
// this enumeration without notice.
func DecodePositionSource(v any, an *wire.Anomalies) PositionSource {
	if u, ok := wire.AsUint(v); ok {
		if u < uint64(len(positionSourceNames)) {
			return PositionSource(u)
		}
		an.Notef("position_source", "unknown ordinal %d, using %s", u, SourceADSB)
		log.Warn().Uint64("ordinal", u).Msg("Unknown position source, using ADSB")
		return SourceADSB
	}
	if s, ok := v.(string); ok {
		for i, name := range positionSourceNames {
			if name == s {
				return PositionSource(i)
			}
		}
		an.Notef("position_source", "unknown name %q, using %s", s, SourceADSB)
		log.Warn().Str("name", s).Msg("Unknown position source, using ADSB")
		return SourceADSB
	}
	an.Notef("position_source", "unexpected %T, using %s", v, SourceADSB)
	log.Warn().Interface("value", v).Msg("Unexpected position source value, using ADSB")
	return SourceADSB
}

// AircraftCategory is the ADS-B emitter category of an aircraft.
type AircraftCategory uint8

const (
	CategoryNoInformation AircraftCategory = iota
	CategoryNoCategoryInfo
	CategoryLight
	CategorySmall
	CategoryLarge
	CategoryHighVortexLarge
	CategoryHeavy
	CategoryHighPerformance
	CategoryRotorcraft
	CategoryGlider
	CategoryLighterThanAir
	CategoryParachutist
	CategoryUltralight
	CategoryReserved
	CategoryUnmannedAerialVehicle
	CategorySpaceVehicle
	CategoryEmergencySurfaceVehicle
	CategoryServiceSurfaceVehicle
	CategoryPointObstacle
	CategoryClusterObstacle
	CategoryLineObstacle
)

var aircraftCategoryNames = [...]string{
	"NoInformation",
	"NoCategoryInfo",
	"Light",
	"Small",
	"Large",
	"HighVortexLarge",
	"Heavy",
	"HighPerformance",
	"Rotorcraft",
	"Glider",
	"LighterThanAir",
	"Parachutist",
	"Ultralight",
	"Reserved",
	"UnmannedAerialVehicle",
	"SpaceVehicle",
	"EmergencySurfaceVehicle",
	"ServiceSurfaceVehicle",
	"PointObstacle",
	"ClusterObstacle",
	"LineObstacle",
}

func (c AircraftCategory) String() string {
	if int(c) < len(aircraftCategoryNames) {
		return aircraftCategoryNames[c]
	}
	return aircraftCategoryNames[CategoryNoInformation]
}

func (c AircraftCategory) MarshalJSON() ([]byte, error) {
	return []byte(`"` + c.String() + `"`), nil
}

// DecodeAircraftCategory maps a wire value onto an AircraftCategory with the
// same tolerant fallback as DecodePositionSource, defaulting to NoInformation.
func DecodeAircraftCategory(v any, an *wire.Anomalies) AircraftCategory {
	if u, ok := wire.AsUint(v); ok {
		if u < uint64(len(aircraftCategoryNames)) {
			return AircraftCategory(u)
		}
		an.Notef("category", "unknown ordinal %d, using %s", u, CategoryNoInformation)
		log.Warn().Uint64("ordinal", u).Msg("Unknown aircraft category, using NoInformation")
		return CategoryNoInformation
	}
	if s, ok := v.(string); ok {
		for i, name := range aircraftCategoryNames {
			if name == s {
				return AircraftCategory(i)
			}
		}
		an.Notef("category", "unknown name %q, using %s", s, CategoryNoInformation)
		log.Warn().Str("name", s).Msg("Unknown aircraft category, using NoInformation")
		return CategoryNoInformation
	}
	an.Notef("category", "unexpected %T, using %s", v, CategoryNoInformation)
	log.Warn().Interface("value", v).Msg("Unexpected aircraft category value, using NoInformation")
	return CategoryNoInformation
}
