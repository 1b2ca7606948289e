package states

import "plane.watch/opensky/lib/wire"

type (
	// StateVector is one aircraft's status snapshot as reported by the
	// /states endpoints.
	StateVector struct {
		// Icao24 is the unique 24-bit transponder address as a lower case hex
		// string. Always present.
		Icao24 string
		// Callsign of the vehicle, padded to 8 characters. Nil if none has
		// been received.
		Callsign *string
		// OriginCountry is inferred from the transponder address.
		OriginCountry string
		// TimePosition is the unix timestamp of the last position update. Nil
		// if no recent position report was received.
		TimePosition *uint64
		// LastContact is the unix timestamp of the last message received from
		// the transponder.
		LastContact uint64
		// Longitude and Latitude are WGS-84 decimal degrees.
		Longitude *float64
		Latitude  *float64
		// BaroAltitude is the barometric altitude in meters.
		BaroAltitude *float64
		// OnGround indicates the position came from a surface position report.
		OnGround bool
		// Velocity over ground in m/s.
		Velocity *float64
		// TrueTrack in decimal degrees clockwise from north.
		TrueTrack *float64
		// VerticalRate in m/s, negative when descending.
		VerticalRate *float64
		// Sensors holds the IDs of the receivers that contributed to this
		// state vector. Nil when the request did not filter by sensor.
		Sensors []uint64
		// GeoAltitude is the geometric altitude in meters.
		GeoAltitude *float64
		// Squawk is the transponder code.
		Squawk *string
		// Spi indicates the special purpose indicator flight status.
		Spi            bool
		PositionSource PositionSource
		// Category is nil when the wire variant did not carry the field.
		Category *AircraftCategory
	}

	// States is one snapshot of tracked aircraft, in arrival order.
	States struct {
		Time   uint64
		States []StateVector

		// Form is the wire variant that decoded successfully and Fallback
		// reports whether it was the second one attempted. Recorded so schema
		// drift on the server side stays observable.
		Form     Form
		Fallback bool
		// Anomalies lists the recoverable oddities hit during the decode.
		Anomalies wire.Anomalies
	}

	// Form names one of the historical wire variants of the states array.
	Form string
)

const (
	// FormLong is the 18 element variant with a trailing aircraft category.
	FormLong Form = "long"
	// FormShort is the older 17 element variant without it. Archived
	// snapshots only ever use this one.
	FormShort Form = "short"
)
