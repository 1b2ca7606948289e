package api

// BoundingBox is an area given by WGS-84 decimal degree bounds.
type BoundingBox struct {
	LatMin, LatMax float64
	LonMin, LonMax float64
}

func NewBoundingBox(latMin, latMax, lonMin, lonMax float64) BoundingBox {
	return BoundingBox{
		LatMin: latMin,
		LatMax: latMax,
		LonMin: lonMin,
		LonMax: lonMax,
	}
}
