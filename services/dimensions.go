package services

const (
	mm2PerM2 = 1_000_000
	mm3PerM3 = 1_000_000_000
)

// Area converts width × height in millimeters to square meters. It is zero
// unless both inputs are positive.
func Area(widthMM, heightMM float64) float64 {
	if widthMM <= 0 || heightMM <= 0 {
		return 0
	}
	return widthMM * heightMM / mm2PerM2
}

// Volume converts width × height × depth in millimeters to cubic meters. It
// is zero unless all three inputs are positive.
func Volume(widthMM, heightMM, depthMM float64) float64 {
	if widthMM <= 0 || heightMM <= 0 || depthMM <= 0 {
		return 0
	}
	return widthMM * heightMM * depthMM / mm3PerM3
}

// Measurement is a set of dimensions with the derived area and volume.
type Measurement struct {
	Dimensions
	Area   float64 `json:"area,omitempty"`
	Volume float64 `json:"volume,omitempty"`
}

// Measure derives area and volume from d.
func Measure(d Dimensions) Measurement {
	return Measurement{
		Dimensions: d,
		Area:       Area(d.Width, d.Height),
		Volume:     Volume(d.Width, d.Height, d.Depth),
	}
}

// CombinationDimensions returns the dimensions of the first option, in
// column order, that carries them. Without one it falls back to manual,
// which may be nil. ok is false when neither source has dimensions.
func CombinationDimensions(c Combination, columnOrder []string, manual *Dimensions) (Dimensions, bool) {
	for _, id := range columnOrder {
		o, ok := c.Options[id]
		if ok && o.Dimensions != nil {
			return *o.Dimensions, true
		}
	}
	if manual != nil && (manual.Width > 0 || manual.Height > 0 || manual.Depth > 0) {
		return *manual, true
	}
	return Dimensions{}, false
}
