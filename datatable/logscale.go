package datatable

import "math"

// LogScale maps a slider position in [0, 1] onto the integers [0, Max] with
// logarithmic spacing, so that small and very large counts get the same
// control precision.
type LogScale struct {
	Max int
}

// Value returns the integer at slider position pos.
func (s LogScale) Value(pos float64) int {
	if s.Max <= 0 || math.IsNaN(pos) || pos <= 0 {
		return 0
	}
	if pos >= 1 {
		return s.Max
	}
	v := int(math.Round(math.Expm1(pos * math.Log1p(float64(s.Max)))))
	return clampInt(v, 0, s.Max)
}

// Position returns the slider position of value v, clamped to the scale.
func (s LogScale) Position(v int) float64 {
	if s.Max <= 0 || v <= 0 {
		return 0
	}
	if v >= s.Max {
		return 1
	}
	return math.Log1p(float64(v)) / math.Log1p(float64(s.Max))
}
