package quill

import "math"

// Dash defines a dash pattern for stroking.
// A dash pattern consists of alternating dash and gap lengths.
// For example, [5, 3] creates a pattern of 5 units dash, 3 units gap.
type Dash struct {
	// Lengths contains alternating dash/gap lengths.
	Lengths []float64

	// Phase is the starting offset into the pattern.
	// The stroke begins at this point in the pattern cycle.
	Phase float64
}

// NewDash creates a dash pattern from alternating dash/gap lengths.
// Negative lengths are normalized to their absolute value.
// Returns nil (a solid line) if no lengths are provided or all
// lengths are zero.
func NewDash(lengths ...float64) *Dash {
	if len(lengths) == 0 {
		return nil
	}

	allZero := true
	for _, l := range lengths {
		if l > 0 {
			allZero = false
			break
		}
	}
	if allZero {
		return nil
	}

	normalized := make([]float64, len(lengths))
	for i, l := range lengths {
		normalized[i] = math.Abs(l)
	}

	return &Dash{Lengths: normalized}
}

// WithPhase returns a new Dash with the given phase offset.
func (d *Dash) WithPhase(phase float64) *Dash {
	if d == nil {
		return nil
	}
	return &Dash{Lengths: d.Lengths, Phase: phase}
}

// IsDashed returns true if this represents a dashed line (not solid).
// Returns false for a nil Dash or an empty/all-zero pattern.
func (d *Dash) IsDashed() bool {
	if d == nil || len(d.Lengths) == 0 {
		return false
	}
	for _, l := range d.Lengths {
		if l > 0 {
			return true
		}
	}
	return false
}

// PatternLength returns the total length of one complete pattern cycle.
// Odd-length patterns are logically duplicated to an even length.
func (d *Dash) PatternLength() float64 {
	if d == nil || len(d.Lengths) == 0 {
		return 0
	}

	var total float64
	for _, l := range d.Lengths {
		total += l
	}
	if len(d.Lengths)%2 != 0 {
		total *= 2
	}
	return total
}

// Clone creates a deep copy of the Dash.
func (d *Dash) Clone() *Dash {
	if d == nil {
		return nil
	}
	lengths := make([]float64, len(d.Lengths))
	copy(lengths, d.Lengths)
	return &Dash{Lengths: lengths, Phase: d.Phase}
}
