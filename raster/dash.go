package raster

import "math"

// Dash is a dash pattern of alternating on and off lengths.
type Dash struct {
	// Array holds the alternating dash/gap lengths. An odd-length array is
	// logically repeated to make it even: [5] means [5, 5].
	Array []float64

	// Offset is the position within the pattern at the start of the
	// stroke.
	Offset float64
}

// NewDash creates a dash pattern from alternating dash/gap lengths.
// Negative lengths are made positive. Returns nil if no lengths are
// provided or all are zero.
func NewDash(lengths ...float64) *Dash {
	total := 0.0
	arr := make([]float64, len(lengths))
	for i, l := range lengths {
		arr[i] = math.Abs(l)
		total += arr[i]
	}
	if total == 0 {
		return nil
	}
	return &Dash{Array: arr}
}

// WithOffset returns a copy of d starting at offset within the pattern.
func (d *Dash) WithOffset(offset float64) *Dash {
	if d == nil {
		return nil
	}
	return &Dash{Array: d.Array, Offset: offset}
}

// pattern returns the even-length pattern.
func (d *Dash) pattern() []float64 {
	if len(d.Array)%2 == 0 {
		return d.Array
	}
	return append(append([]float64(nil), d.Array...), d.Array...)
}

// PatternLength returns the length of one full cycle.
func (d *Dash) PatternLength() float64 {
	if d == nil {
		return 0
	}
	total := 0.0
	for _, l := range d.pattern() {
		total += l
	}
	return total
}

// Intervals returns the "on" intervals of the pattern along a path of the
// given length, starting at phase (added to Offset) within the pattern.
func (d *Dash) Intervals(length, phase float64) [][2]float64 {
	period := d.PatternLength()
	if period <= 0 || length <= 0 {
		return nil
	}
	pat := d.pattern()
	pos := math.Mod(d.Offset+phase, period)
	if pos < 0 {
		pos += period
	}
	i := 0
	for pos >= pat[i] {
		pos -= pat[i]
		i = (i + 1) % len(pat)
	}

	var out [][2]float64
	for s := 0.0; s < length; {
		run := pat[i] - pos
		end := math.Min(s+run, length)
		if i%2 == 0 && end > s {
			out = append(out, [2]float64{s, end})
		}
		s += run
		pos = 0
		i = (i + 1) % len(pat)
	}
	return out
}
