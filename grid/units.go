package grid

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
)

// UnitType classifies units by what they measure.
type UnitType uint8

const (
	// UnitDimensionless is a plain number in document user units.
	UnitDimensionless UnitType = iota
	// UnitLinear is an absolute length.
	UnitLinear
	// UnitFontHeight is relative to the current font.
	UnitFontHeight
)

// Unit is an entry of the unit table.
type Unit struct {
	Abbr string
	Name string
	Type UnitType
	// Factor converts one unit into CSS pixels at 96 dpi.
	Factor float64
}

// Px is the CSS pixel.
var Px = &Unit{Abbr: "px", Name: "pixel", Type: UnitLinear, Factor: 1}

// userUnit is the unit of bare numbers.
var userUnit = &Unit{Name: "user unit", Type: UnitDimensionless, Factor: 1}

var unitTable = []*Unit{
	Px,
	{Abbr: "pt", Name: "point", Type: UnitLinear, Factor: 96.0 / 72},
	{Abbr: "pc", Name: "pica", Type: UnitLinear, Factor: 16},
	{Abbr: "mm", Name: "millimeter", Type: UnitLinear, Factor: 96 / 25.4},
	{Abbr: "cm", Name: "centimeter", Type: UnitLinear, Factor: 96 / 2.54},
	{Abbr: "m", Name: "meter", Type: UnitLinear, Factor: 96 / 0.0254},
	{Abbr: "in", Name: "inch", Type: UnitLinear, Factor: 96},
	{Abbr: "ft", Name: "foot", Type: UnitLinear, Factor: 96 * 12},
	{Abbr: "em", Name: "em square", Type: UnitFontHeight, Factor: 16},
	{Abbr: "ex", Name: "ex square", Type: UnitFontHeight, Factor: 8},
}

// LookupUnit finds a unit by abbreviation, ignoring case. The empty
// abbreviation is the dimensionless user unit.
func LookupUnit(abbr string) (*Unit, error) {
	abbr = strings.TrimSpace(abbr)
	if abbr == "" {
		return userUnit, nil
	}
	fold := cases.Fold()
	key := fold.String(abbr)
	for _, u := range unitTable {
		if fold.String(u.Abbr) == key {
			return u, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownUnit, abbr)
}

// Quantity is a number with its unit.
type Quantity struct {
	Value float64
	Unit  *Unit
}

// Px converts the quantity to CSS pixels.
func (q Quantity) Px() float64 {
	return q.Value * q.Unit.Factor
}

// ParseQuantity parses a length such as "10", "2.5mm" or "-1e1 px".
func ParseQuantity(s string) (Quantity, error) {
	s = strings.TrimSpace(s)
	end := 0
	for end < len(s) && strings.IndexByte("+-.0123456789eE", s[end]) >= 0 {
		// An 'e' that does not start an exponent begins the unit (em, ex).
		if (s[end] == 'e' || s[end] == 'E') && (end+1 >= len(s) || strings.IndexByte("+-0123456789", s[end+1]) < 0) {
			break
		}
		end++
	}
	v, err := strconv.ParseFloat(s[:end], 64)
	if err != nil {
		return Quantity{}, fmt.Errorf("%w: %q", ErrBadQuantity, s)
	}
	u, err := LookupUnit(s[end:])
	if err != nil {
		return Quantity{}, err
	}
	return Quantity{Value: v, Unit: u}, nil
}
