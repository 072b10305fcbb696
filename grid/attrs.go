package grid

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/gogpu/overlay/geom"
	"github.com/gogpu/overlay/raster"
)

// normalizeKey folds attribute spellings such as "origin-x", "originX"
// and "originx" to one key.
func normalizeKey(key string) string {
	key = strings.ToLower(key)
	return strings.NewReplacer("-", "", "_", "").Replace(key)
}

// ReadXML reads a grid from its document node, an element such as
//
//	<inkscape:grid type="xygrid" originx="0" spacingx="10" empspacing="5"/>
//
// Options are applied before the attributes.
func ReadXML(r io.Reader, opts ...Option) (*Grid, error) {
	dec := xml.NewDecoder(r)
	for {
		tok, err := dec.Token()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil, ErrNotGrid
			}
			return nil, fmt.Errorf("grid: read xml: %w", err)
		}
		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		if start.Name.Local != "grid" {
			return nil, fmt.Errorf("%w: <%s>", ErrNotGrid, start.Name.Local)
		}
		attrs := make(map[string]string, len(start.Attr))
		typ := TypeRectangular
		for _, a := range start.Attr {
			if a.Name.Local == "type" {
				typ = TypeFromSVGName(a.Value)
				continue
			}
			if a.Name.Local == "id" {
				continue
			}
			attrs[a.Name.Local] = a.Value
		}
		g := New(typ, opts...)
		if err := g.ReadAttrs(attrs); err != nil {
			return g, fmt.Errorf("grid: read xml: %w", err)
		}
		return g, nil
	}
}

// ReadAttrs merges attrs into the configuration and re-derives the grid
// state from the full attribute set. Values that fail to parse are logged
// and leave the previous setting in place; their errors are joined in the
// result.
func (g *Grid) ReadAttrs(attrs map[string]string) error {
	for k, v := range attrs {
		g.attrs[normalizeKey(k)] = v
	}
	return g.readAttrs()
}

// SetAttr changes one attribute, as a document edit would, and updates
// every display.
func (g *Grid) SetAttr(key, value string) error {
	g.attrs[normalizeKey(key)] = value
	return g.readAttrs()
}

// SetOrigin moves the origin to p, in document units, through the
// attributes.
func (g *Grid) SetOrigin(p geom.Point) error {
	g.attrs["originx"] = formatFloat(p.X / g.userScale.X)
	g.attrs["originy"] = formatFloat(p.Y / g.userScale.Y)
	return g.readAttrs()
}

// Scale multiplies origin and spacing by s, as when the document is
// resized with its content.
func (g *Grid) Scale(s geom.Point) error {
	o := geom.Pt(g.origin.X*s.X, g.origin.Y*s.Y)
	sp := geom.Pt(g.spacing.X*s.X, g.spacing.Y*s.Y)
	g.attrs["originx"] = formatFloat(o.X / g.userScale.X)
	g.attrs["originy"] = formatFloat(o.Y / g.userScale.Y)
	g.attrs["spacingx"] = formatFloat(sp.X / g.userScale.X)
	g.attrs["spacingy"] = formatFloat(sp.Y / g.userScale.Y)
	return g.readAttrs()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func parseBool(v string) bool {
	return v != "false" && v != "0"
}

// readAttrs re-derives the configuration from the attribute set and asks
// the displays to update.
func (g *Grid) readAttrs() error {
	var errs []error
	fail := func(key string, err error) {
		logger().Warn("grid: bad attribute", "key", key, "value", g.attrs[key], "err", err)
		errs = append(errs, fmt.Errorf("%s: %w", key, err))
	}

	g.readLength("originx", &g.origin.X, g.userScale.X, false, fail)
	g.readLength("originy", &g.origin.Y, g.userScale.Y, false, fail)
	g.readLength("spacingx", &g.spacing.X, g.userScale.X, true, fail)
	g.readLength("spacingy", &g.spacing.Y, g.userScale.Y, true, fail)

	if v, ok := g.attrs["color"]; ok {
		if c, err := raster.ParseHex(v); err != nil {
			fail("color", err)
		} else {
			g.color = g.color&0xff | c&^0xff
		}
	}
	if v, ok := g.attrs["empcolor"]; ok {
		if c, err := raster.ParseHex(v); err != nil {
			fail("empcolor", err)
		} else {
			g.empColor = g.empColor&0xff | c&^0xff
		}
	}
	if v, ok := g.attrs["opacity"]; ok {
		if o, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err != nil {
			fail("opacity", err)
		} else {
			g.color = g.color.WithOpacity(o)
		}
	}
	if v, ok := g.attrs["empopacity"]; ok {
		if o, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err != nil {
			fail("empopacity", err)
		} else {
			g.empColor = g.empColor.WithOpacity(o)
		}
	}
	if v, ok := g.attrs["empspacing"]; ok {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			fail("empspacing", err)
		} else if n > 0 {
			g.empSpacing = n
		} else if g.empSpacing <= 0 {
			g.empSpacing = 1
		}
	}
	if v, ok := g.attrs["dotted"]; ok {
		g.dotted = parseBool(v)
	}
	if v, ok := g.attrs["visible"]; ok {
		g.visible = parseBool(v)
	}
	if v, ok := g.attrs["enabled"]; ok {
		g.snapper.SetEnabled(parseBool(v))
	}
	if v, ok := g.attrs["snapvisiblegridlinesonly"]; ok {
		g.snapper.SetSnapVisibleOnly(parseBool(v))
	}
	if v, ok := g.attrs["units"]; ok {
		if u, err := LookupUnit(v); err != nil {
			fail("units", err)
		} else {
			g.unit = u
		}
	}
	g.readAngle("gridanglex", &g.angleX, fail)
	g.readAngle("gridanglez", &g.angleZ, fail)

	g.notify()
	return errors.Join(errs...)
}

// readLength parses a length attribute into *dst. Absolute units are
// converted to px and mark the grid as legacy; bare numbers are user units
// scaled by scale. Spacings must be positive.
func (g *Grid) readLength(key string, dst *float64, scale float64, spacing bool, fail func(string, error)) {
	v, ok := g.attrs[key]
	if !ok {
		return
	}
	if spacing && *dst <= 0 {
		*dst = 1
	}
	q, err := ParseQuantity(v)
	if err != nil {
		fail(key, err)
		return
	}
	if spacing && q.Value <= 0 {
		return
	}
	if q.Unit.Type == UnitLinear {
		*dst = q.Px()
		g.legacy = true
		if q.Unit == Px {
			g.pixel = true
		}
		return
	}
	*dst = q.Value * scale
}

// readAngle parses an axonometric angle, clamped to [0, 89].
func (g *Grid) readAngle(key string, dst *float64, fail func(string, error)) {
	v, ok := g.attrs[key]
	if !ok {
		return
	}
	a, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		fail(key, err)
		return
	}
	*dst = math.Max(0, math.Min(89, a))
}
