// Package grid implements document grids: the engine that holds a grid's
// configuration, derives its on-screen geometry for a view transform,
// paints it and answers snapping queries.
//
// A Grid is configured from the attributes of its document node and can be
// shown on several canvases at once. Each canvas registers a Display, which
// is asked to update whenever the configuration changes and is told when
// the grid goes away.
//
// # Rectangular grids
//
// Lines run parallel to the document axes, spaced by the configured
// spacing. Every Nth line is an emphasis (major) line. When zooming out
// would bring lines closer than 8 device pixels, the on-screen spacing is
// multiplied first by the emphasis interval and then by 2 until they are
// far enough apart, and the axis is flagged as scaled.
//
//	g := grid.New(grid.TypeRectangular,
//	    grid.WithSpacing(geom.Pt(10, 10)),
//	    grid.WithEmphasis(5),
//	)
//	v := g.Update(viewAffine)
//	g.Render(buf, v)
//
// # Axonometric grids
//
// Three families of lines: verticals and two slanted families at the
// configured x and z angles, meeting at common points.
package grid
