package render

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"isoworld/internal/config"
	"isoworld/internal/geom"
)

// Rect is a screen-space rectangle in terminal cells, spanning
// [MinX, MaxX) x [MinY, MaxY). Screen y grows downward.
type Rect struct {
	MinX, MinY, MaxX, MaxY float64
}

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool { return r.MaxX <= r.MinX || r.MaxY <= r.MinY }

// OverlapArea returns the area shared by r and o, zero when they are
// disjoint or only touch.
func (r Rect) OverlapArea(o Rect) float64 {
	w := math.Min(r.MaxX, o.MaxX) - math.Max(r.MinX, o.MinX)
	h := math.Min(r.MaxY, o.MaxY) - math.Max(r.MinY, o.MinY)
	if w <= 0 || h <= 0 {
		return 0
	}
	return w * h
}

// IsoCamera projects world coordinates onto a dimetric terminal grid.
// World x runs down-right, y runs down-left and z runs straight up.
type IsoCamera struct {
	TileWidth   float64 // columns per world unit along the screen diagonal
	TileHeight  float64 // rows per world unit along the screen diagonal
	LayerHeight float64 // rows per world unit of z
	OffsetX     float64
	OffsetY     float64
	ViewWidth   int // in terminal columns; zero disables culling
	ViewHeight  int // in terminal rows
}

// NewIsoCamera creates a camera with the configured tile metrics and a
// viewport of viewW x viewH terminal cells.
func NewIsoCamera(cfg config.RenderConfig, viewW, viewH int) *IsoCamera {
	return &IsoCamera{
		TileWidth:   float64(cfg.TileWidth),
		TileHeight:  float64(cfg.TileHeight),
		LayerHeight: float64(cfg.LayerHeight),
		ViewWidth:   viewW,
		ViewHeight:  viewH,
	}
}

// Project maps a world point to screen coordinates.
func (c *IsoCamera) Project(p mgl64.Vec3) (sx, sy float64) {
	sx = (p.X()-p.Y())*c.TileWidth/2 + c.OffsetX
	sy = (p.X()+p.Y())*c.TileHeight/2 - p.Z()*c.LayerHeight + c.OffsetY
	return sx, sy
}

// Center repositions the camera so that world point p is in the middle of
// the viewport.
func (c *IsoCamera) Center(p mgl64.Vec3) {
	c.OffsetX, c.OffsetY = 0, 0
	sx, sy := c.Project(p)
	c.OffsetX = float64(c.ViewWidth)/2 - sx
	c.OffsetY = float64(c.ViewHeight)/2 - sy
}

// ScreenRect returns the bounding rectangle of the box's eight projected
// corners.
func (c *IsoCamera) ScreenRect(b geom.Box) Rect {
	lo, hi := b.Min, b.Max()
	r := Rect{MinX: math.Inf(1), MinY: math.Inf(1), MaxX: math.Inf(-1), MaxY: math.Inf(-1)}
	for i := 0; i < 8; i++ {
		corner := lo
		if i&1 != 0 {
			corner[0] = hi[0]
		}
		if i&2 != 0 {
			corner[1] = hi[1]
		}
		if i&4 != 0 {
			corner[2] = hi[2]
		}
		sx, sy := c.Project(corner)
		r.MinX = math.Min(r.MinX, sx)
		r.MaxX = math.Max(r.MaxX, sx)
		r.MinY = math.Min(r.MinY, sy)
		r.MaxY = math.Max(r.MaxY, sy)
	}
	return r
}

// Anchor returns the terminal cell where a box's glyph is drawn: the centre
// of its top face.
func (c *IsoCamera) Anchor(b geom.Box) (x, y int) {
	ctr := b.Center()
	ctr[2] = b.Max().Z()
	sx, sy := c.Project(ctr)
	return int(math.Floor(sx)), int(math.Floor(sy))
}

// InView reports whether r reaches into the viewport.
func (c *IsoCamera) InView(r Rect) bool {
	if c.ViewWidth <= 0 || c.ViewHeight <= 0 {
		return true
	}
	view := Rect{MaxX: float64(c.ViewWidth), MaxY: float64(c.ViewHeight)}
	return view.OverlapArea(r) > 0
}
