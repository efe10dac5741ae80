package xdgshell

import "libwl.dev/xdgshell/geom"

// Anchor and gravity wire codes, shared numerically by the stable
// protocol. Both enums are decoded through one shared table, reached
// through separate entry points (decodeAnchor/decodeGravity). Values
// match xdg-shell.xml's xdg_positioner.anchor/gravity enums exactly;
// they are not in top/right/bottom/left visual order.
const (
	AnchorNone        = 0
	AnchorTop         = 1
	AnchorBottom      = 2
	AnchorLeft        = 3
	AnchorRight       = 4
	AnchorTopLeft     = 5
	AnchorBottomLeft  = 6
	AnchorTopRight    = 7
	AnchorBottomRight = 8
)

const maxAnchorGravityCode = AnchorBottomRight

// Constraint adjustment bits for set_constraint_adjustment.
const (
	ConstraintAdjustmentSlideX = 1 << iota
	ConstraintAdjustmentSlideY
	ConstraintAdjustmentFlipX
	ConstraintAdjustmentFlipY
	ConstraintAdjustmentResizeX
	ConstraintAdjustmentResizeY
)

func decodeAnchor(object uint32, code uint32) (EdgeSet, error) {
	return decodeAnchorGravity(object, code, "anchor")
}

func decodeGravity(object uint32, code uint32) (EdgeSet, error) {
	return decodeAnchorGravity(object, code, "gravity")
}

// decodeAnchorGravity implements the table from spec.md section 4.1.
// Anchor and gravity are decoded from their own wire constants by
// separate call sites (decodeAnchor, decodeGravity) even though the
// table is identical, precisely so the two can diverge safely later.
func decodeAnchorGravity(object uint32, code uint32, which string) (EdgeSet, error) {
	switch code {
	case AnchorNone:
		return newEdgeSet(), nil
	case AnchorTop:
		return newEdgeSet(EdgeTop), nil
	case AnchorTopRight:
		return newEdgeSet(EdgeTop, EdgeRight), nil
	case AnchorRight:
		return newEdgeSet(EdgeRight), nil
	case AnchorBottomRight:
		return newEdgeSet(EdgeBottom, EdgeRight), nil
	case AnchorBottom:
		return newEdgeSet(EdgeBottom), nil
	case AnchorBottomLeft:
		return newEdgeSet(EdgeBottom, EdgeLeft), nil
	case AnchorLeft:
		return newEdgeSet(EdgeLeft), nil
	case AnchorTopLeft:
		return newEdgeSet(EdgeTop, EdgeLeft), nil
	default:
		return nil, newProtocolError(InterfacePositioner, object, ErrorInvalidInput, "invalid %s code %d", which, code)
	}
}

// Positioner is the pure value object from spec.md section 4.1
// describing where a popup should appear relative to an anchor
// rectangle. It is validated incrementally as the client sets fields
// and is complete once both Size and AnchorRect have been set.
type Positioner struct {
	resource Resource

	size          geom.Point[int32]
	sizeSet       bool
	anchorRect    geom.Rect[int32]
	anchorRectSet bool
	anchorEdges   EdgeSet
	gravityEdges  EdgeSet

	slideX, slideY   bool
	flipX, flipY     bool
	resizeX, resizeY bool

	offset geom.Point[int32]
}

// NewPositioner constructs a fresh, incomplete Positioner bound to
// resource. This is XdgShell.CreatePositioner's constructor.
func NewPositioner(resource Resource) *Positioner {
	return &Positioner{
		resource:     resource,
		anchorEdges:  newEdgeSet(),
		gravityEdges: newEdgeSet(),
	}
}

// fmtInvalidInput reports invalid_input against this positioner's own
// resource id, not an anonymous one, so a client can tell which
// xdg_positioner object misbehaved.
func (p *Positioner) fmtInvalidInput(format string, args ...any) *ProtocolError {
	return newProtocolError(InterfacePositioner, p.resource.ID(), ErrorInvalidInput, format, args...)
}

// SetSize implements set_size(w,h). Both dimensions must be >= 1.
func (p *Positioner) SetSize(w, h int32) error {
	if w < 1 || h < 1 {
		return p.fmtInvalidInput("size must be positive, got %dx%d", w, h)
	}
	p.size = geom.Pt(w, h)
	p.sizeSet = true
	return nil
}

// SetAnchorRect implements set_anchor_rect(x,y,w,h). Width and height
// must be >= 1.
func (p *Positioner) SetAnchorRect(x, y, w, h int32) error {
	if w < 1 || h < 1 {
		return p.fmtInvalidInput("anchor rect size must be positive, got %dx%d", w, h)
	}
	p.anchorRect = geom.Rt(x, y, x+w, y+h)
	p.anchorRectSet = true
	return nil
}

// SetAnchor implements set_anchor(code).
func (p *Positioner) SetAnchor(code uint32) error {
	edges, err := decodeAnchor(p.resource.ID(), code)
	if err != nil {
		return err
	}
	p.anchorEdges = edges
	return nil
}

// SetGravity implements set_gravity(code).
func (p *Positioner) SetGravity(code uint32) error {
	edges, err := decodeGravity(p.resource.ID(), code)
	if err != nil {
		return err
	}
	p.gravityEdges = edges
	return nil
}

// SetConstraintAdjustment implements set_constraint_adjustment(mask).
func (p *Positioner) SetConstraintAdjustment(mask uint32) {
	p.slideX = mask&ConstraintAdjustmentSlideX != 0
	p.slideY = mask&ConstraintAdjustmentSlideY != 0
	p.flipX = mask&ConstraintAdjustmentFlipX != 0
	p.flipY = mask&ConstraintAdjustmentFlipY != 0
	p.resizeX = mask&ConstraintAdjustmentResizeX != 0
	p.resizeY = mask&ConstraintAdjustmentResizeY != 0
}

// SetOffset implements set_offset(x,y). Any signed integers are
// accepted.
func (p *Positioner) SetOffset(x, y int32) {
	p.offset = geom.Pt(x, y)
}

// IsComplete reports whether both size and anchor rect have been set,
// per spec.md section 4.1.
func (p *Positioner) IsComplete() bool {
	return p.sizeSet && p.anchorRectSet
}

// snapshot copies the positioner's current value for use by a popup,
// per spec.md's "Positioner copy semantics": a popup is constructed
// from a snapshot taken at get_popup time, and later mutation of the
// live Positioner resource must not affect it.
func (p *Positioner) snapshot() positionerSnapshot {
	return positionerSnapshot{
		size:         p.size,
		anchorRect:   p.anchorRect,
		anchorEdges:  p.anchorEdges,
		gravityEdges: p.gravityEdges,
		slideX:       p.slideX,
		slideY:       p.slideY,
		flipX:        p.flipX,
		flipY:        p.flipY,
		resizeX:      p.resizeX,
		resizeY:      p.resizeY,
		offset:       p.offset,
	}
}

// positionerSnapshot is the immutable copy of a Positioner's fields
// held by an XdgPopup (spec.md section 3, "Positioner: ... copy of a
// Positioner snapshot taken at construction time").
type positionerSnapshot struct {
	size         geom.Point[int32]
	anchorRect   geom.Rect[int32]
	anchorEdges  EdgeSet
	gravityEdges EdgeSet

	slideX, slideY   bool
	flipX, flipY     bool
	resizeX, resizeY bool

	offset geom.Point[int32]
}

// place computes the popup's geometry relative to the parent's window
// geometry origin, applying the anchor/gravity/offset math and the
// constraint adjustments that fit against bounds. This is the popup
// positioning policy spec.md section 1 explicitly keeps in scope
// ("beyond popup positioner math").
func (s positionerSnapshot) place(bounds geom.Rect[int32]) geom.Rect[int32] {
	anchor := anchorPoint(s.anchorRect, s.anchorEdges)
	rect := geom.Rt(anchor.X, anchor.Y, anchor.X+s.size.X, anchor.Y+s.size.Y)
	rect = gravityAdjust(rect, s.gravityEdges, s.size)
	rect = rect.Add(s.offset)

	if s.flipX && (rect.Min.X < bounds.Min.X || rect.Max.X > bounds.Max.X) {
		flipped := flipHorizontal(s, anchor)
		if flipped.Min.X >= bounds.Min.X && flipped.Max.X <= bounds.Max.X {
			rect = flipped
		}
	}
	if s.flipY && (rect.Min.Y < bounds.Min.Y || rect.Max.Y > bounds.Max.Y) {
		flipped := flipVertical(s, anchor)
		if flipped.Min.Y >= bounds.Min.Y && flipped.Max.Y <= bounds.Max.Y {
			rect = flipped
		}
	}

	if s.slideX {
		if rect.Min.X < bounds.Min.X {
			rect = rect.Add(geom.Pt(bounds.Min.X-rect.Min.X, int32(0)))
		}
		if rect.Max.X > bounds.Max.X {
			rect = rect.Add(geom.Pt(bounds.Max.X-rect.Max.X, int32(0)))
		}
	}
	if s.slideY {
		if rect.Min.Y < bounds.Min.Y {
			rect = rect.Add(geom.Pt(int32(0), bounds.Min.Y-rect.Min.Y))
		}
		if rect.Max.Y > bounds.Max.Y {
			rect = rect.Add(geom.Pt(int32(0), bounds.Max.Y-rect.Max.Y))
		}
	}

	if s.resizeX {
		rect = clampAxisX(rect, bounds)
	}
	if s.resizeY {
		rect = clampAxisY(rect, bounds)
	}

	return rect
}

// anchorPoint resolves the point on anchorRect named by edges: a
// corner, an edge midpoint, or the center if edges is empty.
func anchorPoint(anchorRect geom.Rect[int32], edges EdgeSet) geom.Point[int32] {
	x := (anchorRect.Min.X + anchorRect.Max.X) / 2
	if edges.Has(EdgeLeft) {
		x = anchorRect.Min.X
	} else if edges.Has(EdgeRight) {
		x = anchorRect.Max.X
	}

	y := (anchorRect.Min.Y + anchorRect.Max.Y) / 2
	if edges.Has(EdgeTop) {
		y = anchorRect.Min.Y
	} else if edges.Has(EdgeBottom) {
		y = anchorRect.Max.Y
	}

	return geom.Pt(x, y)
}

// gravityAdjust repositions rect (currently anchored by its
// top-left corner at the anchor point) so that it grows away from the
// anchor point in the direction gravity names.
func gravityAdjust(rect geom.Rect[int32], gravity EdgeSet, size geom.Point[int32]) geom.Rect[int32] {
	origin := rect.Min

	x := origin.X
	if gravity.Has(EdgeLeft) {
		x = origin.X - size.X
	} else if !gravity.Has(EdgeRight) {
		x = origin.X - size.X/2
	}

	y := origin.Y
	if gravity.Has(EdgeTop) {
		y = origin.Y - size.Y
	} else if !gravity.Has(EdgeBottom) {
		y = origin.Y - size.Y/2
	}

	return geom.Rt(x, y, x+size.X, y+size.Y)
}

// flipXEdges swaps Left<->Right and leaves Top/Bottom untouched, so
// flip_x only mirrors the horizontal component of an anchor or
// gravity edge set.
func flipXEdges(edges EdgeSet) EdgeSet {
	flipped := make(EdgeSet, len(edges))
	for e := range edges {
		switch e {
		case EdgeLeft:
			flipped[EdgeRight] = struct{}{}
		case EdgeRight:
			flipped[EdgeLeft] = struct{}{}
		default:
			flipped[e] = struct{}{}
		}
	}
	return flipped
}

// flipYEdges swaps Top<->Bottom and leaves Left/Right untouched.
func flipYEdges(edges EdgeSet) EdgeSet {
	flipped := make(EdgeSet, len(edges))
	for e := range edges {
		switch e {
		case EdgeTop:
			flipped[EdgeBottom] = struct{}{}
		case EdgeBottom:
			flipped[EdgeTop] = struct{}{}
		default:
			flipped[e] = struct{}{}
		}
	}
	return flipped
}

func flipHorizontal(s positionerSnapshot, anchor geom.Point[int32]) geom.Rect[int32] {
	flippedAnchor := anchorPoint(s.anchorRect, flipXEdges(s.anchorEdges))
	rect := geom.Rt(flippedAnchor.X, anchor.Y, flippedAnchor.X+s.size.X, anchor.Y+s.size.Y)
	return gravityAdjust(rect, flipXEdges(s.gravityEdges), s.size).Add(s.offset)
}

func flipVertical(s positionerSnapshot, anchor geom.Point[int32]) geom.Rect[int32] {
	flippedAnchor := anchorPoint(s.anchorRect, flipYEdges(s.anchorEdges))
	rect := geom.Rt(anchor.X, flippedAnchor.Y, anchor.X+s.size.X, flippedAnchor.Y+s.size.Y)
	return gravityAdjust(rect, flipYEdges(s.gravityEdges), s.size).Add(s.offset)
}

func clampAxisX(rect, bounds geom.Rect[int32]) geom.Rect[int32] {
	if rect.Min.X < bounds.Min.X {
		rect.Min.X = bounds.Min.X
	}
	if rect.Max.X > bounds.Max.X {
		rect.Max.X = bounds.Max.X
	}
	if rect.Max.X < rect.Min.X {
		rect.Max.X = rect.Min.X
	}
	return rect
}

func clampAxisY(rect, bounds geom.Rect[int32]) geom.Rect[int32] {
	if rect.Min.Y < bounds.Min.Y {
		rect.Min.Y = bounds.Min.Y
	}
	if rect.Max.Y > bounds.Max.Y {
		rect.Max.Y = bounds.Max.Y
	}
	if rect.Max.Y < rect.Min.Y {
		rect.Max.Y = rect.Min.Y
	}
	return rect
}
