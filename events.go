package xdgshell

import "libwl.dev/xdgshell/geom"

// Edge is one side of a rectangle, used both for positioner
// anchor/gravity edge sets and for toplevel resize edges. Grouping
// them under one bitset-friendly type keeps set_anchor, set_gravity,
// and resize's edge decoding sharing one representation without
// sharing constants (spec.md section 9's anchor/gravity bug fix).
type Edge int

// Bit values match xdg_toplevel.resize_edge exactly: top=1, bottom=2,
// left=4, right=8 (not a rotating 1<<iota in top/right/bottom/left
// order).
const (
	EdgeTop    Edge = 1
	EdgeBottom Edge = 2
	EdgeLeft   Edge = 4
	EdgeRight  Edge = 8
)

// EdgeSet is a subset of the four Edge values.
type EdgeSet map[Edge]struct{}

func newEdgeSet(edges ...Edge) EdgeSet {
	s := make(EdgeSet, len(edges))
	for _, e := range edges {
		s[e] = struct{}{}
	}
	return s
}

// Has reports whether e is a member of the set.
func (s EdgeSet) Has(e Edge) bool {
	_, ok := s[e]
	return ok
}

// State is a toplevel configure state, from the set spec.md section 3
// names for XdgToplevel.lastAcknowledgedStates.
type State int

const (
	StateMaximizedH State = iota
	StateMaximizedV
	StateFullscreen
	StateResizing
	StateActivated
)

// StateSet is a subset of the five State values.
type StateSet map[State]struct{}

// NewStateSet builds a StateSet from individual states.
func NewStateSet(states ...State) StateSet {
	s := make(StateSet, len(states))
	for _, st := range states {
		s[st] = struct{}{}
	}
	return s
}

// Has reports whether st is a member of the set.
func (s StateSet) Has(st State) bool {
	_, ok := s[st]
	return ok
}

func (s StateSet) clone() StateSet {
	c := make(StateSet, len(s))
	for k := range s {
		c[k] = struct{}{}
	}
	return c
}

// AttachmentKind identifies one of the side-protocol attachment
// points a toplevel exposes (spec.md section 6): decoration, palette,
// app-menu, and plasma-shell-surface objects. The core only tracks
// their presence weakly; it never owns their lifecycle.
type AttachmentKind int

const (
	AttachmentDecoration AttachmentKind = iota
	AttachmentPalette
	AttachmentAppMenu
	AttachmentPlasmaShellSurface
)

// Size is a non-negative width/height pair. Zero on either axis means
// "no constraint" for min/max size fields (spec.md section 3).
type Size struct {
	W, H int32
}

// ShellObserver receives the signals XdgShell emits (spec.md sections
// 4.5, 4.6). An embedding compositor implements this to react to
// newly-constructed objects and to actually put ping events on the
// wire; this package never touches the transport itself.
type ShellObserver interface {
	// SurfaceCreated fires when get_xdg_surface succeeds.
	SurfaceCreated(surface *XdgSurface)
	// PositionerCreated fires when create_positioner succeeds.
	PositionerCreated(positioner *Positioner)
	// Ping fires when XdgShell.Ping allocates a serial for a client
	// and needs the wire-level ping event actually sent.
	Ping(client Client, serial uint32)
	// PongReceived fires when a pong resolves an outstanding ping.
	PongReceived(client Client, serial uint32)
	// PingDelayed fires on the first missed tick of a ping timer.
	PingDelayed(client Client, serial uint32)
	// PingTimeout fires on the second missed tick; the ping record is
	// removed immediately after.
	PingTimeout(client Client, serial uint32)
}

// SurfaceObserver receives the signals an XdgSurface emits (spec.md
// section 4.2).
type SurfaceObserver interface {
	// ToplevelCreated fires when get_toplevel succeeds.
	ToplevelCreated(surface *XdgSurface, toplevel *XdgToplevel)
	// PopupCreated fires when get_popup succeeds.
	PopupCreated(surface *XdgSurface, popup *XdgPopup)
	// InitializeRequested fires on every commit of a surface that has
	// not yet received its first configure, including a surface that
	// has no role yet.
	InitializeRequested(surface *XdgSurface)
	// WindowGeometryChanged fires when a commit promotes a new,
	// different window geometry from pending to current.
	WindowGeometryChanged(surface *XdgSurface, geometry geom.Rect[int])
	// ConfigureAcknowledged fires when ack_configure names a serial;
	// this is forwarded to the role and, for a toplevel, to whatever
	// owns its configure queue (spec.md section 4.7).
	ConfigureAcknowledged(surface *XdgSurface, serial uint32)
}

// ToplevelObserver receives the signals an XdgToplevel emits (spec.md
// section 4.3).
type ToplevelObserver interface {
	TitleChanged(toplevel *XdgToplevel, title string)
	AppIDChanged(toplevel *XdgToplevel, appID string)
	ParentChanged(toplevel *XdgToplevel, parent *XdgToplevel)
	MinSizeChanged(toplevel *XdgToplevel, size Size)
	MaxSizeChanged(toplevel *XdgToplevel, size Size)

	MoveRequested(toplevel *XdgToplevel, seat Seat, serial uint32)
	ResizeRequested(toplevel *XdgToplevel, seat Seat, serial uint32, edges EdgeSet)
	ShowWindowMenuRequested(toplevel *XdgToplevel, seat Seat, serial uint32, x, y int32)
	MaximizeRequested(toplevel *XdgToplevel, maximized bool)
	FullscreenRequested(toplevel *XdgToplevel, fullscreen bool, output Output)
	MinimizeRequested(toplevel *XdgToplevel)

	// Configured fires from SendConfigure, once the serial has been
	// allocated and queued, so the wire layer can send the
	// xdg_toplevel.configure and xdg_surface.configure pair. states is
	// already packed per the MaximizedH/MaximizedV rule.
	Configured(toplevel *XdgToplevel, serial uint32, size Size, states []State)

	// Closed fires when SendClose is called, once the close event has
	// been handed to the observer to put on the wire.
	Closed(toplevel *XdgToplevel)
}

// PopupObserver receives the signals an XdgPopup emits (spec.md
// section 4.4).
type PopupObserver interface {
	GrabRequested(popup *XdgPopup, seat Seat, serial uint32)
	// Configured fires from SendConfigure, once the serial has been
	// allocated and queued, so the wire layer can send the
	// xdg_popup.configure and xdg_surface.configure pair.
	Configured(popup *XdgPopup, serial uint32, geometry geom.Rect[int])
	// Dismissed fires when SendPopupDone is called.
	Dismissed(popup *XdgPopup)
}
