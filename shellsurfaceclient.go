package xdgshell

import (
	"time"

	"libwl.dev/xdgshell/geom"
)

// ShellSurfaceClient is the compositor-side collaborator from spec.md
// section 4.7. It lives conceptually one layer above XdgToplevel, in
// the compositor, but its coalescing contract is specified here
// because it is load-bearing for spec.md section 8 property 1
// (strictly increasing serials) and scenario S6.
//
// It watches a toplevel's requested frame geometry and coalesces
// rapid mutations within one event-loop turn into a single
// SendConfigure call, and reconciles the client's committed geometry
// against the last acknowledged configure.
type ShellSurfaceClient struct {
	toplevel *XdgToplevel
	display  Display
	clock    Clock
	coalesce time.Duration

	requestedFrameGeometry geom.Rect[int]
	bufferGeometry         geom.Rect[int]
	frameGeometry          geom.Rect[int]

	lastAcknowledgedGeometry geom.Rect[int]
	haveAcknowledged         bool

	pendingTimer Timer

	onGeometryChanged func(geom.Rect[int])
}

// NewShellSurfaceClient constructs a coalescing wrapper around
// toplevel. cfg supplies the coalescing delay (spec.md section 5:
// "exact value is an implementation choice so long as a single
// event-loop turn can batch multiple geometry updates into one
// configure").
func NewShellSurfaceClient(toplevel *XdgToplevel, display Display, clock Clock, cfg Config, onGeometryChanged func(geom.Rect[int])) *ShellSurfaceClient {
	if clock == nil {
		clock = RealClock
	}
	return &ShellSurfaceClient{
		toplevel:          toplevel,
		display:           display,
		clock:             clock,
		coalesce:          cfg.ConfigureCoalesce(),
		onGeometryChanged: onGeometryChanged,
	}
}

// RequestGeometry implements requestGeometry(rect): it updates
// requestedFrameGeometry and schedules a configure (spec.md section
// 4.7).
func (c *ShellSurfaceClient) RequestGeometry(rect geom.Rect[int]) {
	c.requestedFrameGeometry = rect
	c.scheduleConfigure()
}

// scheduleConfigure coalesces: a timer defers emission until the
// current batch of geometry mutations settles, so at most one
// configure is in flight per tick (spec.md section 4.7, scenario S6).
func (c *ShellSurfaceClient) scheduleConfigure() {
	if c.pendingTimer != nil {
		return
	}
	c.pendingTimer = c.clock.AfterFunc(c.coalesce, func() {
		c.pendingTimer = nil
		c.flushConfigure()
	})
}

func (c *ShellSurfaceClient) flushConfigure() {
	size := c.requestedFrameGeometry.Size()
	states := c.toplevel.States()
	c.toplevel.SendConfigure(c.display, size, states)
}

// UpdateGeometry implements updateGeometry(rect): it atomically swaps
// buffer and frame rectangles and notifies of the change.
func (c *ShellSurfaceClient) UpdateGeometry(rect geom.Rect[int]) {
	c.bufferGeometry = rect
	c.frameGeometry = rect
	if c.onGeometryChanged != nil {
		c.onGeometryChanged(rect)
	}
}

// AcknowledgedGeometry records the geometry named by the newest
// configure with serial <= the just-acknowledged one, so HandleCommit
// can decide whether the client's committed state may be applied yet.
func (c *ShellSurfaceClient) AcknowledgedGeometry(geometry geom.Rect[int]) {
	c.lastAcknowledgedGeometry = geometry
	c.haveAcknowledged = true
}

// HandleCommit implements the commit rule from spec.md section 4.7:
// if the current surface state matches lastAcknowledgedConfigure's
// geometry, apply it to the frame geometry; otherwise defer (the
// client is still catching up to an older configure).
func (c *ShellSurfaceClient) HandleCommit(committedGeometry geom.Rect[int]) (applied bool) {
	if !c.haveAcknowledged || !committedGeometry.Eq(c.lastAcknowledgedGeometry) {
		return false
	}
	c.UpdateGeometry(committedGeometry)
	return true
}
