package xdgshell

import (
	"time"

	"libwl.dev/xdgshell/geom"
)

// fakeResource is the minimal Resource used across every test in this
// package: an id plus the client that bound it.
type fakeResource struct {
	id     uint32
	client Client
}

func (r fakeResource) ID() uint32   { return r.id }
func (r fakeResource) Client() Client { return r.client }

type fakeClient uint64

func (c fakeClient) ID() uint64 { return uint64(c) }

// fakeDisplay hands out strictly increasing serials, same contract as
// spec.md section 3's shell-wide serial counter.
type fakeDisplay struct {
	serial uint32
}

func (d *fakeDisplay) NextSerial() uint32 {
	d.serial++
	return d.serial
}

// fakeSurface is the generic surface/buffer collaborator stub: it
// records the attached role and geometry hint, and lets a test drive
// commits directly.
type fakeSurface struct {
	hasBuffer    bool
	role         any
	commit       func()
	geometryHint geom.Rect[int]
}

func (s *fakeSurface) HasBuffer() bool     { return s.hasBuffer }
func (s *fakeSurface) AttachRole(role any) { s.role = role }

func (s *fakeSurface) OnCommit(f func()) (cancel func()) {
	s.commit = f
	return func() { s.commit = nil }
}

func (s *fakeSurface) SetWindowGeometryHint(r geom.Rect[int]) { s.geometryHint = r }

// Commit invokes the registered commit callback, as if the client
// just committed the wl_surface.
func (s *fakeSurface) Commit() {
	if s.commit != nil {
		s.commit()
	}
}

// fakeTimer / fakeClock let tests drive ping and configure-coalescing
// timers deterministically instead of sleeping.
type fakeTimer struct {
	fn      func()
	stopped bool
}

func (t *fakeTimer) Stop() bool {
	if t.stopped {
		return false
	}
	t.stopped = true
	return true
}

type fakeClock struct {
	timers []*fakeTimer
}

func (c *fakeClock) AfterFunc(d time.Duration, f func()) Timer {
	t := &fakeTimer{fn: f}
	c.timers = append(c.timers, t)
	return t
}

// Fire runs every currently scheduled, unstopped timer once, as if
// exactly one interval elapsed. Callbacks that reschedule (e.g. the
// ping timer's second tick) queue fresh timers visible to the next
// Fire.
func (c *fakeClock) Fire() {
	pending := c.timers
	c.timers = nil
	for _, t := range pending {
		if !t.stopped {
			t.fn()
		}
	}
}

// pending reports how many timers are currently scheduled and not
// stopped.
func (c *fakeClock) pending() int {
	n := 0
	for _, t := range c.timers {
		if !t.stopped {
			n++
		}
	}
	return n
}

// spyShellObserver records every ShellObserver signal for assertion.
type spyShellObserver struct {
	surfacesCreated    []*XdgSurface
	positionersCreated []*Positioner
	pings              []uint32
	pongs              []uint32
	delayed            []uint32
	timedOut           []uint32
}

func (o *spyShellObserver) SurfaceCreated(s *XdgSurface)       { o.surfacesCreated = append(o.surfacesCreated, s) }
func (o *spyShellObserver) PositionerCreated(p *Positioner)    { o.positionersCreated = append(o.positionersCreated, p) }
func (o *spyShellObserver) Ping(c Client, serial uint32)       { o.pings = append(o.pings, serial) }
func (o *spyShellObserver) PongReceived(c Client, serial uint32) { o.pongs = append(o.pongs, serial) }
func (o *spyShellObserver) PingDelayed(c Client, serial uint32) { o.delayed = append(o.delayed, serial) }
func (o *spyShellObserver) PingTimeout(c Client, serial uint32) { o.timedOut = append(o.timedOut, serial) }

// spySurfaceObserver records every SurfaceObserver signal.
type spySurfaceObserver struct {
	toplevelsCreated []*XdgToplevel
	popupsCreated    []*XdgPopup
	initializeCount  int
	geometryChanges  []geom.Rect[int]
	acksSeen         []uint32
}

func (o *spySurfaceObserver) ToplevelCreated(s *XdgSurface, t *XdgToplevel) {
	o.toplevelsCreated = append(o.toplevelsCreated, t)
}
func (o *spySurfaceObserver) PopupCreated(s *XdgSurface, p *XdgPopup) {
	o.popupsCreated = append(o.popupsCreated, p)
}
func (o *spySurfaceObserver) InitializeRequested(s *XdgSurface) { o.initializeCount++ }
func (o *spySurfaceObserver) WindowGeometryChanged(s *XdgSurface, r geom.Rect[int]) {
	o.geometryChanges = append(o.geometryChanges, r)
}
func (o *spySurfaceObserver) ConfigureAcknowledged(s *XdgSurface, serial uint32) {
	o.acksSeen = append(o.acksSeen, serial)
}

// spyToplevelObserver records every ToplevelObserver signal.
type spyToplevelObserver struct {
	titles       []string
	appIDs       []string
	parents      []*XdgToplevel
	minSizes     []Size
	maxSizes     []Size
	moves        int
	resizes      []EdgeSet
	menus        int
	maximizes    []bool
	fullscreens  []bool
	minimizes    int
	configures   []configureSnapshot
	closed       int
}

type configureSnapshot struct {
	serial uint32
	size   Size
	states []State
}

func (o *spyToplevelObserver) TitleChanged(t *XdgToplevel, title string) {
	o.titles = append(o.titles, title)
}
func (o *spyToplevelObserver) AppIDChanged(t *XdgToplevel, appID string) {
	o.appIDs = append(o.appIDs, appID)
}
func (o *spyToplevelObserver) ParentChanged(t *XdgToplevel, parent *XdgToplevel) {
	o.parents = append(o.parents, parent)
}
func (o *spyToplevelObserver) MinSizeChanged(t *XdgToplevel, size Size) {
	o.minSizes = append(o.minSizes, size)
}
func (o *spyToplevelObserver) MaxSizeChanged(t *XdgToplevel, size Size) {
	o.maxSizes = append(o.maxSizes, size)
}
func (o *spyToplevelObserver) MoveRequested(t *XdgToplevel, seat Seat, serial uint32) { o.moves++ }
func (o *spyToplevelObserver) ResizeRequested(t *XdgToplevel, seat Seat, serial uint32, edges EdgeSet) {
	o.resizes = append(o.resizes, edges)
}
func (o *spyToplevelObserver) ShowWindowMenuRequested(t *XdgToplevel, seat Seat, serial uint32, x, y int32) {
	o.menus++
}
func (o *spyToplevelObserver) MaximizeRequested(t *XdgToplevel, maximized bool) {
	o.maximizes = append(o.maximizes, maximized)
}
func (o *spyToplevelObserver) FullscreenRequested(t *XdgToplevel, fullscreen bool, output Output) {
	o.fullscreens = append(o.fullscreens, fullscreen)
}
func (o *spyToplevelObserver) MinimizeRequested(t *XdgToplevel) { o.minimizes++ }
func (o *spyToplevelObserver) Configured(t *XdgToplevel, serial uint32, size Size, states []State) {
	o.configures = append(o.configures, configureSnapshot{serial: serial, size: size, states: states})
}
func (o *spyToplevelObserver) Closed(t *XdgToplevel) { o.closed++ }

// spyPopupObserver records every PopupObserver signal.
type spyPopupObserver struct {
	grabs      int
	configures []popupConfigureSnapshot
	dismissed  int
}

type popupConfigureSnapshot struct {
	serial   uint32
	geometry geom.Rect[int]
}

func (o *spyPopupObserver) GrabRequested(p *XdgPopup, seat Seat, serial uint32) { o.grabs++ }
func (o *spyPopupObserver) Configured(p *XdgPopup, serial uint32, geometry geom.Rect[int]) {
	o.configures = append(o.configures, popupConfigureSnapshot{serial: serial, geometry: geometry})
}
func (o *spyPopupObserver) Dismissed(p *XdgPopup) { o.dismissed++ }

// newTestShell builds an XdgShell wired to a fakeDisplay/fakeClock and
// spy observer, for tests that need the whole object graph.
func newTestShell() (*XdgShell, *spyShellObserver, *fakeDisplay, *fakeClock) {
	display := &fakeDisplay{}
	clock := &fakeClock{}
	observer := &spyShellObserver{}
	shell := NewShell(display, observer, DefaultConfig, clock, nil)
	return shell, observer, display, clock
}
