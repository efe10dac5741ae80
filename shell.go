package xdgshell

import (
	"github.com/sirupsen/logrus"

	"libwl.dev/xdgshell/internal/util"
)

// XdgShell is the global protocol entry point from spec.md section
// 4.5: one per display, owning a {Client -> set of XdgSurface}
// multimap and the outstanding ping timers.
type XdgShell struct {
	display  Display
	observer ShellObserver
	log      *logrus.Entry
	config   Config
	clock    Clock

	surfacesByClient map[uint64]map[*XdgSurface]struct{}
	pings            map[uint32]*pingRecord
	grabStacks       map[*XdgSurface]*seatGrabStack
}

// NewShell constructs an XdgShell. clock may be nil, in which case
// RealClock is used; tests supply a fake to drive ping timers
// deterministically.
func NewShell(display Display, observer ShellObserver, cfg Config, clock Clock, log *logrus.Entry) *XdgShell {
	if clock == nil {
		clock = RealClock
	}
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	return &XdgShell{
		display:          display,
		observer:         observer,
		log:              log,
		config:           cfg.withDefaults(),
		clock:            clock,
		surfacesByClient: make(map[uint64]map[*XdgSurface]struct{}),
		pings:            make(map[uint32]*pingRecord),
		grabStacks:       make(map[*XdgSurface]*seatGrabStack),
	}
}

// CreatePositioner implements create_positioner(id) (spec.md section
// 4.5).
func (sh *XdgShell) CreatePositioner(resource Resource) *Positioner {
	p := NewPositioner(resource)
	sh.observer.PositionerCreated(p)
	return p
}

// GetXdgSurface implements get_xdg_surface(id, surface) (spec.md
// section 4.5). Fails with unconfigured_buffer if surface already has
// a committed buffer.
func (sh *XdgShell) GetXdgSurface(resource Resource, client Client, surface Surface, observer SurfaceObserver) (*XdgSurface, error) {
	xs, err := newXdgSurface(sh, resource, client, surface, observer, sh.log)
	if err != nil {
		return nil, err
	}

	set, ok := sh.surfacesByClient[client.ID()]
	if !ok {
		set = make(map[*XdgSurface]struct{})
		sh.surfacesByClient[client.ID()] = set
	}
	set[xs] = struct{}{}

	sh.observer.SurfaceCreated(xs)
	return xs, nil
}

// Destroy implements destroy on the xdg_wm_base global (spec.md
// section 4.5): fails with defunct_surfaces if the client still owns
// any XdgSurface.
func (sh *XdgShell) Destroy(resource Resource, client Client) error {
	if set, ok := sh.surfacesByClient[client.ID()]; ok && len(set) > 0 {
		return newProtocolError(InterfaceWMBase, resource.ID(), ErrorDefunctSurfaces,
			"xdg_wm_base destroyed with %d outstanding xdg_surface(s)", len(set))
	}
	delete(sh.surfacesByClient, client.ID())
	return nil
}

// forgetSurface removes xs from its client's registry, e.g. after
// XdgSurface.Destroy.
func (sh *XdgShell) forgetSurface(xs *XdgSurface) {
	if set, ok := sh.surfacesByClient[xs.client.ID()]; ok {
		delete(set, xs)
		if len(set) == 0 {
			delete(sh.surfacesByClient, xs.client.ID())
		}
	}
	delete(sh.grabStacks, xs)
}

// Surfaces returns the set of XdgSurfaces currently owned by client.
func (sh *XdgShell) Surfaces(client Client) []*XdgSurface {
	set := sh.surfacesByClient[client.ID()]
	out := make([]*XdgSurface, 0, len(set))
	for xs := range set {
		out = append(out, xs)
	}
	return out
}

// SurfaceByResource finds the XdgSurface bound to resource id among
// client's surfaces, for wire-dispatch layers that only have the
// numeric object id off the wire.
func (sh *XdgShell) SurfaceByResource(client Client, id uint32) (*XdgSurface, bool) {
	return util.FindFunc(sh.Surfaces(client), func(xs *XdgSurface) bool {
		return xs.Resource().ID() == id
	})
}

func (sh *XdgShell) notifyToplevelCreated(*XdgToplevel) {}

// notifyPopupCreated assigns the popup to its root ancestor's grab
// stack (spec.md section 9 redesign: see grabstack.go).
func (sh *XdgShell) notifyPopupCreated(p *XdgPopup) {
	root := sh.rootAncestor(p.parent)
	stack, ok := sh.grabStacks[root]
	if !ok {
		stack = newSeatGrabStack()
		sh.grabStacks[root] = stack
	}
	p.grabSeat = stack
}

// rootAncestor walks up the popup-parent chain to the surface that
// isn't itself a popup: either a toplevel or a foreign surface this
// shell doesn't own.
func (sh *XdgShell) rootAncestor(surface *XdgSurface) *XdgSurface {
	for surface.Role() == RolePopup && surface.Popup().Parent() != nil {
		surface = surface.Popup().Parent()
	}
	return surface
}

// Ping implements ping(surface) -> serial (spec.md section 4.5):
// allocates a serial, sends the ping event to the observer, and
// registers a 1000ms ping timer (spec.md section 4.6).
func (sh *XdgShell) Ping(client Client) uint32 {
	serial := sh.display.NextSerial()
	rec := newPingRecord(sh, client, serial)
	sh.pings[serial] = rec
	rec.start()
	sh.observer.Ping(client, serial)
	return serial
}

// Pong implements pong(serial) (spec.md section 4.5): cancels the
// matching ping timer, if any is outstanding, and emits
// pongReceived.
func (sh *XdgShell) Pong(client Client, serial uint32) {
	rec, ok := sh.pings[serial]
	if !ok {
		return
	}
	rec.stop()
	delete(sh.pings, serial)
	sh.observer.PongReceived(client, serial)
}

// forgetPing removes a ping record after it times out (called by
// pingRecord itself).
func (sh *XdgShell) forgetPing(serial uint32) {
	delete(sh.pings, serial)
}

// PendingPings reports the serials of currently outstanding pings,
// for tests and diagnostics.
func (sh *XdgShell) PendingPings() []uint32 {
	out := make([]uint32, 0, len(sh.pings))
	for s := range sh.pings {
		out = append(out, s)
	}
	return out
}
