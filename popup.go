package xdgshell

import "libwl.dev/xdgshell/geom"

// XdgPopup is the popup role from spec.md section 4.4: it owns a
// positioner snapshot and a parent, and emits grab requests.
type XdgPopup struct {
	surface    *XdgSurface
	resource   Resource
	parent     *XdgSurface
	positioner positionerSnapshot
	observer   PopupObserver

	haveExplicitGrab bool
	queue            *configureQueue

	grabSeat *seatGrabStack
}

func newXdgPopup(surface *XdgSurface, resource Resource, parent *XdgSurface, positioner positionerSnapshot, observer PopupObserver) *XdgPopup {
	return &XdgPopup{
		surface:    surface,
		resource:   resource,
		parent:     parent,
		positioner: positioner,
		observer:   observer,
		queue:      newConfigureQueue(),
	}
}

// Surface returns the owning XdgSurface.
func (p *XdgPopup) Surface() *XdgSurface { return p.surface }

// Parent returns the parent XdgSurface named at construction.
func (p *XdgPopup) Parent() *XdgSurface { return p.parent }

// HaveExplicitGrab reports whether Grab has been called.
func (p *XdgPopup) HaveExplicitGrab() bool { return p.haveExplicitGrab }

// PlaceRelativeTo computes this popup's geometry from its positioner
// snapshot, anchored against the parent's window geometry and
// constrained to bounds (spec.md section 4.1's positioner math,
// applied at the point spec.md section 1 keeps it in scope).
func (p *XdgPopup) PlaceRelativeTo(parentGeometry geom.Rect[int], bounds geom.Rect[int32]) geom.Rect[int] {
	origin := geom.PConv[int32](parentGeometry.Min)
	local := p.positioner.place(bounds.Sub(origin))
	return geom.RConv[int](local.Add(origin))
}

// Grab implements grab(seat,serial) (spec.md section 4.4): it marks
// haveExplicitGrab and pushes this popup onto its ancestor's grab
// stack, which XdgPopup.Destroy consults to enforce topmost-first
// destruction (spec.md section 9, resolved per SPEC_FULL.md).
func (p *XdgPopup) Grab(seat Seat, serial uint32) {
	p.haveExplicitGrab = true
	if p.grabSeat != nil {
		p.grabSeat.push(p)
	}
	p.observer.GrabRequested(p, seat, serial)
}

// Destroy implements destroy: the protocol requires topmost-first
// destruction of grabbing popups. spec.md section 9 flags the
// reference server as not enforcing this; SPEC_FULL.md's redesign
// adds the check back via the grab stack.
func (p *XdgPopup) Destroy() error {
	if p.grabSeat != nil && p.haveExplicitGrab {
		if err := p.grabSeat.checkTopmost(p); err != nil {
			return err
		}
		p.grabSeat.remove(p)
	}
	return nil
}

// SendConfigure implements sendConfigure(rect) (spec.md section 4.4):
// allocates the next serial, records it in the configure queue, and
// marks the surface configured.
func (p *XdgPopup) SendConfigure(display Display, rect geom.Rect[int]) uint32 {
	serial := display.NextSerial()
	p.queue.push(configureRecord{serial: serial, geometry: rect})
	p.surface.isConfigured = true
	p.observer.Configured(p, serial, rect)
	return serial
}

// ackConfigure applies ack_configure(s) to this popup's configure
// queue.
func (p *XdgPopup) ackConfigure(serial uint32) {
	p.queue.ack(serial)
}

// SendPopupDone implements sendPopupDone(): a unilateral dismissal
// signal.
func (p *XdgPopup) SendPopupDone() {
	p.observer.Dismissed(p)
}

// commit is XdgSurface's roleCommit hook (spec.md section 4.2,
// "Commit handling"): a popup has no role-specific pending state of
// its own beyond the window geometry XdgSurface already promotes, so
// this only reports whether the surface is still awaiting its first
// configure.
func (p *XdgPopup) commit() (initialize bool) {
	return !p.surface.IsConfigured()
}
