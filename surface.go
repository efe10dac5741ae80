package xdgshell

import (
	"github.com/sirupsen/logrus"

	"libwl.dev/xdgshell/geom"
)

// Role identifies which role, if any, has been bound to an
// XdgSurface (spec.md section 3).
type Role int

const (
	RoleUnset Role = iota
	RoleToplevel
	RolePopup
)

// XdgSurface is the per-surface protocol object from spec.md section
// 4.2: it owns pending/current window geometry, tracks role
// assignment, forwards commit into the role, and brokers
// configure-serial acknowledgements.
type XdgSurface struct {
	resource Resource
	surface  Surface
	client   Client
	shell    *XdgShell
	observer SurfaceObserver
	log      *logrus.Entry

	role         Role
	toplevel     *XdgToplevel
	popup        *XdgPopup
	roleCommit   func() (initialize bool)

	pendingGeometry geom.Rect[int]
	currentGeometry geom.Rect[int]
	geometrySet     bool

	isConfigured bool

	cancelCommit func()
}

// newXdgSurface is XdgShell.GetXdgSurface's constructor. It requires
// surface not already have a committed buffer, per spec.md section
// 4.5 / 8 property 4.
func newXdgSurface(shell *XdgShell, resource Resource, client Client, surface Surface, observer SurfaceObserver, log *logrus.Entry) (*XdgSurface, error) {
	if surface.HasBuffer() {
		return nil, newProtocolError(InterfaceWMBase, resource.ID(), ErrorUnconfiguredBuffer,
			"xdg_surface requested for a wl_surface that already has a buffer attached")
	}

	xs := &XdgSurface{
		resource: resource,
		surface:  surface,
		client:   client,
		shell:    shell,
		observer: observer,
		log:      log,
	}
	xs.cancelCommit = surface.OnCommit(xs.onCommit)
	return xs, nil
}

// Resource returns the wire resource this surface is bound to.
func (xs *XdgSurface) Resource() Resource { return xs.resource }

// Client returns the owning client.
func (xs *XdgSurface) Client() Client { return xs.client }

// Role reports which role, if any, has been assigned.
func (xs *XdgSurface) Role() Role { return xs.role }

// Toplevel returns the bound toplevel role, or nil.
func (xs *XdgSurface) Toplevel() *XdgToplevel { return xs.toplevel }

// Popup returns the bound popup role, or nil.
func (xs *XdgSurface) Popup() *XdgPopup { return xs.popup }

// IsConfigured reports whether the first configure has been sent.
func (xs *XdgSurface) IsConfigured() bool { return xs.isConfigured }

// CurrentGeometry returns the last-committed window geometry.
func (xs *XdgSurface) CurrentGeometry() geom.Rect[int] { return xs.currentGeometry }

// GetToplevel implements get_toplevel(id) (spec.md section 4.2).
func (xs *XdgSurface) GetToplevel(resource Resource, observer ToplevelObserver) (*XdgToplevel, error) {
	if xs.role != RoleUnset {
		return nil, newProtocolError(InterfaceSurface, xs.resource.ID(), ErrorAlreadyConstructed,
			"surface already has a role assigned")
	}

	top := newXdgToplevel(xs, resource, observer)
	xs.role = RoleToplevel
	xs.toplevel = top
	xs.roleCommit = top.commit
	xs.surface.AttachRole(top)

	xs.log.WithField("resource", resource.ID()).Debug("xdg_surface: toplevel role assigned")
	xs.observer.ToplevelCreated(xs, top)
	xs.shell.notifyToplevelCreated(top)
	return top, nil
}

// GetPopup implements get_popup(id, parent, positioner) (spec.md
// section 4.2). parent must be non-nil (no extension for a deferred
// parent is supported) and positioner must be complete.
func (xs *XdgSurface) GetPopup(resource Resource, parent *XdgSurface, positioner *Positioner, observer PopupObserver) (*XdgPopup, error) {
	if xs.role != RoleUnset {
		return nil, newProtocolError(InterfaceSurface, xs.resource.ID(), ErrorAlreadyConstructed,
			"surface already has a role assigned")
	}
	if parent == nil {
		return nil, newProtocolError(InterfaceSurface, xs.resource.ID(), AnonymousError,
			"get_popup requires a non-null parent surface")
	}
	if positioner == nil || !positioner.IsComplete() {
		return nil, newProtocolError(InterfaceSurface, xs.resource.ID(), ErrorInvalidPositioner,
			"get_popup requires a complete positioner")
	}

	pop := newXdgPopup(xs, resource, parent, positioner.snapshot(), observer)
	xs.role = RolePopup
	xs.popup = pop
	xs.roleCommit = pop.commit
	xs.surface.AttachRole(pop)

	xs.log.WithField("resource", resource.ID()).Debug("xdg_surface: popup role assigned")
	xs.observer.PopupCreated(xs, pop)
	xs.shell.notifyPopupCreated(pop)
	return pop, nil
}

// SetWindowGeometry implements set_window_geometry(x,y,w,h) (spec.md
// section 4.2). A role must already be assigned, and the size must be
// positive.
func (xs *XdgSurface) SetWindowGeometry(x, y, w, h int) error {
	if xs.role == RoleUnset {
		return newProtocolError(InterfaceSurface, xs.resource.ID(), ErrorNotConstructed,
			"set_window_geometry requires a role to already be assigned")
	}
	if w < 1 || h < 1 {
		return newProtocolError(InterfaceSurface, xs.resource.ID(), AnonymousError,
			"window geometry size must be positive, got %dx%d", w, h)
	}

	xs.pendingGeometry = geom.Rt(x, y, x+w, y+h)
	xs.geometrySet = true
	return nil
}

// AckConfigure implements ack_configure(serial) (spec.md section
// 4.2): it forwards straight to the role, which owns its own
// configure queue and acknowledgement bookkeeping.
func (xs *XdgSurface) AckConfigure(serial uint32) {
	xs.observer.ConfigureAcknowledged(xs, serial)
	switch xs.role {
	case RoleToplevel:
		xs.toplevel.ackConfigure(serial)
	case RolePopup:
		xs.popup.ackConfigure(serial)
	}
}

// Destroy implements destroy (spec.md section 4.2): if a role object
// still exists this is a compositor-side misuse, logged and
// tolerated rather than treated as fatal.
func (xs *XdgSurface) Destroy() {
	if xs.role != RoleUnset {
		xs.log.WithField("resource", xs.resource.ID()).
			Warn("xdg_surface destroyed while its role object still exists")
	}
	if xs.cancelCommit != nil {
		xs.cancelCommit()
	}
	xs.shell.forgetSurface(xs)
}

// onCommit is invoked by the surface subsystem when the wrapped
// Surface commits (spec.md section 4.2, "Commit handling").
func (xs *XdgSurface) onCommit() {
	initialize := true
	if xs.roleCommit != nil {
		initialize = xs.roleCommit()
	}
	if initialize {
		xs.observer.InitializeRequested(xs)
		return
	}
	xs.promoteGeometry()
}

// promoteGeometry atomically promotes pending window geometry into
// current, emitting a change signal iff the value actually changed
// (spec.md section 4.2, step 3, and section 8 property 10).
func (xs *XdgSurface) promoteGeometry() {
	if !xs.geometrySet {
		return
	}
	next := xs.pendingGeometry
	if next.Eq(xs.currentGeometry) {
		return
	}
	xs.currentGeometry = next
	xs.surface.SetWindowGeometryHint(next)
	xs.observer.WindowGeometryChanged(xs, next)
}
