package xdgshell

import "libwl.dev/xdgshell/geom"

// toplevelState is one half of the pending/current double buffer for
// an XdgToplevel (spec.md section 3).
type toplevelState struct {
	minSize Size
	maxSize Size
}

// XdgToplevel is the toplevel role from spec.md section 4.3: it owns
// title, app-id, min/max size, parent, and a state set, and emits
// request signals for the compositor to act on.
type XdgToplevel struct {
	surface  *XdgSurface
	resource Resource
	observer ToplevelObserver

	windowTitle string
	windowClass string
	parent      *XdgToplevel

	pending toplevelState
	current toplevelState

	lastAcknowledgedStates StateSet

	queue *configureQueue

	attachments map[AttachmentKind]any
}

func newXdgToplevel(surface *XdgSurface, resource Resource, observer ToplevelObserver) *XdgToplevel {
	return &XdgToplevel{
		surface:                surface,
		resource:               resource,
		observer:               observer,
		lastAcknowledgedStates: NewStateSet(),
		queue:                  newConfigureQueue(),
		attachments:            make(map[AttachmentKind]any),
	}
}

// Surface returns the owning XdgSurface.
func (t *XdgToplevel) Surface() *XdgSurface { return t.surface }

// Title returns the current window title.
func (t *XdgToplevel) Title() string { return t.windowTitle }

// AppID returns the current window class / application id.
func (t *XdgToplevel) AppID() string { return t.windowClass }

// Parent returns the current parent, or nil.
func (t *XdgToplevel) Parent() *XdgToplevel { return t.parent }

// MinSize returns the effective minimum size: (0,0) if unset.
func (t *XdgToplevel) MinSize() Size { return t.current.minSize }

// MaxSize returns the effective maximum size, with zero fields
// meaning "no constraint" reported as MaxInt32 (spec.md section 3:
// "Effective maximum defaults to (∞,∞)").
func (t *XdgToplevel) MaxSize() Size {
	return effectiveMax(t.current.maxSize)
}

func effectiveMax(s Size) Size {
	const inf = int32(1<<31 - 1)
	if s.W == 0 {
		s.W = inf
	}
	if s.H == 0 {
		s.H = inf
	}
	return s
}

// States returns the state set from the last configure the client
// acknowledged.
func (t *XdgToplevel) States() StateSet { return t.lastAcknowledgedStates.clone() }

// Attach records a weak, non-owning handle for one of the side
// protocol attachment points (spec.md section 6). At most one of each
// kind may be attached at a time; attaching again replaces the prior
// handle without tearing anything down.
func (t *XdgToplevel) Attach(kind AttachmentKind, handle any) {
	t.attachments[kind] = handle
}

// Detach clears a previously attached handle. Detaching (or the
// attached object being destroyed elsewhere) must never affect the
// toplevel itself.
func (t *XdgToplevel) Detach(kind AttachmentKind) {
	delete(t.attachments, kind)
}

// Attachment returns the handle attached for kind, if any.
func (t *XdgToplevel) Attachment(kind AttachmentKind) (any, bool) {
	h, ok := t.attachments[kind]
	return h, ok
}

// SetParent implements set_parent(parent?) (spec.md section 4.3): no
// configured precondition applies.
func (t *XdgToplevel) SetParent(parent *XdgToplevel) {
	if t.parent == parent {
		return
	}
	t.parent = parent
	t.observer.ParentChanged(t, parent)
}

// SetTitle implements set_title(s).
func (t *XdgToplevel) SetTitle(title string) {
	if t.windowTitle == title {
		return
	}
	t.windowTitle = title
	t.observer.TitleChanged(t, title)
}

// SetAppID implements set_app_id(s).
func (t *XdgToplevel) SetAppID(appID string) {
	if t.windowClass == appID {
		return
	}
	t.windowClass = appID
	t.observer.AppIDChanged(t, appID)
}

func (t *XdgToplevel) requireConfigured(request string) error {
	if !t.surface.IsConfigured() {
		return newProtocolError(InterfaceSurface, t.surface.Resource().ID(), ErrorNotConstructed,
			"%s requires the surface to have received a configure first", request)
	}
	return nil
}

// ShowWindowMenu implements show_window_menu(seat,serial,x,y).
func (t *XdgToplevel) ShowWindowMenu(seat Seat, serial uint32, x, y int32) error {
	if err := t.requireConfigured("show_window_menu"); err != nil {
		return err
	}
	t.observer.ShowWindowMenuRequested(t, seat, serial, x, y)
	return nil
}

// Move implements move(seat,serial).
func (t *XdgToplevel) Move(seat Seat, serial uint32) error {
	if err := t.requireConfigured("move"); err != nil {
		return err
	}
	t.observer.MoveRequested(t, seat, serial)
	return nil
}

// decodeResizeEdges decodes the wire resize-edges bitmask into an
// EdgeSet, independent of the anchor/gravity decode table.
func decodeResizeEdges(mask uint32) EdgeSet {
	edges := newEdgeSet()
	if mask&uint32(EdgeTop) != 0 {
		edges[EdgeTop] = struct{}{}
	}
	if mask&uint32(EdgeRight) != 0 {
		edges[EdgeRight] = struct{}{}
	}
	if mask&uint32(EdgeBottom) != 0 {
		edges[EdgeBottom] = struct{}{}
	}
	if mask&uint32(EdgeLeft) != 0 {
		edges[EdgeLeft] = struct{}{}
	}
	return edges
}

// Resize implements resize(seat,serial,edges).
func (t *XdgToplevel) Resize(seat Seat, serial uint32, edges uint32) error {
	if err := t.requireConfigured("resize"); err != nil {
		return err
	}
	t.observer.ResizeRequested(t, seat, serial, decodeResizeEdges(edges))
	return nil
}

// SetMaxSize implements set_max_size(w,h).
func (t *XdgToplevel) SetMaxSize(w, h int32) error {
	if w < 0 || h < 0 {
		return newProtocolError(InterfaceToplevel, t.resource.ID(), AnonymousError,
			"max size must be non-negative, got %dx%d", w, h)
	}
	t.pending.maxSize = Size{W: w, H: h}
	return nil
}

// SetMinSize implements set_min_size(w,h).
func (t *XdgToplevel) SetMinSize(w, h int32) error {
	if w < 0 || h < 0 {
		return newProtocolError(InterfaceToplevel, t.resource.ID(), AnonymousError,
			"min size must be non-negative, got %dx%d", w, h)
	}
	t.pending.minSize = Size{W: w, H: h}
	return nil
}

// SetMaximized implements set_maximized.
func (t *XdgToplevel) SetMaximized() { t.observer.MaximizeRequested(t, true) }

// UnsetMaximized implements unset_maximized.
func (t *XdgToplevel) UnsetMaximized() { t.observer.MaximizeRequested(t, false) }

// SetFullscreen implements set_fullscreen(output?).
func (t *XdgToplevel) SetFullscreen(output Output) {
	t.observer.FullscreenRequested(t, true, output)
}

// UnsetFullscreen implements unset_fullscreen.
func (t *XdgToplevel) UnsetFullscreen() {
	t.observer.FullscreenRequested(t, false, nil)
}

// SetMinimized implements set_minimized.
func (t *XdgToplevel) SetMinimized() { t.observer.MinimizeRequested(t) }

// commit is XdgSurface's roleCommit hook (spec.md section 4.3,
// "Commit"). It reports whether the surface should treat this as the
// not-yet-configured initialize path.
func (t *XdgToplevel) commit() (initialize bool) {
	if !t.surface.IsConfigured() {
		return true
	}

	if t.pending.minSize != t.current.minSize {
		t.current.minSize = t.pending.minSize
		t.observer.MinSizeChanged(t, t.current.minSize)
	}
	if t.pending.maxSize != t.current.maxSize {
		t.current.maxSize = t.pending.maxSize
		t.observer.MaxSizeChanged(t, effectiveMax(t.current.maxSize))
	}
	return false
}

// packStates implements the state-set packing rule from spec.md
// section 4.3: MaximizedH ∧ MaximizedV collapse into one Maximized
// entry, the rest pass through unchanged.
func packStates(states StateSet) []State {
	packed := make([]State, 0, len(states))
	if states.Has(StateMaximizedH) && states.Has(StateMaximizedV) {
		packed = append(packed, StateMaximizedH)
	} else {
		if states.Has(StateMaximizedH) {
			packed = append(packed, StateMaximizedH)
		}
		if states.Has(StateMaximizedV) {
			packed = append(packed, StateMaximizedV)
		}
	}
	if states.Has(StateFullscreen) {
		packed = append(packed, StateFullscreen)
	}
	if states.Has(StateResizing) {
		packed = append(packed, StateResizing)
	}
	if states.Has(StateActivated) {
		packed = append(packed, StateActivated)
	}
	return packed
}

// SendConfigure implements sendConfigure(size, states) (spec.md
// section 4.3): it assigns the next display serial, records the
// configure in the queue, hands it to the observer to send the
// role-specific and surface configures, and marks isConfigured.
// Returns the assigned serial (spec.md section 8 property 1: serials
// are strictly increasing per XdgSurface).
func (t *XdgToplevel) SendConfigure(display Display, size geom.Point[int], states StateSet) uint32 {
	serial := display.NextSerial()
	geometry := geom.Rt(0, 0, size.X, size.Y)
	t.queue.push(configureRecord{serial: serial, geometry: geometry, states: states.clone()})
	t.surface.isConfigured = true
	t.observer.Configured(t, serial, Size{W: int32(size.X), H: int32(size.Y)}, packStates(states))
	return serial
}

// ackConfigure applies ack_configure(s) to this toplevel's configure
// queue: every queued configure with serial <= s is evicted, and the
// newest such record's state set becomes lastAcknowledgedStates
// (spec.md section 4.7, section 8 property 2).
func (t *XdgToplevel) ackConfigure(serial uint32) {
	acked, ok := t.queue.ack(serial)
	if ok {
		t.lastAcknowledgedStates = acked.states
	}
}

// SendClose implements sendClose(): a unilateral request that the
// client destroy this toplevel.
func (t *XdgToplevel) SendClose() {
	t.observer.Closed(t)
}
