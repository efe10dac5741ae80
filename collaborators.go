package xdgshell

import "libwl.dev/xdgshell/geom"

// Client is an opaque identity supplied by the transport. It is used
// only as a key for grouping surfaces owned by the same connection
// (spec.md section 3, Client).
type Client interface {
	// ID returns a value stable for the lifetime of the connection,
	// suitable for use as a map key.
	ID() uint64
}

// Surface is the narrow view this package needs of the compositor's
// generic surface/buffer subsystem (spec.md section 6). Buffers,
// damage, and input regions live entirely on the other side of this
// interface.
type Surface interface {
	// HasBuffer reports whether the surface already has a committed
	// buffer attached. get_xdg_surface must fail with
	// unconfigured_buffer if this is already true.
	HasBuffer() bool

	// AttachRole is called exactly once, when a role (toplevel or
	// popup) is assigned to the surface.
	AttachRole(role any)

	// OnCommit registers a callback invoked synchronously whenever the
	// client commits this surface. Returns a function that cancels the
	// registration.
	OnCommit(func()) (cancel func())

	// SetWindowGeometryHint forwards the current window-geometry to
	// the surface subsystem, which uses it for input/hit-testing
	// purposes outside this package's concern.
	SetWindowGeometryHint(geom.Rect[int])
}

// Display is the narrow view of the compositor's event loop and
// serial allocator (spec.md section 6).
type Display interface {
	// NextSerial returns the next value from the display-wide
	// monotonically increasing serial counter. Every configure and
	// ping event uses this counter.
	NextSerial() uint32
}

// Seat and Output are opaque handles identifying the seat or output
// passed through to emitted request signals. This package never
// inspects their contents.
type Seat any
type Output any

// Resource identifies a single wire object bound to a client, for
// error reporting and pinging. The wire-dispatch layer supplies a
// concrete implementation; this package treats it opaquely aside from
// ID and the two accessors below.
type Resource interface {
	ID() uint32
	Client() Client
}
