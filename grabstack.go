package xdgshell

import "container/list"

// seatGrabStack is a LIFO of grabbing popups sharing one top-level
// ancestor, back = most recently grabbed = topmost. It resolves the
// "Popup destroy ordering" open question from spec.md section 9: the
// reference server does not enforce topmost-first destruction; this
// redesign adds the check spec.md says a faithful rewrite should.
//
// The list-based idiom is grounded on mstarongithub-way2gay's
// topLevelList (server.go), which tracks toplevel z-order the same
// way with container/list.
type seatGrabStack struct {
	stack *list.List
}

func newSeatGrabStack() *seatGrabStack {
	return &seatGrabStack{stack: list.New()}
}

func (s *seatGrabStack) push(p *XdgPopup) {
	s.stack.PushBack(p)
}

func (s *seatGrabStack) remove(p *XdgPopup) {
	for e := s.stack.Back(); e != nil; e = e.Prev() {
		if e.Value.(*XdgPopup) == p {
			s.stack.Remove(e)
			return
		}
	}
}

// checkTopmost returns not_the_topmost_popup unless p is the most
// recently grabbed, still-live popup in the stack.
func (s *seatGrabStack) checkTopmost(p *XdgPopup) error {
	back := s.stack.Back()
	if back == nil || back.Value.(*XdgPopup) != p {
		return newProtocolError(InterfaceWMBase, p.resource.ID(), ErrorNotTheTopmostPopup,
			"popup destroyed out of order: the topmost grabbing popup must be destroyed first")
	}
	return nil
}
