package xdgshell

import (
	"golang.org/x/exp/slices"

	"libwl.dev/xdgshell/geom"
)

// configureRecord is the "Configure event record" from spec.md
// section 3: a serial, a geometry, and role-specific payload. states
// is only meaningful for toplevel configures; it is the zero value
// for popups.
type configureRecord struct {
	serial   uint32
	geometry geom.Rect[int]
	states   StateSet
}

// configureQueue is the FIFO of pending configure events owned by
// each XdgToplevel and XdgPopup (spec.md section 4.7): ack_configure performs a
// prefix truncation, evicting every record with serial <= the acked
// value and remembering the newest such record.
type configureQueue struct {
	records []configureRecord
}

func newConfigureQueue() *configureQueue {
	return &configureQueue{}
}

// push appends a newly-sent configure. Callers must only push serials
// in strictly increasing order (spec.md section 5, "Ordering
// guarantees"); SendConfigure draws every serial from the display's
// monotonic counter, so this holds by construction.
func (q *configureQueue) push(r configureRecord) {
	q.records = append(q.records, r)
}

// ack evicts every record with serial <= serial and returns the
// newest evicted record, which becomes lastAcknowledgedConfigure
// (spec.md section 3, section 8 property 2).
func (q *configureQueue) ack(serial uint32) (configureRecord, bool) {
	cut := 0
	found := false
	var newest configureRecord
	for i, r := range q.records {
		if r.serial > serial {
			break
		}
		newest = r
		found = true
		cut = i + 1
	}
	q.records = slices.Delete(q.records, 0, cut)
	return newest, found
}

// pending reports the queue's current records, oldest first. Used by
// tests to assert eviction behavior.
func (q *configureQueue) pending() []configureRecord {
	return q.records
}
