package xdgshell

// pingRecord is the {serial -> timer, attemptCount} record from
// spec.md section 3. Lifecycle: created on Ping, destroyed on Pong or
// after the second missed tick (spec.md section 4.6).
type pingRecord struct {
	shell   *XdgShell
	client  Client
	serial  uint32
	attempt int
	timer   Timer
}

func newPingRecord(shell *XdgShell, client Client, serial uint32) *pingRecord {
	return &pingRecord{shell: shell, client: client, serial: serial}
}

func (r *pingRecord) start() {
	r.scheduleTick()
}

func (r *pingRecord) scheduleTick() {
	r.timer = r.shell.clock.AfterFunc(r.shell.config.PingInterval(), r.tick)
}

// tick fires once per ping interval. The first tick emits
// pingDelayed and reschedules; the second emits pingTimeout and
// removes the record (spec.md section 8 property 8).
func (r *pingRecord) tick() {
	r.attempt++
	if r.attempt == 1 {
		r.shell.observer.PingDelayed(r.client, r.serial)
		r.scheduleTick()
		return
	}
	r.shell.observer.PingTimeout(r.client, r.serial)
	r.shell.forgetPing(r.serial)
}

// stop cancels the timer, e.g. because a pong arrived.
func (r *pingRecord) stop() {
	if r.timer != nil {
		r.timer.Stop()
	}
}
