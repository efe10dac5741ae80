// Command xdgshelld is a smoke-test harness for the xdgshell state
// machine: it wires a config file and an in-memory Display/Client
// pair, drives one shell lifecycle through the observer's logged
// output, and exits. It has no real wire transport; that lives
// outside this module.
package main

import (
	"flag"
	"os"
	"sync/atomic"

	"github.com/sirupsen/logrus"

	"libwl.dev/xdgshell"
	"libwl.dev/xdgshell/internal/util"
)

var (
	configPath = util.Flag("config", new(stringFlag), "path to a TOML config file (ping_interval_ms, configure_coalesce_ms)")
	logLevel   = flag.String("log-level", "info", "logrus level: debug, info, warn, error")
)

type stringFlag string

func (f *stringFlag) String() string { return string(*f) }
func (f *stringFlag) Set(v string) error {
	*f = stringFlag(v)
	return nil
}

func main() {
	flag.Parse()

	log := logrus.New()
	if lvl, err := logrus.ParseLevel(*logLevel); err == nil {
		log.SetLevel(lvl)
	}

	cfg := xdgshell.DefaultConfig
	if *configPath != "" {
		data, err := os.ReadFile(string(*configPath))
		if err != nil {
			log.WithError(err).Fatal("read config")
		}
		cfg, err = xdgshell.LoadConfig(data)
		if err != nil {
			log.WithError(err).Fatal("parse config")
		}
	}

	entry := log.WithField("component", "xdgshell")
	display := &serialDisplay{}
	shell := xdgshell.NewShell(display, loggingShellObserver{entry}, cfg, nil, entry)

	client := demoClient(1)
	serial := shell.Ping(client)
	entry.WithField("serial", serial).Info("xdgshelld: sent smoke-test ping")
}

// serialDisplay is the minimal Display: a monotonically increasing
// serial counter, same role as wlr.Display.NextSerial in a real
// compositor.
type serialDisplay struct {
	next atomic.Uint32
}

func (d *serialDisplay) NextSerial() uint32 {
	return d.next.Add(1)
}

type demoClient uint64

func (c demoClient) ID() uint64 { return uint64(c) }

// loggingShellObserver logs every ShellObserver signal instead of
// putting anything on a wire, for use by this smoke-test binary only.
type loggingShellObserver struct {
	log *logrus.Entry
}

func (o loggingShellObserver) SurfaceCreated(surface *xdgshell.XdgSurface) {
	o.log.WithField("resource", surface.Resource().ID()).Info("surface created")
}

func (o loggingShellObserver) PositionerCreated(positioner *xdgshell.Positioner) {
	o.log.Info("positioner created")
}

func (o loggingShellObserver) Ping(client xdgshell.Client, serial uint32) {
	o.log.WithFields(logrus.Fields{"client": client.ID(), "serial": serial}).Info("ping")
}

func (o loggingShellObserver) PongReceived(client xdgshell.Client, serial uint32) {
	o.log.WithFields(logrus.Fields{"client": client.ID(), "serial": serial}).Info("pong received")
}

func (o loggingShellObserver) PingDelayed(client xdgshell.Client, serial uint32) {
	o.log.WithFields(logrus.Fields{"client": client.ID(), "serial": serial}).Warn("ping delayed")
}

func (o loggingShellObserver) PingTimeout(client xdgshell.Client, serial uint32) {
	o.log.WithFields(logrus.Fields{"client": client.ID(), "serial": serial}).Error("ping timeout")
}
