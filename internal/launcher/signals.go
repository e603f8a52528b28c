package launcher

import (
	"os"
	"os/signal"

	"github.com/automua/automua-run/internal/logging"
)

// signalRelay keeps the launcher alive while the tool runs and passes
// termination requests on to it. Signals caught before the tool starts are
// held until relayTo is called.
type signalRelay struct {
	ch       chan os.Signal
	proc     chan *os.Process
	done     chan struct{}
	finished chan struct{}
}

// catchSignals starts catching relayed and absorbed signals. Call it before
// the tool starts so no signal hits the launcher's default disposition.
func catchSignals() *signalRelay {
	r := &signalRelay{
		ch:       make(chan os.Signal, 4),
		proc:     make(chan *os.Process, 1),
		done:     make(chan struct{}),
		finished: make(chan struct{}),
	}
	signal.Notify(r.ch, append(append([]os.Signal{}, relayedSignals...), absorbedSignals...)...)

	relay := make(map[os.Signal]bool, len(relayedSignals))
	for _, sig := range relayedSignals {
		relay[sig] = true
	}

	go func() {
		defer close(r.finished)
		var p *os.Process
		select {
		case p = <-r.proc:
		case <-r.done:
			return
		}
		for {
			select {
			case sig := <-r.ch:
				if !relay[sig] {
					logging.Logger().Debug("signal left to the tool", "signal", sig.String())
					continue
				}
				logging.Logger().Debug("relaying signal to tool", "signal", sig.String())
				if err := p.Signal(sig); err != nil {
					logging.Logger().Warn("failed to relay signal", "signal", sig.String(), "err", err)
				}
			case <-r.done:
				return
			}
		}
	}()
	return r
}

// relayTo starts passing caught signals to p.
func (r *signalRelay) relayTo(p *os.Process) {
	r.proc <- p
}

// stop ends relaying and restores default signal handling.
func (r *signalRelay) stop() {
	signal.Stop(r.ch)
	close(r.done)
	<-r.finished
}
