package session

import (
	"time"

	"prismslink/internal/metrics"
)

func (e *Engine) startKeepAlive() {
	if e.st.ticker != nil {
		return
	}
	e.st.ticker = time.NewTicker(e.cfg.KeepAliveInterval)
}

// stopKeepAlive stops the timer without firing the shutdown event.
func (e *Engine) stopKeepAlive() {
	if e.st.ticker == nil {
		return
	}
	e.st.ticker.Stop()
	e.st.ticker = nil
}

// keepAlive runs on every tick and polls for events once the server has
// been silent for at least the threshold.
func (e *Engine) keepAlive() {
	if e.now().Sub(e.st.lastPinged) < e.cfg.KeepAliveThreshold {
		return
	}
	metrics.RecordKeepAlivePoll()
	e.CallApp("", "getEvents", nil)
}
