package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"prismslink/internal/codec"
	"prismslink/internal/domain"
	"prismslink/internal/metrics"
)

// CallServer queues a call to a server-level method. params is copied.
func (e *Engine) CallServer(method string, params domain.Params) {
	p := make(domain.Params, len(params)+1)
	for k, v := range params {
		p[k] = v
	}
	p["method"] = method
	e.enqueue(p)
}

// CallApp queues a call to a server-side plugin method. params is copied
// into the processEvent payload. An empty plugin addresses the session
// itself and is left out of the payload.
func (e *Engine) CallApp(plugin, method string, params domain.Params) {
	data := make(map[string]any, len(params)+2)
	for k, v := range params {
		data[k] = v
	}
	if plugin != "" {
		data["plugin"] = plugin
	}
	if method != "" {
		data["method"] = method
	}
	e.enqueue(domain.Params{"method": "processEvent", "data": data})
}

// enqueue counts as server activity for the keep-alive timer.
func (e *Engine) enqueue(p domain.Params) {
	e.st.lastPinged = e.now()
	e.queue = append(e.queue, p)
}

func (e *Engine) stamp() codec.Stamp {
	return codec.Stamp{
		SessionID: e.st.sessionID,
		App:       e.cfg.App,
		Client:    e.cfg.Client,
		User:      e.UserName(),
	}
}

// step executes the call at the head of the queue.
func (e *Engine) step(ctx context.Context) error {
	p := e.queue[0]
	e.queue[0] = nil
	e.queue = e.queue[1:]
	return e.roundTrip(ctx, p)
}

func (e *Engine) roundTrip(ctx context.Context, p domain.Params) error {
	label := callLabel(p)
	log := e.log.With().Str("call", label).Logger()

	wire, err := codec.EncodeRequest(e.stamp(), p, e.st.key, e.cipher)
	if err != nil {
		return fmt.Errorf("encode %s: %w", label, err)
	}

	log.Debug().Bool("encrypted", e.Encrypted()).Msg("sending")
	e.st.lastPinged = e.now()
	start := time.Now()
	cctx, cancel := context.WithTimeout(ctx, e.cfg.Timeout)
	raw, err := e.transport.Send(cctx, wire)
	cancel()
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		metrics.RecordCall(label, metrics.OutcomeTransport, time.Since(start))
		return e.transportFailed(label, err)
	}

	events, err := codec.DecodeResponse(raw, e.st.key, e.cipher)
	if err != nil {
		metrics.RecordCall(label, metrics.OutcomeDecode, time.Since(start))
		if errors.Is(err, domain.ErrDecryptionUnavailable) {
			log.Warn().Msg("encrypted response without a key")
			e.ui.ReportError("Encryption not set!")
		}
		return fmt.Errorf("%s: %w", label, err)
	}
	log.Debug().Int("events", len(events)).Msg("received")

	if err := e.router.Dispatch(events); err != nil {
		metrics.RecordCall(label, metrics.OutcomeDispatch, time.Since(start))
		return fmt.Errorf("%s: %w", label, err)
	}
	metrics.RecordCall(label, metrics.OutcomeOK, time.Since(start))
	return nil
}

// transportFailed tells the user what went wrong. An unreachable server
// ends the session.
func (e *Engine) transportFailed(label string, err error) error {
	e.ui.NotifyLoadedDone()

	var te *domain.TransportError
	if !errors.As(err, &te) {
		kind := domain.TransportOther
		if errors.Is(err, context.DeadlineExceeded) {
			kind = domain.TransportTimeout
		}
		te = &domain.TransportError{Kind: kind, Err: err}
	}
	e.log.Warn().Err(te).Str("call", label).Stringer("kind", te.Kind).Msg("server call failed")

	switch te.Kind {
	case domain.TransportUnreachable:
		e.ui.ReportError(e.cfg.App + " is not accessible.  Please try again later.")
		e.Shutdown()
		e.Fire(EventUnreachable, te)
	case domain.TransportTimeout:
		e.ui.ReportError(e.cfg.App + " timed out.  Try refreshing.\nIf that doesn't work, try again later.")
	default:
		e.ui.ReportError("Could not execute server call: " + te.Error())
	}
	return fmt.Errorf("%s: %w", label, te)
}

// callLabel names a call for logs and metrics: the server method, or the
// plugin method for processEvent calls.
func callLabel(p domain.Params) string {
	method, _ := p["method"].(string)
	if method != "processEvent" {
		return method
	}
	data, _ := p["data"].(map[string]any)
	if m, ok := data["method"].(string); ok && m != "" {
		return m
	}
	return method
}
