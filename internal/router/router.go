package router

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"prismslink/internal/domain"
	"prismslink/internal/metrics"
)

// ControlTarget labels events handled by the control handler in metrics.
const ControlTarget = "control"

// ErrInvalidPlugin is returned when a plugin without a name is registered.
var ErrInvalidPlugin = errors.New("plugin has no name")

// ControlHandler handles events that are not addressed to a plugin.
type ControlHandler func(event domain.Event) error

// Router holds the plugin registry.
type Router struct {
	plugins map[string]domain.Plugin
	order   []string
	control ControlHandler
	log     zerolog.Logger
}

// New returns a router sending unaddressed events to control.
func New(control ControlHandler, log zerolog.Logger) *Router {
	return &Router{
		plugins: make(map[string]domain.Plugin),
		control: control,
		log:     log,
	}
}

// Register adds p under its name, replacing any plugin of the same name.
// It reports whether the name was new.
func (r *Router) Register(p domain.Plugin) (bool, error) {
	if p == nil || p.Name() == "" {
		return false, ErrInvalidPlugin
	}
	name := p.Name()
	_, exists := r.plugins[name]
	r.plugins[name] = p
	if !exists {
		r.order = append(r.order, name)
	}
	return !exists, nil
}

// Lookup returns the plugin registered under name.
func (r *Router) Lookup(name string) (domain.Plugin, bool) {
	p, ok := r.plugins[name]
	return p, ok
}

// Names returns the registered plugin names in registration order.
func (r *Router) Names() []string {
	return append([]string(nil), r.order...)
}

// Dispatch applies batch in order and then post-processes every plugin it
// reached.
//
// The first failing handler aborts the rest of the batch, and nothing is
// post-processed for it. Plugin failures are logged with the offending event
// and returned as *domain.PluginError.
func (r *Router) Dispatch(batch []domain.Event) error {
	var touched []domain.Plugin
	seen := make(map[string]bool)

	for _, ev := range batch {
		name := ev.Plugin()
		if name == "" {
			metrics.RecordEvent(ControlTarget)
			if err := r.control(ev); err != nil {
				return err
			}
			continue
		}
		p, ok := r.plugins[name]
		if !ok {
			r.log.Debug().Str("plugin", name).Str("method", ev.Method()).Msg("plugin unrecognized")
			continue
		}
		metrics.RecordEvent(name)
		if err := r.deliver(p, ev); err != nil {
			r.log.Error().Err(err).Str("plugin", name).Interface("event", ev).Msg("plugin failed to process event")
			return &domain.PluginError{Plugin: name, Event: ev, Err: err}
		}
		if !seen[name] {
			seen[name] = true
			touched = append(touched, p)
		}
	}

	for _, p := range touched {
		if pp, ok := p.(domain.PostProcessor); ok {
			pp.PostProcessEvents()
		}
	}
	return nil
}

// deliver calls the plugin, turning a panic into an error.
func (r *Router) deliver(p domain.Plugin, ev domain.Event) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("panic: %v", rec)
		}
	}()
	return p.ProcessEvent(ev)
}
