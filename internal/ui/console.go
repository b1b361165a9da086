package ui

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"prismslink/internal/domain"
)

// Console is a plugin that prints each event it receives as one line.
type Console struct {
	PluginName string
	Out        io.Writer

	batch int
}

var (
	_ domain.Plugin        = (*Console)(nil)
	_ domain.PostProcessor = (*Console)(nil)
)

// NewConsole returns a console plugin registered under name.
func NewConsole(name string, out io.Writer) *Console {
	return &Console{PluginName: name, Out: out}
}

func (c *Console) Name() string { return c.PluginName }

func (c *Console) ProcessEvent(ev domain.Event) error {
	keys := make([]string, 0, len(ev))
	for k := range ev {
		if k != "plugin" && k != "method" {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		v, err := json.Marshal(ev[k])
		if err != nil {
			return fmt.Errorf("format %s: %w", k, err)
		}
		fmt.Fprintf(&b, " %s=%s", k, v)
	}
	c.batch++
	_, err := fmt.Fprintf(c.Out, "%s %s.%s%s\n", infoColor.Sprintf("[%d]", c.batch), c.PluginName, ev.Method(), b.String())
	return err
}

// PostProcessEvents restarts the per-batch numbering.
func (c *Console) PostProcessEvents() { c.batch = 0 }
