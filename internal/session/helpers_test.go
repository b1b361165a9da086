package session

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"prismslink/internal/crypto"
	"prismslink/internal/domain"
)

// fakeServer answers each request with the batch its handler returns for
// the request's method, or the plugin method for processEvent calls.
type fakeServer struct {
	requests []domain.WireRequest
	handlers map[string]func(req domain.WireRequest) (string, error)
}

func newFakeServer() *fakeServer {
	return &fakeServer{handlers: make(map[string]func(domain.WireRequest) (string, error))}
}

func (s *fakeServer) on(method string, fn func(req domain.WireRequest) (string, error)) {
	s.handlers[method] = fn
}

func (s *fakeServer) reply(method, body string) {
	s.on(method, func(domain.WireRequest) (string, error) { return body, nil })
}

func (s *fakeServer) Send(_ context.Context, req domain.WireRequest) ([]byte, error) {
	s.requests = append(s.requests, req)
	fn, ok := s.handlers[req["method"]]
	if !ok {
		return []byte("[]"), nil
	}
	body, err := fn(req)
	return []byte(body), err
}

func (s *fakeServer) methods() []string {
	out := make([]string, len(s.requests))
	for i, r := range s.requests {
		out[i] = r["method"]
	}
	return out
}

// recordingUI keeps every call as "name:arg".
type recordingUI struct {
	calls     []string
	downloads []domain.Event
	hashing   domain.Hashing
}

func (u *recordingUI) add(format string, args ...any) {
	u.calls = append(u.calls, fmt.Sprintf(format, args...))
}

func (u *recordingUI) PromptLogin(errMsg string) { u.add("promptLogin:%s", errMsg) }
func (u *recordingUI) PromptPasswordChange(user string, h domain.Hashing, errMsg string) {
	u.hashing = h
	u.add("promptPasswordChange:%s:%s", user, errMsg)
}
func (u *recordingUI) PromptValidation(h domain.Hashing, failed bool) {
	u.hashing = h
	u.add("promptValidation:%t", failed)
}
func (u *recordingUI) NotifyLoginSucceeded(user string) { u.add("loginSucceeded:%s", user) }
func (u *recordingUI) NotifyLoading()                   { u.add("loading") }
func (u *recordingUI) NotifyLoadedDone()                { u.add("loadedDone") }
func (u *recordingUI) NotifyAppLocked(message string)   { u.add("appLocked:%s", message) }
func (u *recordingUI) ReportError(message string)       { u.add("error:%s", message) }
func (u *recordingUI) PerformDownload(ev domain.Event) {
	u.downloads = append(u.downloads, ev)
	u.add("download")
}
func (u *recordingUI) PerformUpload(domain.Event)  { u.add("upload") }
func (u *recordingUI) ReloadClient(message string) { u.add("reload:%s", message) }

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time          { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

type echoPlugin struct {
	name   string
	events []domain.Event
}

func (p *echoPlugin) Name() string { return p.name }
func (p *echoPlugin) ProcessEvent(ev domain.Event) error {
	p.events = append(p.events, ev)
	if ev.Method() == "fail" {
		return errors.New("plugin failed")
	}
	return nil
}

// smallHashing derives the one-character key "V" from the password "ab".
var smallHashing = domain.Hashing{
	PrimaryMultiples:   []int64{3},
	PrimaryModulos:     []int64{97},
	SecondaryMultiples: []int64{7},
	SecondaryModulos:   []int64{101},
}

const smallHashingJSON = `{"primaryMultiples":[3],"primaryModulos":[97],"secondaryMultiples":[7],"secondaryModulos":[101]`

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.App = "Manager"
	cfg.Client = "Web Client"
	cfg.ServletURL = "http://prisms.test/servlet"
	cfg.ImageURL = "http://prisms.test/image"
	return cfg
}

func newTestEngine(t *testing.T, opts ...Option) (*Engine, *fakeServer, *recordingUI) {
	t.Helper()
	srv := newFakeServer()
	ui := &recordingUI{}
	e, err := New(testConfig(), srv, ui, opts...)
	require.NoError(t, err)
	t.Cleanup(e.Shutdown)
	return e, srv, ui
}

// encrypted returns body as the server would send it under key.
func encrypted(t *testing.T, body, key string) string {
	t.Helper()
	ct, err := crypto.Blowfish{}.Encrypt(body, key)
	require.NoError(t, err)
	return ct
}
