package ui_test

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"prismslink/internal/domain"
	"prismslink/internal/ui"
)

func init() { color.NoColor = true }

type fakeSession struct {
	logins   [][2]string
	changes  []string
	download domain.Params
}

func (s *fakeSession) SubmitLogin(user, password string) {
	s.logins = append(s.logins, [2]string{user, password})
}

func (s *fakeSession) SubmitPasswordChange(_ domain.Hashing, password string) {
	s.changes = append(s.changes, password)
}

func (s *fakeSession) DownloadSource(p domain.Params) (string, error) {
	s.download = p
	return "http://prisms.test/servlet?method=getDownload", nil
}

func (s *fakeSession) UploadURL(domain.Params) (string, error) {
	return "http://prisms.test/servlet?method=doUpload", nil
}

func TestNotices_Lines(t *testing.T) {
	var out bytes.Buffer
	n := &ui.Notices{Out: &out, App: "Manager"}

	n.PromptLogin("")
	n.PromptValidation(domain.Hashing{}, false)
	n.PerformDownload(nil)
	n.PerformUpload(nil)
	n.NotifyAppLocked("")
	n.NotifyLoading()
	n.NotifyLoadedDone()
	n.NotifyLoginSucceeded("alice")

	assert.Equal(t, strings.Join([]string{
		"ERROR! LOGIN DIALOG NOT IMPLEMENTED!",
		"ERROR! THIS CLIENT DOES NOT SUPPORT VALIDATION!",
		"ERROR! doDownload NOT IMPLEMENTED!",
		"ERROR! doUpload NOT IMPLEMENTED!",
		"Manager is temporarily locked",
	}, "\n")+"\n", out.String())
}

func TestTerminal_PromptLoginReadsCredentials(t *testing.T) {
	var out bytes.Buffer
	s := &fakeSession{}
	term := ui.NewTerminal("Manager", strings.NewReader("alice\nab\n"), &out)
	term.Bind(s)

	term.PromptLogin("Incorrect password")
	require.Len(t, s.logins, 1)
	assert.Equal(t, [2]string{"alice", "ab"}, s.logins[0])
	assert.Contains(t, out.String(), "Incorrect password")
	assert.Contains(t, out.String(), "User: ")
}

func TestTerminal_PresetIsUsedOnce(t *testing.T) {
	var out bytes.Buffer
	s := &fakeSession{}
	term := ui.NewTerminal("Manager", strings.NewReader("bob\nxy\n"), &out)
	term.Bind(s)
	term.Preset("alice", "ab")

	term.PromptLogin("")
	term.PromptLogin("")
	assert.Equal(t, [][2]string{{"alice", "ab"}, {"bob", "xy"}}, s.logins)
}

func TestTerminal_PresetAnswersPasswordRequired(t *testing.T) {
	var out bytes.Buffer
	s := &fakeSession{}
	term := ui.NewTerminal("Manager", strings.NewReader("alice\nright\n"), &out)
	term.Bind(s)
	term.Preset("alice", "wrong")

	term.PromptLogin("Password required for user alice")
	term.PromptLogin("Incorrect password")
	assert.Equal(t, [][2]string{{"alice", "wrong"}, {"alice", "right"}}, s.logins)
	assert.Contains(t, out.String(), "Incorrect password")
	assert.NotContains(t, out.String(), "Password required")
}

func TestTerminal_PasswordChangeRetriesOnMismatch(t *testing.T) {
	var out bytes.Buffer
	s := &fakeSession{}
	term := ui.NewTerminal("Manager", strings.NewReader("one\ntwo\nnew\nnew\n"), &out)
	term.Bind(s)

	term.PromptPasswordChange("alice", domain.Hashing{}, "")
	assert.Equal(t, []string{"new"}, s.changes)
	assert.Contains(t, out.String(), "Passwords do not match")
}

func TestTerminal_UnboundFallsBackToNotices(t *testing.T) {
	var out bytes.Buffer
	term := ui.NewTerminal("Manager", nil, &out)
	term.PromptLogin("")
	assert.Equal(t, "ERROR! LOGIN DIALOG NOT IMPLEMENTED!\n", out.String())
}

func TestTerminal_EOFAbortsLogin(t *testing.T) {
	var out bytes.Buffer
	s := &fakeSession{}
	term := ui.NewTerminal("Manager", strings.NewReader(""), &out)
	term.Bind(s)
	var aborted error
	term.OnAbort = func(err error) { aborted = err }
	term.PromptLogin("")
	assert.Empty(t, s.logins)
	assert.ErrorIs(t, aborted, io.EOF)
	assert.Contains(t, out.String(), "login aborted")
}

func TestTerminal_DownloadAndReload(t *testing.T) {
	var out bytes.Buffer
	s := &fakeSession{}
	term := ui.NewTerminal("Manager", nil, &out)
	term.Bind(s)

	var reloaded string
	term.OnReload = func(msg string) { reloaded = msg }

	term.PerformDownload(domain.Event{"plugin": "files", "method": "fetch"})
	term.PerformUpload(domain.Event{"plugin": "files", "method": "put"})
	term.ReloadClient("expired")

	assert.Equal(t, "files", s.download["plugin"])
	assert.Contains(t, out.String(), "Download: http://prisms.test/servlet?method=getDownload")
	assert.Contains(t, out.String(), "Upload to: http://prisms.test/servlet?method=doUpload")
	assert.Equal(t, "expired", reloaded)
}

func TestConsole_PrintsEvents(t *testing.T) {
	var out bytes.Buffer
	c := ui.NewConsole("echo", &out)
	require.NoError(t, c.ProcessEvent(domain.Event{"plugin": "echo", "method": "echo", "text": "hi", "n": 2}))
	require.NoError(t, c.ProcessEvent(domain.Event{"plugin": "echo", "method": "done"}))
	c.PostProcessEvents()
	require.NoError(t, c.ProcessEvent(domain.Event{"plugin": "echo", "method": "again"}))

	assert.Equal(t, "[1] echo.echo n=2 text=\"hi\"\n[2] echo.done\n[1] echo.again\n", out.String())
}
