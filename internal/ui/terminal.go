package ui

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"prismslink/internal/domain"
)

// Session is the part of the engine the terminal answers to.
type Session interface {
	SubmitLogin(user, password string)
	SubmitPasswordChange(h domain.Hashing, password string)
	DownloadSource(params domain.Params) (string, error)
	UploadURL(params domain.Params) (string, error)
}

// Terminal prompts for credentials on In and reports on Out.
type Terminal struct {
	Notices
	In io.Reader

	// OnReload is called when the server asks the client to restart.
	OnReload func(message string)
	// OnAbort is called when a prompt cannot be answered, typically
	// because the input is closed.
	OnAbort func(err error)

	session Session
	reader  *bufio.Reader
	preset  *presetLogin
}

type presetLogin struct{ user, password string }

var _ domain.UI = (*Terminal)(nil)

// NewTerminal returns a terminal UI for app.
func NewTerminal(app string, in io.Reader, out io.Writer) *Terminal {
	return &Terminal{Notices: Notices{Out: out, App: app}, In: in}
}

// Bind attaches the session that prompts are answered to.
func (t *Terminal) Bind(s Session) { t.session = s }

// Preset answers the next login prompt with user and password, so a saved
// profile can log in without asking. Later prompts are interactive.
func (t *Terminal) Preset(user, password string) {
	t.preset = &presetLogin{user: user, password: password}
}

func (t *Terminal) PromptLogin(errMsg string) {
	if t.session == nil {
		t.Notices.PromptLogin(errMsg)
		return
	}
	if p := t.preset; p != nil {
		t.preset = nil
		t.session.SubmitLogin(p.user, p.password)
		return
	}
	if errMsg != "" {
		t.ReportError(errMsg)
	}

	user, err := t.ReadLine("User: ")
	if err != nil {
		t.abort("login", err)
		return
	}
	pwd, err := t.ReadPassword("Password: ")
	if err != nil {
		t.abort("login", err)
		return
	}
	t.session.SubmitLogin(user, pwd)
}

func (t *Terminal) PromptPasswordChange(user string, h domain.Hashing, errMsg string) {
	if t.session == nil {
		t.Notices.PromptPasswordChange(user, h, errMsg)
		return
	}
	if errMsg != "" {
		t.ReportError(errMsg)
	}
	fmt.Fprintf(t.Out, "Password change required for %s\n", user)
	pwd, err := t.ReadPassword("New password: ")
	if err != nil {
		t.abort("password change", err)
		return
	}
	again, err := t.ReadPassword("Repeat password: ")
	if err != nil {
		t.abort("password change", err)
		return
	}
	if pwd != again {
		t.ReportError("Passwords do not match")
		t.PromptPasswordChange(user, h, "")
		return
	}
	t.session.SubmitPasswordChange(h, pwd)
}

func (t *Terminal) NotifyLoginSucceeded(user string) {
	if user == "" {
		fmt.Fprintln(t.Out, infoColor.Sprint("Connected"))
		return
	}
	fmt.Fprintln(t.Out, infoColor.Sprintf("Logged in as %s", user))
}

func (t *Terminal) PerformDownload(ev domain.Event) {
	if t.session == nil {
		t.Notices.PerformDownload(ev)
		return
	}
	u, err := t.session.DownloadSource(domain.Params(ev))
	if err != nil {
		t.ReportError("download: " + err.Error())
		return
	}
	fmt.Fprintf(t.Out, "Download: %s\n", u)
}

func (t *Terminal) PerformUpload(ev domain.Event) {
	if t.session == nil {
		t.Notices.PerformUpload(ev)
		return
	}
	u, err := t.session.UploadURL(domain.Params(ev))
	if err != nil {
		t.ReportError("upload: " + err.Error())
		return
	}
	fmt.Fprintf(t.Out, "Upload to: %s\n", u)
}

func (t *Terminal) ReloadClient(message string) {
	t.Notices.ReloadClient(message)
	if t.OnReload != nil {
		t.OnReload(message)
	}
}

func (t *Terminal) abort(what string, err error) {
	t.ReportError(what + " aborted: " + err.Error())
	if t.OnAbort != nil {
		t.OnAbort(err)
	}
}

// ReadLine prints prompt and reads one line from In.
func (t *Terminal) ReadLine(prompt string) (string, error) {
	fmt.Fprint(t.Out, prompt)
	if t.In == nil {
		return "", errors.New("no input")
	}
	if t.reader == nil {
		t.reader = bufio.NewReader(t.In)
	}
	line, err := t.reader.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// ReadPassword is ReadLine with echo disabled when In is a terminal.
func (t *Terminal) ReadPassword(prompt string) (string, error) {
	f, ok := t.In.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return t.ReadLine(prompt)
	}
	fmt.Fprint(t.Out, prompt)
	b, err := term.ReadPassword(int(f.Fd()))
	fmt.Fprintln(t.Out)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
