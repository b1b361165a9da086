package ui

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"prismslink/internal/domain"
)

// Notices writes a line for every prompt or transfer it cannot handle.
type Notices struct {
	Out io.Writer
	App string
}

var _ domain.UI = (*Notices)(nil)

var (
	errColor    = color.New(color.FgRed, color.Bold)
	noticeColor = color.New(color.FgYellow)
	infoColor   = color.New(color.FgHiBlack)
)

func (n *Notices) notice(msg string) {
	fmt.Fprintln(n.Out, noticeColor.Sprint(msg))
}

func (n *Notices) PromptLogin(string) {
	n.notice("ERROR! LOGIN DIALOG NOT IMPLEMENTED!")
}

func (n *Notices) PromptPasswordChange(string, domain.Hashing, string) {
	n.notice("ERROR! THIS CLIENT DOES NOT SUPPORT PASSWORD CHANGE!\n" +
		"Contact your administrator or visit the manager page to change it")
}

func (n *Notices) PromptValidation(domain.Hashing, bool) {
	n.notice("ERROR! THIS CLIENT DOES NOT SUPPORT VALIDATION!")
}

func (n *Notices) NotifyLoginSucceeded(string) {}
func (n *Notices) NotifyLoading()              {}
func (n *Notices) NotifyLoadedDone()           {}

func (n *Notices) NotifyAppLocked(string) {
	n.notice(n.App + " is temporarily locked")
}

func (n *Notices) ReportError(message string) {
	fmt.Fprintln(n.Out, errColor.Sprint(message))
}

func (n *Notices) PerformDownload(domain.Event) {
	n.notice("ERROR! doDownload NOT IMPLEMENTED!")
}

func (n *Notices) PerformUpload(domain.Event) {
	n.notice("ERROR! doUpload NOT IMPLEMENTED!")
}

func (n *Notices) ReloadClient(message string) {
	n.notice(message)
}
