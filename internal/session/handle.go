package session

import (
	"prismslink/internal/domain"
)

// handleControl is the router's handler for unaddressed events.
func (e *Engine) handleControl(ev domain.Event) error {
	ce, err := parseControl(ev)
	if err != nil {
		return err
	}
	e.log.Debug().Str("event", ev.Method()).Msg("control event")

	switch c := ce.(type) {
	case GetEvents:
		e.CallApp("", "getEvents", nil)
	case SetVersion:
		e.st.version = c.Info
		e.ui.NotifyLoadedDone()
	case CallInit:
		e.CallServer("init", nil)
	case Login:
		e.ui.NotifyLoadedDone()
		e.ui.PromptLogin(c.Error)
	case StartEncryption:
		e.startEncryption(c.Hashing, c.Error, ParsePostEncryption(c.PostAction), c.PostAction)
	case Validate:
		e.ui.PromptValidation(c.Hashing, c.Failed)
	case ChangePassword:
		e.ui.PromptPasswordChange(e.UserName(), c.Hashing, c.Error)
	case Init:
		e.initialized()
	case SetSessionID:
		e.log.Info().Str("session", c.ID).Msg("session assigned")
		e.st.sessionID = c.ID
	case ServerError:
		e.ui.NotifyLoadedDone()
		e.ui.ReportError(c.Message)
	case Restart:
		if e.st.started && !e.IsActive() {
			e.log.Debug().Msg("restart ignored while idle")
			return nil
		}
		e.Shutdown()
		msg := c.Message
		if msg == "" {
			msg = "This " + e.cfg.App + " session has expired--reloading application"
		}
		e.ui.ReloadClient(msg)
	case AppLocked:
		e.ui.NotifyAppLocked(c.Message)
		e.CallApp("", "getEvents", nil)
	case DoDownload:
		if e.IsActive() {
			e.ui.PerformDownload(c.Event)
		}
	case DoUpload:
		if e.IsActive() {
			e.ui.PerformUpload(c.Event)
		}
	}
	return nil
}

// initialized handles the server's confirmation of the session.
func (e *Engine) initialized() {
	e.ui.NotifyLoginSucceeded(e.UserName())
	e.ui.NotifyLoading()
	e.st.started = true
	e.startKeepAlive()
	for _, name := range e.router.Names() {
		e.addPlugin(name)
	}
	e.CallServer("getVersion", nil)
	e.log.Info().Str("user", e.UserName()).Bool("encrypted", e.Encrypted()).Msg("session started")
	e.Fire(EventSessionStarted)
}
