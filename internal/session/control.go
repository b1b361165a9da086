package session

import (
	"encoding/json"

	"prismslink/internal/domain"
)

// ControlEvent is a server instruction addressed to the session itself.
// The set of implementations is closed; see parseControl.
type ControlEvent interface {
	controlEvent()
}

type (
	// GetEvents asks the client to poll for a fresh batch.
	GetEvents struct{}
	// SetVersion reports the application version.
	SetVersion struct{ Info domain.VersionInfo }
	// CallInit asks the client to re-issue init.
	CallInit struct{}
	// Login asks for credentials, optionally explaining why.
	Login struct{ Error string }
	// StartEncryption starts a key handshake.
	StartEncryption struct {
		Hashing    domain.Hashing
		Error      string
		PostAction string
	}
	// Validate asks the user to validate the hashing parameters.
	Validate struct {
		Hashing domain.Hashing
		Failed  bool
	}
	// ChangePassword asks the user for a new password.
	ChangePassword struct {
		Hashing domain.Hashing
		Error   string
	}
	// Init confirms the session is established.
	Init struct{}
	// SetSessionID assigns the session token.
	SetSessionID struct{ ID string }
	// ServerError reports a server-side failure.
	ServerError struct{ Message string }
	// Restart tells the client its session is gone.
	Restart struct{ Message string }
	// AppLocked reports the application is temporarily locked.
	AppLocked struct{ Message string }
	// DoDownload asks the client to fetch a download. Event carries the
	// repackaged request with plain plugin and method fields.
	DoDownload struct{ Event domain.Event }
	// DoUpload asks the client to start an upload, repackaged like DoDownload.
	DoUpload struct{ Event domain.Event }
)

func (GetEvents) controlEvent()       {}
func (SetVersion) controlEvent()      {}
func (CallInit) controlEvent()        {}
func (Login) controlEvent()           {}
func (StartEncryption) controlEvent() {}
func (Validate) controlEvent()        {}
func (ChangePassword) controlEvent()  {}
func (Init) controlEvent()            {}
func (SetSessionID) controlEvent()    {}
func (ServerError) controlEvent()     {}
func (Restart) controlEvent()         {}
func (AppLocked) controlEvent()       {}
func (DoDownload) controlEvent()      {}
func (DoUpload) controlEvent()        {}

// parseControl maps an unaddressed event to its ControlEvent. An unknown
// method means client and server disagree on the protocol.
func parseControl(ev domain.Event) (ControlEvent, error) {
	switch ev.Method() {
	case "getEvents":
		return GetEvents{}, nil
	case "setVersion":
		var info domain.VersionInfo
		if err := ev.Decode(&info); err != nil {
			return nil, domain.ProtocolErrorf("setVersion: %v", err)
		}
		return SetVersion{Info: info}, nil
	case "callInit":
		return CallInit{}, nil
	case "login":
		return Login{Error: ev.String("error")}, nil
	case "startEncryption":
		h, err := hashingField(ev)
		if err != nil {
			return nil, err
		}
		return StartEncryption{Hashing: h, Error: ev.String("error"), PostAction: ev.String("postAction")}, nil
	case "validate":
		h, err := hashingField(ev)
		if err != nil {
			return nil, err
		}
		return Validate{Hashing: h, Failed: ev.Bool("validationFailed")}, nil
	case "changePassword":
		h, err := hashingField(ev)
		if err != nil {
			return nil, err
		}
		return ChangePassword{Hashing: h, Error: ev.String("error")}, nil
	case "init":
		return Init{}, nil
	case "setSessionID":
		return SetSessionID{ID: ev.String("sessionID")}, nil
	case "error":
		return ServerError{Message: ev.String("message")}, nil
	case "restart":
		return Restart{Message: ev.String("message")}, nil
	case "appLocked":
		return AppLocked{Message: ev.String("message")}, nil
	case "doDownload":
		return DoDownload{Event: repackage(ev, "downloadPlugin", "downloadMethod")}, nil
	case "doUpload":
		return DoUpload{Event: repackage(ev, "uploadPlugin", "uploadMethod")}, nil
	default:
		b, _ := json.Marshal(ev)
		return nil, domain.ProtocolErrorf("unrecognized event: %s", b)
	}
}

func hashingField(ev domain.Event) (domain.Hashing, error) {
	var h domain.Hashing
	raw, ok := ev["hashing"]
	if !ok || raw == nil {
		return h, nil
	}
	b, err := json.Marshal(raw)
	if err != nil {
		return h, domain.ProtocolErrorf("%s hashing: %v", ev.Method(), err)
	}
	if err := json.Unmarshal(b, &h); err != nil {
		return h, domain.ProtocolErrorf("%s hashing: %v", ev.Method(), err)
	}
	return h, nil
}

// repackage turns a doDownload/doUpload event into the request it describes:
// the prefixed plugin and method fields become plain ones and every other
// field is carried over.
func repackage(ev domain.Event, pluginField, methodField string) domain.Event {
	out := make(domain.Event, len(ev))
	for k, v := range ev {
		switch k {
		case "plugin", "method", pluginField, methodField:
			continue
		}
		out[k] = v
	}
	out["plugin"] = ev[pluginField]
	out["method"] = ev[methodField]
	return out
}
