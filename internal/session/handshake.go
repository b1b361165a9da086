package session

import (
	"fmt"

	"prismslink/internal/crypto"
	"prismslink/internal/domain"
	"prismslink/internal/hashing"
	"prismslink/internal/metrics"
)

// PostLoginAction is what SubmitLogin resumes.
type PostLoginAction uint8

const (
	NoPostLogin PostLoginAction = iota
	// PostLoginStartEncryption resumes a handshake that was waiting for a
	// password.
	PostLoginStartEncryption
)

// PostEncryptionAction is what follows a successful key derivation.
type PostEncryptionAction uint8

const (
	NoPostEncryption PostEncryptionAction = iota
	// PostEncryptionCallInit re-issues init under the new key.
	PostEncryptionCallInit
	postEncryptionUnknown
)

// ParsePostEncryption maps the server's postAction tag.
func ParsePostEncryption(tag string) PostEncryptionAction {
	switch tag {
	case "":
		return NoPostEncryption
	case "callInit":
		return PostEncryptionCallInit
	default:
		return postEncryptionUnknown
	}
}

// Handshake outcomes recorded in metrics.
const (
	handshakeDerived       = "derived"
	handshakeLoginRequired = "login_required"
	handshakeUserMismatch  = "user_mismatch"
)

// Connect issues init, falling back to the default user when no
// credentials are held.
func (e *Engine) Connect() {
	if e.UserName() == "" && e.defaultUser != "" {
		e.setCredentials(e.defaultUser, "")
	}
	e.log.Info().Str("user", e.UserName()).Msg("connecting")
	e.CallServer("init", nil)
}

// SubmitLogin replaces the held credentials and either resumes a latched
// handshake or re-issues init.
func (e *Engine) SubmitLogin(user, password string) {
	e.stopKeepAlive()
	e.setCredentials(user, password)
	e.st.key = ""

	action := e.st.postLogin
	e.st.postLogin = NoPostLogin
	switch action {
	case PostLoginStartEncryption:
		h := e.st.hashing
		e.st.hashing = domain.Hashing{}
		e.startEncryption(h, "", PostEncryptionCallInit, "callInit")
	default:
		e.CallServer("init", nil)
	}
}

// SubmitPasswordChange sends the partial hash of password under h. The
// password itself never leaves the client.
func (e *Engine) SubmitPasswordChange(h domain.Hashing, password string) {
	e.CallServer("changePassword", domain.Params{
		"data": map[string]any{"passwordData": hashing.PartialHash(password, h)},
	})
}

func (e *Engine) setCredentials(user, password string) {
	if e.st.creds != nil {
		crypto.Wipe(e.st.creds.Password)
	}
	var pwd []byte
	if password != "" {
		pwd = []byte(password)
	}
	e.st.creds = &domain.Credentials{UserName: user, Password: pwd}
}

// startEncryption runs one key handshake.
//
// Steps:
//  1. Stop the keep-alive timer and latch any post-encryption action.
//  2. If the server hashed for a different user than the one held, drop the
//     key and restart with init.
//  3. Without a usable password, latch the parameters and ask for a login.
//  4. Otherwise derive the key and run the latched post-encryption action.
func (e *Engine) startEncryption(h domain.Hashing, errMsg string, post PostEncryptionAction, tag string) {
	e.stopKeepAlive()
	if post != NoPostEncryption {
		e.st.postEncryption = post
		e.st.postEncryptionTag = tag
	}

	creds := e.st.creds
	if creds != nil && creds.UserName != "" && h.User != "" && h.User != creds.UserName {
		e.log.Info().Str("held", creds.UserName).Str("server", h.User).Msg("hashing user differs, re-initializing")
		metrics.RecordHandshake(handshakeUserMismatch)
		e.st.key = ""
		e.CallServer("init", nil)
		e.ui.NotifyLoading()
		return
	}

	if creds == nil || errMsg != "" || !creds.HasPassword() {
		metrics.RecordHandshake(handshakeLoginRequired)
		e.st.hashing = h
		e.st.postLogin = PostLoginStartEncryption
		e.ui.NotifyLoadedDone()
		switch {
		case errMsg != "":
			e.ui.PromptLogin(errMsg)
		case creds != nil && creds.UserName != "":
			e.ui.PromptLogin("Password required for user " + creds.UserName)
		default:
			e.ui.PromptLogin("")
		}
		return
	}

	e.st.key = hashing.DeriveKey(string(creds.Password), h, e.cfg.MaxKeyBits)
	metrics.RecordHandshake(handshakeDerived)
	if e.st.key == "" {
		e.log.Warn().Msg("derived an empty key, continuing unencrypted")
	} else {
		e.log.Debug().Str("key", e.KeyFingerprint()).Msg("encryption key derived")
	}

	action, actionTag := e.st.postEncryption, e.st.postEncryptionTag
	e.st.postEncryption, e.st.postEncryptionTag = NoPostEncryption, ""
	switch action {
	case NoPostEncryption:
	case PostEncryptionCallInit:
		e.CallServer("init", nil)
		e.ui.NotifyLoading()
	default:
		err := fmt.Errorf("%w: unrecognized post-encryption action %q", domain.ErrConfiguration, actionTag)
		e.log.Error().Err(err).Msg("handshake finished without a follow-up")
	}
}
