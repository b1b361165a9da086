package stubserver

import (
	"encoding/json"
	"fmt"
	"net/http"

	"prismslink/internal/codec"
	"prismslink/internal/domain"
	"prismslink/internal/hashing"
)

// session is the server's view of one client.
type session struct {
	id      string
	user    string
	key     string
	started bool
	expired bool
	plugins []string
	pending []domain.Event
}

// call is one decoded request.
type call struct {
	method    string
	user      string
	encrypted bool
	data      map[string]any
}

// reply collects the events of one response.
type reply []domain.Event

func (r *reply) add(ev domain.Event) { *r = append(*r, ev) }

func (s *Server) serveCall(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	switch r.Form.Get("method") {
	case codec.MethodDoUpload, codec.MethodGetDownload, codec.MethodGenerateImage:
		s.serveSource(w, r)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var out reply
	sess := s.session(r.Form.Get("sessionID"), &out)
	log := s.log.With().Str("session", sess.id).Str("method", r.Form.Get("method")).Logger()

	c, ok := s.decode(sess, r, &out)
	if !ok {
		log.Info().Msg("request did not decrypt, restarting handshake")
		s.write(w, out, "")
		return
	}
	key := ""
	if c.encrypted {
		key = sess.key
	}
	log.Debug().Bool("encrypted", c.encrypted).Msg("call")

	s.dispatch(sess, c, &out)
	s.write(w, out, key)
}

// session returns the caller's session, creating one for unknown IDs.
func (s *Server) session(id string, out *reply) *session {
	if sess, ok := s.sessions[id]; ok {
		return sess
	}
	sess := &session{id: s.newID()}
	s.sessions[sess.id] = sess
	out.add(domain.Event{"method": "setSessionID", "sessionID": sess.id})
	return sess
}

// decode parses the request. An encrypted request that does not open under
// the session key gets a fresh handshake instead.
func (s *Server) decode(sess *session, r *http.Request, out *reply) (call, bool) {
	c := call{
		method:    r.Form.Get("method"),
		user:      r.Form.Get("user"),
		encrypted: r.Form.Get("encrypted") == "true",
		data:      map[string]any{},
	}
	raw := r.Form.Get("data")
	if c.encrypted {
		plain, err := s.open(sess, raw)
		if err != nil {
			s.rekey(sess, c.user, out)
			return c, false
		}
		raw = plain
	}
	if raw != "" {
		if err := json.Unmarshal([]byte(raw), &c.data); err != nil {
			c.data = map[string]any{}
		}
	}
	delete(c.data, codec.PaddingField)
	return c, true
}

// rekey answers a request that did not decrypt: the user is asked for the
// password again under a fresh handshake.
func (s *Server) rekey(sess *session, user string, out *reply) {
	password, known := s.cfg.Users[user]
	if !known {
		sess.user, sess.key, sess.started = "", "", false
		out.add(domain.Event{"method": "login", "error": "No such user: " + user})
		return
	}
	sess.user = user
	sess.started = false
	sess.key = hashing.DeriveKey(password, s.hashingFor(user), s.cfg.MaxKeyBits)
	out.add(s.startEncryption(user, "Incorrect password"))
}

func (s *Server) open(sess *session, raw string) (string, error) {
	if sess.key == "" {
		return "", fmt.Errorf("no key for session %s", sess.id)
	}
	plain, err := s.cfg.Cipher.Decrypt(raw, sess.key)
	if err != nil {
		return "", err
	}
	var probe map[string]any
	if err := json.Unmarshal([]byte(plain), &probe); err != nil {
		return "", err
	}
	if probe[codec.PaddingField] != codec.PaddingValue {
		return "", fmt.Errorf("missing padding")
	}
	return plain, nil
}

func (s *Server) hashingFor(user string) domain.Hashing {
	h := s.cfg.Hashing
	h.User = user
	return h
}

func (s *Server) startEncryption(user, errMsg string) domain.Event {
	ev := domain.Event{
		"method":     "startEncryption",
		"hashing":    s.hashingFor(user),
		"postAction": "callInit",
	}
	if errMsg != "" {
		ev["error"] = errMsg
	}
	return ev
}

func (s *Server) dispatch(sess *session, c call, out *reply) {
	if sess.expired {
		delete(s.sessions, sess.id)
		out.add(domain.Event{"method": "restart", "message": "This " + s.cfg.App + " session has expired"})
		return
	}
	if c.method == "init" {
		s.init(sess, c, out)
		return
	}
	if !sess.started {
		out.add(domain.Event{"method": "callInit"})
		return
	}

	switch c.method {
	case "getVersion":
		out.add(domain.Event{"method": "setVersion", "version": s.cfg.Version.Version, "modified": s.cfg.Version.Modified})
	case "processEvent":
		s.processEvent(sess, c, out)
	case "changePassword":
		s.changePassword(sess, c, out)
	default:
		out.add(domain.Event{"method": "error", "message": "Unrecognized method: " + c.method})
	}
}

// init walks the client through login and the key handshake.
//
// Steps:
//  1. No user: ask for a login.
//  2. Unknown user: ask again with an error.
//  3. Known user over a plain request: derive the expected key and start
//     encryption.
//  4. Encrypted request from the handshaken user: the session starts.
func (s *Server) init(sess *session, c call, out *reply) {
	password, known := s.cfg.Users[c.user]
	switch {
	case c.user == "":
		out.add(domain.Event{"method": "login"})
	case !known:
		out.add(domain.Event{"method": "login", "error": "No such user: " + c.user})
	case !c.encrypted || sess.user != c.user:
		sess.user = c.user
		sess.started = false
		sess.key = hashing.DeriveKey(password, s.hashingFor(c.user), s.cfg.MaxKeyBits)
		out.add(s.startEncryption(c.user, ""))
	default:
		sess.started = true
		out.add(domain.Event{"method": "init"})
		s.log.Info().Str("session", sess.id).Str("user", c.user).Msg("session started")
	}
}

func (s *Server) processEvent(sess *session, c call, out *reply) {
	// Calls to the session itself carry no plugin field at all.
	_, addressed := c.data["plugin"]
	plugin, _ := c.data["plugin"].(string)
	method, _ := c.data["method"].(string)
	switch {
	case !addressed && method == "getEvents":
		for _, ev := range sess.pending {
			out.add(ev)
		}
		sess.pending = nil
	case !addressed && method == "addPlugin":
		if name, ok := c.data["pluginToAdd"].(string); ok && name != "" {
			sess.plugins = append(sess.plugins, name)
		}
	case plugin == "echo":
		ev := domain.Event{"plugin": "echo", "method": method}
		for k, v := range c.data {
			if k != "plugin" && k != "method" {
				ev[k] = v
			}
		}
		out.add(ev)
	case plugin == "files" && method == "download":
		out.add(domain.Event{"method": "doDownload", "downloadPlugin": "files", "downloadMethod": "fetch", "name": c.data["name"]})
	default:
		out.add(domain.Event{"method": "error", "message": fmt.Sprintf("No handler for %s.%s", plugin, method)})
	}
}

func (s *Server) changePassword(sess *session, c call, out *reply) {
	digits, _ := c.data["passwordData"].([]any)
	if len(digits) == 0 || len(digits) != len(s.cfg.Hashing.PrimaryModulos) {
		out.add(domain.Event{
			"method":  "changePassword",
			"hashing": s.hashingFor(sess.user),
			"error":   "Invalid password data",
		})
		return
	}
	s.log.Info().Str("session", sess.id).Str("user", sess.user).Msg("password change accepted")
}

func (s *Server) write(w http.ResponseWriter, out reply, key string) {
	if out == nil {
		out = reply{}
	}
	b, err := json.Marshal(out)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	body := string(b)
	if key != "" {
		if body, err = s.cfg.Cipher.Encrypt(body, key); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(body))
}
