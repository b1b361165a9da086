// Package session implements the client side of one application session.
//
// An Engine owns the session identity, the held credentials and encryption
// key, and the keep-alive timer. It queues outbound calls, runs them one at a
// time through the injected transport, and feeds each response batch to the
// router, which hands unaddressed events back to the engine as control
// events.
//
// # State
//
// A session is unstarted until the server answers with an init event, after
// which the keep-alive timer runs. Independently it is authenticated or not
// and encrypted or not. The server drives every transition: it may ask for a
// login, start an encryption handshake, restart the client, or lock the
// application.
//
// # Handshake
//
// startEncryption carries hashing parameters. If the held credentials have a
// password, the key is derived from it at once; otherwise the engine latches
// the handshake, prompts for a login, and resumes it when SubmitLogin is
// called, re-issuing init under the new key.
//
// # Concurrency
//
// Engine is NOT safe for concurrent use. Run is its control flow; other
// goroutines hand work to it with Post. Tests and synchronous callers may
// instead drive it directly and call Flush.
package session
