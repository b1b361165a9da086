// Package stubserver is a small in-memory application server that speaks
// the client protocol. It backs the prismsd command and the end-to-end
// tests.
//
// Every request goes to one servlet path. A request without a known session
// gets a fresh session ID. init walks the client through login and the key
// handshake; once the session has started it answers getVersion and
// processEvent calls for the built-in echo plugin and the session-level
// getEvents and addPlugin methods. Responses to encrypted requests are
// encrypted with the session key.
//
// GET requests to the same path serve the source URLs the client builds for
// images, downloads and uploads.
package stubserver
