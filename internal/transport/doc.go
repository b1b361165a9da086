// Package transport provides the HTTP implementation of domain.Transport.
//
// Every call is a form-encoded POST of the flattened request to the servlet
// URL, with caching disabled. The response body is returned as is; decoding
// and decryption belong to the session engine.
//
// Failures come back as *domain.TransportError so the engine can tell the
// user whether the server was unreachable, slow, or answered with an error
// status.
package transport
