// Package main runs an in-memory PRISMS servlet for local development and
// tests of prismslink.
//
// HTTP API
//
//	POST /prisms
//	    Form fields RPC-Session-ID (optional), timeStamp and data. data is
//	    the JSON call, or the encrypted call when the session holds a key.
//	    The response is a JSON array of events.
//
//	GET /prisms?method=generateImage|getDownload|doUpload
//	    Binary sources for an established session.
//
// Behaviour
//
//   - Users are declared with --user name=password and checked with the
//     hashing parameters the server hands out in startEncryption.
//   - The "echo" plugin returns each call as an event. With --tick, every
//     live session is also pushed an echo "tick" event on that interval.
//   - All state is held in memory and lost on process exit.
package main
