// Package router dispatches server events to registered plugins.
//
// Events naming a plugin go to that plugin; events without one go to the
// control handler supplied by the session. After a whole batch has been
// applied, every plugin that received at least one event is told so once,
// in the order the plugins were first reached.
//
// Concurrency: Router is NOT safe for concurrent use. The session calls it
// from its single control flow.
package router
