// Package cli implements the interactive Course Copilot client.
//
// The REPL (see runREPL) dispatches one-word commands to methods on App.
// App owns the wiring: the HTTP client, the resource cache controller, the
// local sqlite stores and the optional drop-folder watcher. Command handlers
// prompt for their arguments interactively, log their own errors and keep
// the loop running.
package cli
