// Package cli provides the interactive Runnio command-line client.
//
// It wires configuration, the local session store, the API services and an
// interactive REPL. Every page command is a route: typing "signup 7" navigates
// to /events/7/signup, and the route guard decides whether it renders, waits
// for the session to load, or redirects to /login or /dashboard. After a
// login triggered by a redirect the original location is opened again.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App, StartOnlineStatusWatcher and runREPL for details.
package cli
