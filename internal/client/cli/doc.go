// Package cli provides the interactive gradebook command-line client.
//
// It wires configuration, the local session store, the API services and
// the router, then runs a REPL. Every command that belongs to a page first
// navigates there through the guard; when the guard redirects, the
// redirect is printed and the command does not run.
//
// Key features:
//   - Login / Logout / Register / forced password change
//   - Admin: approval queue, teachers, classes, students, exam tasks,
//     imports with history and rollback, exports and certificates
//   - Teacher: own courses and score sheets, score import/export
//
// When the server rejects the session (401/403) the pipeline wipes it and
// the router jumps back to the login page, dropping cached view state.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
