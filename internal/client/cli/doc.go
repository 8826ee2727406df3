// Package cli provides the interactive licensing-admin command-line client.
//
// It wires configuration, the local session store, the auth gateway, and an
// interactive REPL driven by the session manager. Typical flow: restore the
// previous session at startup, then execute user commands.
//
// Key features:
//   - Register / Login (with a two-factor step-up when the backend demands it)
//   - Forgot / Reset password
//   - View and update the signed-in profile
//   - Manual token refresh
//   - Fetch the authorization audit trail for a trace id
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App and runREPL for details.
package cli
