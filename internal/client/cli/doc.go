// Package cli provides the interactive VR-Doctor command-line client.
//
// It wires configuration, local session storage, the HTTP API client, and an
// interactive REPL around one long-lived session store. Typical flow: start
// the background session restore, prompt for credentials when the user signs
// in, and execute commands until exit.
//
// Key features:
//   - Login / Logout against the study backend
//   - Status: the reducer-mirrored session state as the UI sees it
//   - Whoami: the current user id resolved by the context provider
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
