// Package cli provides the interactive storefront command-line client.
//
// NewApp wires configuration, the credential store, the authenticated
// gateway, the API client and the services. App.Run starts two background
// watchers (API reachability and session state) and blocks in the REPL until
// the user exits.
//
// Commands:
//   - help, exit | quit
//   - register, login, logout
//   - products, product <id>, trending
//   - me, rename, passwd
//   - orders, order, editorder <n>, cancel <n>
//
// When a failed credential refresh ends the session, the REPL prints
// SessionExpiredNotice and falls back to the logged-out command set.
package cli
