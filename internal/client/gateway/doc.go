// Package gateway is the authenticated request gateway of the storefront
// client. Every call that needs authorization goes through Gateway.Do (HTTP)
// or Gateway.UnaryClientInterceptor (gRPC).
//
// A call reads the credential slot, refreshes proactively when the access
// credential's exp has passed, sends the request with a bearer header, and on
// a rejection refreshes once and retries once. A second rejection is returned
// to the caller unchanged.
//
// Refreshes are coalesced by RefreshCoordinator: any number of concurrent
// callers share a single call to the token refresh endpoint. When the refresh
// fails both credentials are cleared, the LogoutNotifier is told, and callers
// get an error matching ErrAuthenticationFailed. Transport errors of the
// original request are returned unchanged.
package gateway
