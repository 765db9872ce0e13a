// Package common contains constants, sentinel errors and small helpers shared
// by the storefront client packages.
package common

const (
	// AuthorizationHeader carries the bearer access credential on HTTP requests
	// and gRPC metadata ("authorization").
	AuthorizationHeader = "Authorization"
	BearerPrefix        = "Bearer "

	// RequestIDHeader tags every outbound API call for server-side correlation.
	RequestIDHeader = "X-Request-ID"

	ContentTypeJSON = "application/json"
)
