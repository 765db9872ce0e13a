// Package api is the storefront REST client. Catalog, login and registration
// are public; every other call is sent through the authenticated gateway.
package api
