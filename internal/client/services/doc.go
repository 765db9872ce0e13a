// Package services contains the application services of the storefront
// client used by the REPL: account handling (AuthService) and catalog plus
// orders (ShopService).
package services
