// Package models defines the storefront DTOs exchanged with the API.
package models
