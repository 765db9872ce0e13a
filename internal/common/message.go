package common

import "github.com/tidwall/gjson"

// ServerMessage extracts the human-readable message of a JSON error body.
// The storefront API uses "msg"; other deployments use "message" or "error".
func ServerMessage(body []byte) string {
	return FirstString(body, "msg", "message", "error")
}

// FirstString returns the first of paths that holds a non-empty JSON string.
func FirstString(body []byte, paths ...string) string {
	if !gjson.ValidBytes(body) {
		return ""
	}
	for _, p := range paths {
		if r := gjson.GetBytes(body, p); r.Type == gjson.String && r.Str != "" {
			return r.Str
		}
	}
	return ""
}
