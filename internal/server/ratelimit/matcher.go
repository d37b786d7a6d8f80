package ratelimit

import "strings"

// MatchEndpoint resolves a request to its limit configuration. An
// exact path and method match wins; a configured path ending in "/"
// matches as a prefix, which covers parameterized routes such as
// /schemes/{slug}. Returns nil when no configuration applies, in
// which case the caller falls back to the global default.
func MatchEndpoint(path, method string, configs []EndpointConfig) *EndpointConfig {
	// Liveness checks must never be throttled.
	if path == "/health" && method == "GET" {
		return &EndpointConfig{}
	}

	for i := range configs {
		c := &configs[i]
		if c.Path == path && c.Method == method {
			return c
		}
	}

	for i := range configs {
		c := &configs[i]
		if c.Method == method && strings.HasSuffix(c.Path, "/") && strings.HasPrefix(path, c.Path) {
			return c
		}
	}

	return nil
}
