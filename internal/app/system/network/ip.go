// Package network provides network-related utilities.
package network

import (
	"net/http"
	"strings"
)

// UnknownIP is the rate-limit key used when no client IP can be
// determined. All such requests share one bucket.
const UnknownIP = "unknown"

// GetClientIP extracts the client IP address from the request.
// It checks X-Forwarded-For and X-Real-IP headers for reverse proxy setups,
// and falls back to RemoteAddr if neither is present. Returns UnknownIP
// when no address can be determined.
func GetClientIP(r *http.Request) string {
	// Check X-Forwarded-For header first (for reverse proxies)
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		// Take the first IP in the chain (client IP)
		if idx := strings.Index(xff, ","); idx != -1 {
			if ip := strings.TrimSpace(xff[:idx]); ip != "" {
				return ip
			}
		} else {
			return strings.TrimSpace(xff)
		}
	}

	// Check X-Real-IP header
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}

	// Fall back to RemoteAddr, stripping the port
	addr := r.RemoteAddr
	if idx := strings.LastIndex(addr, ":"); idx != -1 {
		addr = addr[:idx]
	}
	if addr == "" {
		return UnknownIP
	}
	return addr
}
