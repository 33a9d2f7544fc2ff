package clientip

import (
	"net"
	"net/http"
	"strings"
)

// Proxy headers checked in priority order, most reliable sources first.
var proxyHeaders = []string{
	"CF-Connecting-IP",
	"DO-Connecting-IP",
	"X-Forwarded-For",
	"X-Real-IP",
}

// GetIP extracts the real client IP from the request, checking proxy
// headers in priority order before falling back to RemoteAddr. It never
// fails: when no header yields a valid address the raw RemoteAddr host is
// returned as-is.
func GetIP(r *http.Request) string {
	for _, header := range proxyHeaders {
		value := r.Header.Get(header)
		if value == "" {
			continue
		}

		// X-Forwarded-For may hold "client, proxy1, proxy2"; the leftmost
		// entry is the original client.
		if header == "X-Forwarded-For" {
			value, _, _ = strings.Cut(value, ",")
		}

		if ip := normalize(value); ip != "" {
			return ip
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	if ip := normalize(host); ip != "" {
		return ip
	}
	return host
}

// normalize validates and canonicalizes an IP string, rejecting the
// meaningless 0.0.0.0 placeholder.
func normalize(value string) string {
	ip := net.ParseIP(strings.TrimSpace(value))
	if ip == nil || ip.IsUnspecified() {
		return ""
	}
	return ip.String()
}
