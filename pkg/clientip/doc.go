// Package clientip extracts real client IP addresses from HTTP requests.
//
// Headers are checked in priority order: CF-Connecting-IP (Cloudflare),
// DO-Connecting-IP (DigitalOcean), X-Forwarded-For (leftmost entry),
// X-Real-IP, then RemoteAddr. All candidates are validated and normalized;
// 0.0.0.0 is rejected. The function never panics and always returns a
// string, which makes it safe on the authentication hot path for rate
// limiting and session metadata capture.
package clientip
