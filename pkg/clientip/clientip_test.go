package clientip_test

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/authcore/pkg/clientip"
)

func TestGetIP(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		headers    map[string]string
		remoteAddr string
		want       string
	}{
		{
			name:       "remote addr only",
			remoteAddr: "203.0.113.5:12345",
			want:       "203.0.113.5",
		},
		{
			name:       "cloudflare header wins",
			headers:    map[string]string{"CF-Connecting-IP": "198.51.100.1", "X-Real-IP": "192.0.2.9"},
			remoteAddr: "10.0.0.1:80",
			want:       "198.51.100.1",
		},
		{
			name:       "x-forwarded-for leftmost entry",
			headers:    map[string]string{"X-Forwarded-For": "198.51.100.2, 10.0.0.2, 10.0.0.3"},
			remoteAddr: "10.0.0.1:80",
			want:       "198.51.100.2",
		},
		{
			name:       "invalid forwarded value falls through",
			headers:    map[string]string{"X-Forwarded-For": "not-an-ip", "X-Real-IP": "192.0.2.7"},
			remoteAddr: "10.0.0.1:80",
			want:       "192.0.2.7",
		},
		{
			name:       "unspecified address rejected",
			headers:    map[string]string{"X-Real-IP": "0.0.0.0"},
			remoteAddr: "203.0.113.9:443",
			want:       "203.0.113.9",
		},
		{
			name:       "ipv6 normalized",
			headers:    map[string]string{"X-Real-IP": "2001:db8::1"},
			remoteAddr: "10.0.0.1:80",
			want:       "2001:db8::1",
		},
		{
			name:       "remote addr without port",
			remoteAddr: "203.0.113.20",
			want:       "203.0.113.20",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r := httptest.NewRequest("GET", "/", nil)
			r.RemoteAddr = tt.remoteAddr
			for k, v := range tt.headers {
				r.Header.Set(k, v)
			}

			assert.Equal(t, tt.want, clientip.GetIP(r))
		})
	}
}
