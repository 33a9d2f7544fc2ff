package session

import (
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/authcore/pkg/geoip"
	"github.com/dmitrymomot/authcore/pkg/useragent"
)

// Device is the coarse device descriptor stamped on a session at creation.
type Device struct {
	Type useragent.DeviceType `json:"type"`
	Name string               `json:"name"`
}

// Session represents one authenticated device or browser for a user.
// Only LastActivityAt changes after creation; everything else is
// captured once from the request that created the session.
type Session struct {
	// ID is the stable unique session identifier, immutable for the session lifetime.
	ID uuid.UUID `json:"id"`

	// UserID identifies the owning user. User identity itself is managed externally.
	UserID uuid.UUID `json:"user_id"`

	Device   Device         `json:"device"`
	Location geoip.Location `json:"location"`

	IP        string `json:"ip"`
	UserAgent string `json:"user_agent"`

	CreatedAt      time.Time `json:"created_at"`
	LastActivityAt time.Time `json:"last_activity_at"`

	// Current is derived, never stored. It is set when listing sessions by
	// comparing each session ID against the one embedded in the caller's token.
	Current bool `json:"current,omitempty"`
}

// Metadata carries the request attributes captured when a session is created.
type Metadata struct {
	IP        string
	UserAgent string
	Location  geoip.Location
}

// New creates a session for the user from request metadata.
// The device descriptor is derived from the user agent; unparseable
// agents yield the unknown device type rather than an error.
func New(userID uuid.UUID, meta Metadata) Session {
	device := Device{Type: useragent.DeviceTypeUnknown}
	if ua, err := useragent.Parse(meta.UserAgent); err == nil {
		device = Device{
			Type: ua.DeviceType(),
			Name: ua.GetShortIdentifier(),
		}
	}

	now := time.Now()
	return Session{
		ID:             uuid.New(),
		UserID:         userID,
		Device:         device,
		Location:       meta.Location,
		IP:             meta.IP,
		UserAgent:      meta.UserAgent,
		CreatedAt:      now,
		LastActivityAt: now,
	}
}

// IsExpired reports whether the session exceeded the idle timeout or the
// absolute maximum age at the given moment. Whichever bound is stricter wins.
// Non-positive durations disable the corresponding bound.
func (s Session) IsExpired(idleTTL, maxAge time.Duration, now time.Time) bool {
	if idleTTL > 0 && now.Sub(s.LastActivityAt) > idleTTL {
		return true
	}
	if maxAge > 0 && now.Sub(s.CreatedAt) > maxAge {
		return true
	}
	return false
}
