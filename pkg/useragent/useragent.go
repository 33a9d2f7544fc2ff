package useragent

import (
	"errors"
	"strings"
)

var (
	// ErrEmptyUserAgent is returned when the User-Agent header is empty.
	ErrEmptyUserAgent = errors.New("empty user agent")
)

// Fast-path lookup for common crawlers and social media bots. Keys are
// lowercase substrings, values the canonical bot name.
var knownBots = []struct {
	marker string
	name   string
}{
	{"googlebot", "Googlebot"},
	{"bingbot", "Bingbot"},
	{"duckduckbot", "DuckDuckBot"},
	{"yandexbot", "YandexBot"},
	{"baiduspider", "Baiduspider"},
	{"slurp", "Yahoo Slurp"},
	{"facebookexternalhit", "Facebook"},
	{"twitterbot", "Twitterbot"},
	{"linkedinbot", "LinkedInBot"},
	{"slackbot", "Slackbot"},
	{"telegrambot", "TelegramBot"},
	{"discordbot", "Discordbot"},
	{"applebot", "Applebot"},
	{"semrushbot", "SemrushBot"},
	{"ahrefsbot", "AhrefsBot"},
}

// Generic bot markers checked after the fast path.
var botMarkers = []string{"bot", "crawler", "spider", "scraper", "curl/", "wget/", "python-requests", "go-http-client", "headlesschrome"}

// Parse extracts browser, OS and device information from a User-Agent
// string. An empty input returns ErrEmptyUserAgent; anything else yields a
// best-effort result, falling back to DeviceTypeUnknown rather than
// failing, since classification is advisory.
func Parse(raw string) (UserAgent, error) {
	if strings.TrimSpace(raw) == "" {
		return UserAgent{raw: raw, deviceType: DeviceTypeUnknown}, ErrEmptyUserAgent
	}

	lower := strings.ToLower(raw)

	if name, ok := detectBot(lower); ok {
		return UserAgent{raw: raw, deviceType: DeviceTypeBot, botName: name}, nil
	}

	os := detectOS(lower)
	browser, version := detectBrowser(lower)

	return UserAgent{
		raw:        raw,
		deviceType: detectDeviceType(lower, os),
		os:         os,
		browser:    browser,
		browserVer: version,
	}, nil
}

func detectBot(lower string) (string, bool) {
	for _, b := range knownBots {
		if strings.Contains(lower, b.marker) {
			return b.name, true
		}
	}
	for _, marker := range botMarkers {
		if strings.Contains(lower, marker) {
			return "", true
		}
	}
	return "", false
}

func detectOS(lower string) string {
	switch {
	case strings.Contains(lower, "windows"):
		return "windows"
	case strings.Contains(lower, "iphone"), strings.Contains(lower, "ipad"), strings.Contains(lower, "ipod"):
		return "ios"
	case strings.Contains(lower, "android"):
		return "android"
	case strings.Contains(lower, "cros"):
		return "chromeos"
	case strings.Contains(lower, "mac os x"), strings.Contains(lower, "macintosh"):
		return "macos"
	case strings.Contains(lower, "linux"):
		return "linux"
	default:
		return ""
	}
}

// detectBrowser matches in a specific order because Chrome-family agents
// embed "safari" and Edge/Opera embed "chrome".
func detectBrowser(lower string) (string, string) {
	switch {
	case strings.Contains(lower, "edg/"):
		return "edge", versionAfter(lower, "edg/")
	case strings.Contains(lower, "opr/"):
		return "opera", versionAfter(lower, "opr/")
	case strings.Contains(lower, "firefox/"):
		return "firefox", versionAfter(lower, "firefox/")
	case strings.Contains(lower, "chrome/"):
		return "chrome", versionAfter(lower, "chrome/")
	case strings.Contains(lower, "safari/") && strings.Contains(lower, "version/"):
		return "safari", versionAfter(lower, "version/")
	default:
		return "", ""
	}
}

func detectDeviceType(lower, os string) DeviceType {
	switch {
	case strings.Contains(lower, "ipad"),
		strings.Contains(lower, "tablet"),
		os == "android" && !strings.Contains(lower, "mobile"):
		return DeviceTypeTablet
	case strings.Contains(lower, "mobile"),
		strings.Contains(lower, "iphone"),
		strings.Contains(lower, "ipod"):
		return DeviceTypeMobile
	case os == "windows", os == "macos", os == "linux", os == "chromeos":
		return DeviceTypeDesktop
	default:
		return DeviceTypeUnknown
	}
}

func versionAfter(lower, marker string) string {
	idx := strings.Index(lower, marker)
	if idx < 0 {
		return ""
	}
	rest := lower[idx+len(marker):]
	end := 0
	for end < len(rest) && (rest[end] == '.' || (rest[end] >= '0' && rest[end] <= '9')) {
		end++
	}
	return rest[:end]
}
