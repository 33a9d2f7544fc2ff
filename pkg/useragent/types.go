package useragent

// DeviceType is the coarse device classification extracted from a
// User-Agent string.
type DeviceType string

const (
	DeviceTypeDesktop DeviceType = "desktop"
	DeviceTypeMobile  DeviceType = "mobile"
	DeviceTypeTablet  DeviceType = "tablet"
	DeviceTypeBot     DeviceType = "bot"
	DeviceTypeUnknown DeviceType = "unknown"
)

// UserAgent holds the information extracted from a User-Agent string.
// Values are lowercase except browser versions and bot names.
type UserAgent struct {
	raw        string
	deviceType DeviceType
	os         string
	browser    string
	browserVer string
	botName    string
}

// New builds a UserAgent from pre-extracted values, useful as a fallback
// when Parse fails and processing must continue.
func New(raw string, deviceType DeviceType, os, browser, browserVer string) UserAgent {
	return UserAgent{
		raw:        raw,
		deviceType: deviceType,
		os:         os,
		browser:    browser,
		browserVer: browserVer,
	}
}

// Raw returns the original User-Agent string.
func (ua UserAgent) Raw() string { return ua.raw }

// DeviceType returns the coarse device classification.
func (ua UserAgent) DeviceType() DeviceType { return ua.deviceType }

// OS returns the detected operating system ("windows", "macos", "linux",
// "android", "ios", "chromeos") or empty when unknown.
func (ua UserAgent) OS() string { return ua.os }

// BrowserName returns the detected browser ("chrome", "safari", "firefox",
// "edge", "opera") or empty when unknown.
func (ua UserAgent) BrowserName() string { return ua.browser }

// BrowserVer returns the detected browser version or empty.
func (ua UserAgent) BrowserVer() string { return ua.browserVer }

// BotName returns the matched crawler name when the agent is a bot.
func (ua UserAgent) BotName() string { return ua.botName }

// IsMobile reports whether the device is a phone.
func (ua UserAgent) IsMobile() bool { return ua.deviceType == DeviceTypeMobile }

// IsTablet reports whether the device is a tablet.
func (ua UserAgent) IsTablet() bool { return ua.deviceType == DeviceTypeTablet }

// IsDesktop reports whether the device is a desktop or laptop.
func (ua UserAgent) IsDesktop() bool { return ua.deviceType == DeviceTypeDesktop }

// IsBot reports whether the agent is a known crawler.
func (ua UserAgent) IsBot() bool { return ua.deviceType == DeviceTypeBot }

// GetShortIdentifier returns a human-readable device label for session
// listings, e.g. "Chrome 120 (Windows, desktop)" or "Bot: Googlebot".
func (ua UserAgent) GetShortIdentifier() string {
	if ua.deviceType == DeviceTypeBot {
		if ua.botName != "" {
			return "Bot: " + ua.botName
		}
		return "Bot"
	}

	browser := titleCase(ua.browser)
	if browser == "" {
		browser = "Unknown browser"
	}
	if ua.browserVer != "" {
		browser += " " + majorVersion(ua.browserVer)
	}

	os := osLabel(ua.os)
	if os == "" {
		return browser + " (" + string(ua.deviceType) + ")"
	}
	return browser + " (" + os + ", " + string(ua.deviceType) + ")"
}

func osLabel(os string) string {
	switch os {
	case "windows":
		return "Windows"
	case "macos":
		return "macOS"
	case "linux":
		return "Linux"
	case "android":
		return "Android"
	case "ios":
		return "iOS"
	case "chromeos":
		return "ChromeOS"
	default:
		return ""
	}
}

func titleCase(s string) string {
	if s == "" {
		return ""
	}
	if s[0] >= 'a' && s[0] <= 'z' {
		return string(s[0]-'a'+'A') + s[1:]
	}
	return s
}

func majorVersion(v string) string {
	for i := 0; i < len(v); i++ {
		if v[i] == '.' {
			return v[:i]
		}
	}
	return v
}
