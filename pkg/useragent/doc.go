// Package useragent provides User-Agent string parsing to extract browser,
// operating system, and device information for session metadata.
//
// The package identifies device types (mobile, desktop, tablet, bot,
// unknown) using keyword-based matching with a fast path for common
// crawlers. Parsing is pure and deterministic; unparseable input yields a
// well-defined unknown classification rather than an error, since the
// result is advisory session metadata, never a security decision.
//
//	ua, err := useragent.Parse(r.Header.Get("User-Agent"))
//	if err != nil {
//		// continue with the zero-value unknown descriptor
//	}
//
//	switch ua.DeviceType() {
//	case useragent.DeviceTypeMobile:
//		// ...
//	case useragent.DeviceTypeBot:
//		log.Printf("bot traffic: %s", ua.GetShortIdentifier())
//	}
//
// GetShortIdentifier produces the human-readable device label shown in
// "your active sessions" listings, e.g. "Chrome 120 (Windows, desktop)".
package useragent
