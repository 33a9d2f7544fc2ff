// Package geoip provides best-effort offline IP-to-location resolution for
// session metadata.
//
// The resolver consults only an injected in-memory range table and
// performs no network I/O, since lookups happen on the authentication hot
// path. Precision is deliberately unconstrained: the only load-bearing
// contract is that Lookup never errors and always returns a value, with
// unknown or non-routable addresses yielding an empty Location.
//
//	resolver := geoip.NewResolver([]geoip.Range{
//		{CIDR: "203.0.113.0/24", Location: geoip.Location{City: "Berlin", Country: "DE"}},
//	})
//
//	loc := resolver.Lookup(clientip.GetIP(r))
package geoip
