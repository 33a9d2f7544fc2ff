package geoip

import (
	"net"
	"strings"
)

// Location is a best-effort approximate location. Any or all fields may be
// empty; an entirely empty value means the address could not be located.
type Location struct {
	City    string `json:"city,omitempty"`
	Region  string `json:"region,omitempty"`
	Country string `json:"country,omitempty"`
}

// IsZero reports whether no location information is present.
func (l Location) IsZero() bool {
	return l.City == "" && l.Region == "" && l.Country == ""
}

// Range maps a CIDR block to a location, for building offline tables from
// whatever data source the integrator has (a GeoIP dump, an office subnet
// inventory, a CDN's published ranges).
type Range struct {
	CIDR     string
	Location Location
}

// Resolver answers location lookups from an in-memory range table.
// Lookups never touch the network, which keeps them safe on the
// authentication hot path.
type Resolver struct {
	ranges []rangeEntry
}

type rangeEntry struct {
	net *net.IPNet
	loc Location
}

// NewResolver builds a resolver from an offline range table. Ranges with
// unparseable CIDRs are skipped silently; lookups degrade to an empty
// location rather than failing.
func NewResolver(ranges []Range) *Resolver {
	r := &Resolver{ranges: make([]rangeEntry, 0, len(ranges))}
	for _, entry := range ranges {
		_, network, err := net.ParseCIDR(strings.TrimSpace(entry.CIDR))
		if err != nil {
			continue
		}
		r.ranges = append(r.ranges, rangeEntry{net: network, loc: entry.Location})
	}
	return r
}

// Lookup resolves an IP address to an approximate location. Invalid,
// private, loopback, and otherwise non-routable addresses return an empty
// location. Never errors.
func (r *Resolver) Lookup(ip string) Location {
	parsed := net.ParseIP(strings.TrimSpace(ip))
	if parsed == nil || !isPublic(parsed) {
		return Location{}
	}

	if r != nil {
		for _, entry := range r.ranges {
			if entry.net.Contains(parsed) {
				return entry.loc
			}
		}
	}

	return Location{}
}

// isPublic filters addresses that can never be geolocated.
func isPublic(ip net.IP) bool {
	return !(ip.IsLoopback() ||
		ip.IsPrivate() ||
		ip.IsUnspecified() ||
		ip.IsLinkLocalUnicast() ||
		ip.IsLinkLocalMulticast() ||
		ip.IsMulticast())
}
