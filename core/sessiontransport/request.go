package sessiontransport

import (
	"net/http"

	"github.com/dmitrymomot/authcore/core/auth"
	"github.com/dmitrymomot/authcore/pkg/clientip"
)

// metadataFromRequest captures the request attributes stamped onto new
// sessions and used for rate-limit keying.
func metadataFromRequest(r *http.Request) auth.Metadata {
	return auth.Metadata{
		IP:        clientip.GetIP(r),
		UserAgent: r.UserAgent(),
	}
}
