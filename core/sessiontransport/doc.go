// Package sessiontransport moves auth tokens between HTTP requests and
// the auth service.
//
// Two transports cover the two client families:
//
//   - Cookie stores session and two-factor challenge tokens in signed
//     HttpOnly cookies, for server-rendered and same-origin browser
//     surfaces.
//   - Bearer wraps the session token in a JWT carried in the
//     Authorization header, for API clients that manage tokens
//     themselves.
//
// Both expose the same protocol surface: Login, VerifyTwoFactor,
// Authenticate, Logout and ListSessions. The transports only handle
// token carriage; every security decision stays in core/auth.
//
// # Cookie usage
//
//	cookies, _ := cookie.New([]string{secret})
//	transport := sessiontransport.NewCookie(authSvc, cookies)
//
//	func loginHandler(w http.ResponseWriter, r *http.Request) {
//		res, err := transport.Login(w, r, r.FormValue("email"), r.FormValue("password"))
//		if err != nil {
//			// render the login form with a generic failure message
//			return
//		}
//		if res.Status == auth.StatusTwoFactorRequired {
//			// redirect to the code entry form; the challenge cookie is set
//			return
//		}
//		// logged in
//	}
//
// # Bearer usage
//
//	transport, _ := sessiontransport.NewBearer(authSvc, signingKey)
//
//	res, err := transport.Login(r, email, password)
//	// res.AccessToken or res.ChallengeToken depending on res.Status
//
//	sess, err := transport.Authenticate(r) // from Authorization: Bearer <jwt>
package sessiontransport
