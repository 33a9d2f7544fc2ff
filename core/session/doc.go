// Package session owns the authoritative mapping from a user to the set
// of active sessions, one per device or browser. It covers creation,
// activity heartbeats, enumeration, revocation, and expiry.
//
// A session records where and when a user signed in: a coarse device
// descriptor parsed from the user agent, a best-effort location, raw IP
// and user agent, and two timestamps. Only the activity timestamp
// changes after creation.
//
// # Usage
//
//	store := session.NewMemoryStore()
//	manager := session.NewManager(store,
//		session.WithIdleTTL(7*24*time.Hour),
//		session.WithMaxAge(30*24*time.Hour),
//	)
//
//	sess, err := manager.Create(ctx, userID, session.Metadata{
//		IP:        "203.0.113.7",
//		UserAgent: r.UserAgent(),
//	})
//
//	// Heartbeat on each authenticated request; writes are throttled.
//	_ = manager.Touch(ctx, userID, sess.ID)
//
//	// "Active devices" listing, most recently active first.
//	sessions, err := manager.List(ctx, userID, sess.ID)
//
//	// Log out one device, or everywhere else.
//	removed, err := manager.Revoke(ctx, userID, sessionID)
//	count, err := manager.RevokeOthers(ctx, userID, sess.ID)
//
// # Expiry
//
// A session dies when it exceeds the idle timeout or the absolute
// maximum age, whichever bound is hit first. Expiry is enforced at read
// time, so Get and List never return a logically-expired session. An
// optional background sweep reclaims storage:
//
//	g, ctx := errgroup.WithContext(ctx)
//	g.Go(func() error { return manager.Run(ctx) })
//
// # Stores
//
// Three Store implementations ship with the package: MemoryStore for
// tests and single-process deployments, RedisStore for shared state
// across processes, and PostgresStore for durable persistence. All
// serialize mutations per user.
package session
