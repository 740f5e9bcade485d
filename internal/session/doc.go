// Package session owns "who is currently using the application".
//
// The Store is the single source of truth for the bearer credential and
// the resolved user, persisted across restarts in the local credentials
// table. Its lifecycle is a small state machine:
//
//	Uninitialized → Restoring → { Authenticated, Anonymous }
//
// with Login/Register moving a terminal state to Authenticated and
// Logout (or a rejected token) moving it to Anonymous. Token and user are
// set and cleared together; the only moment they diverge is inside
// Restore, while the stored token is being verified.
//
// Expected failures (bad credentials, unreachable server, rejected
// registration) never propagate as errors: Login and Register resolve
// false and leave a human-readable message in Err. Only programming
// errors escape.
//
// The Store is the sole writer of the persisted token pair. Components
// that need to force a session change call Login/Logout; nothing else may
// touch the credentials table.
package session
