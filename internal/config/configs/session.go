package configs

import "time"

// Session configures the server-side session store. TTL bounds how
// long a login remains valid; CookieName is the cookie the token is
// issued in.
type Session struct {
	// TTL is the lifetime of a session. Defaults to 24 hours.
	TTL time.Duration `env:"TTL" envDefault:"24h"`
	// CookieName is the name of the session cookie.
	CookieName string `env:"COOKIE_NAME" envDefault:"adpilot_session"`
}
