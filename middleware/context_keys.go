package middleware

// contextKey defines a type for context keys to avoid collisions.
type contextKey string

const (
	// UserIDKey holds the authenticated user's id (the token subject).
	UserIDKey contextKey = "user_id"
)
