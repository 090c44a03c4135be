package domain

// Exchange is one user query paired with the assistant's response.
// Exchanges are immutable once appended to a session.
type Exchange struct {
	// Query is the user's question.
	Query string

	// Response is the assistant's final answer text.
	Response string
}

// Session is a bounded, ordered conversation history keyed by an opaque
// identifier. Sessions are created lazily on first append and live only
// for the process lifetime; older exchanges beyond the configured bound
// are dropped, never summarised.
type Session struct {
	// ID is the opaque session identifier.
	ID string

	// Exchanges holds the most recent exchanges, oldest first.
	Exchanges []Exchange
}
