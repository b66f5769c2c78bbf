// Package store keeps per-conversation state: the last topic a user selected.
package store

// SessionStore is keyed by the conversation identity the transport provides.
// LastTopic returns "" when the key has no recorded topic yet; callers apply
// their own default.
type SessionStore interface {
	LastTopic(key string) (string, error)
	SetLastTopic(key, topic string) error
}
