// Package session owns the per-user conversation history. Each user id maps
// to exactly one Session whose lock is held for an entire multi-round
// exchange, so concurrent requests for the same user serialize instead of
// overwriting each other's appends.
package session

import (
	"sync"

	"github.com/tmc/langchaingo/llms"
)

// Session is one user's ordered message history. The first message is
// always the system prompt, inserted exactly once at creation. Messages are
// appended, never removed, for the process lifetime.
type Session struct {
	userID   string
	mu       sync.Mutex
	messages []llms.MessageContent
}

type Store struct {
	mu           sync.Mutex
	sessions     map[string]*Session
	systemPrompt string
}

func NewStore(systemPrompt string) *Store {
	return &Store{
		sessions:     make(map[string]*Session),
		systemPrompt: systemPrompt,
	}
}

// Acquire returns the session for userID with its lock held. The caller
// owns the session exclusively until Release; holding the lock across the
// slow model/tool rounds is what makes same-user requests serialize.
func (s *Store) Acquire(userID string) *Session {
	s.mu.Lock()
	sess, ok := s.sessions[userID]
	if !ok {
		sess = &Session{
			userID: userID,
			messages: []llms.MessageContent{
				llms.TextParts(llms.ChatMessageTypeSystem, s.systemPrompt),
			},
		}
		s.sessions[userID] = sess
	}
	s.mu.Unlock()

	sess.mu.Lock()
	return sess
}

// Release gives up exclusive ownership of the session.
func (sess *Session) Release() {
	sess.mu.Unlock()
}

// Append adds messages to the history. The caller must hold the session via
// Acquire.
func (sess *Session) Append(messages ...llms.MessageContent) {
	sess.messages = append(sess.messages, messages...)
}

// Messages returns a snapshot of the history for the model call.
func (sess *Session) Messages() []llms.MessageContent {
	out := make([]llms.MessageContent, len(sess.messages))
	copy(out, sess.messages)
	return out
}

// Len returns the current message count, which feeds the reply id.
func (sess *Session) Len() int {
	return len(sess.messages)
}

// UserID returns the owning user id.
func (sess *Session) UserID() string {
	return sess.userID
}
