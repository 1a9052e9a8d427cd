package persona

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/agenthands/pokedex/internal/catalog"
)

var (
	ErrSessionNotFound = errors.New("chat session not found")
	ErrEmptyMessage    = errors.New("message content is empty")
)

// DefaultSessionTTL is how long an idle session is kept.
const DefaultSessionTTL = 30 * time.Minute

type session struct {
	mu         sync.Mutex
	detail     catalog.Detail
	transcript []Message
	lastUsed   time.Time
}

// Sessions holds in-memory chat sessions for the life of the process.
// Idle sessions are swept whenever a session is started or used.
type Sessions struct {
	responder *Responder
	ttl       time.Duration
	now       func() time.Time

	mu       sync.Mutex
	sessions map[string]*session
}

func NewSessions(responder *Responder, ttl time.Duration) *Sessions {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &Sessions{
		responder: responder,
		ttl:       ttl,
		now:       time.Now,
		sessions:  make(map[string]*session),
	}
}

// Start opens a session whose transcript begins with the greeting.
func (s *Sessions) Start(d catalog.Detail) (string, []Message) {
	id := uuid.New().String()
	greeting := []Message{{Role: RoleAssistant, Content: Greeting(d)}}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sweepLocked()
	s.sessions[id] = &session{
		detail:     d,
		transcript: greeting,
		lastUsed:   s.now(),
	}
	return id, cloneMessages(greeting)
}

// Append adds a user turn, obtains the reply and records it. Turns on one
// session are serialised.
func (s *Sessions) Append(ctx context.Context, id, content string) (string, []Message, error) {
	if strings.TrimSpace(content) == "" {
		return "", nil, ErrEmptyMessage
	}
	sess, err := s.lookup(id)
	if err != nil {
		return "", nil, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	sess.transcript = append(sess.transcript, Message{Role: RoleUser, Content: content})
	reply := s.responder.Respond(ctx, sess.transcript, sess.detail)
	sess.transcript = append(sess.transcript, Message{Role: RoleAssistant, Content: reply})

	return reply, cloneMessages(sess.transcript), nil
}

// Transcript returns a copy of the session's messages.
func (s *Sessions) Transcript(id string) ([]Message, error) {
	sess, err := s.lookup(id)
	if err != nil {
		return nil, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return cloneMessages(sess.transcript), nil
}

// End discards a session.
func (s *Sessions) End(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[id]; !ok {
		return ErrSessionNotFound
	}
	delete(s.sessions, id)
	return nil
}

// Len reports the number of live sessions.
func (s *Sessions) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

func (s *Sessions) lookup(id string) (*session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sweepLocked()
	sess, ok := s.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	sess.lastUsed = s.now()
	return sess, nil
}

func (s *Sessions) sweepLocked() {
	cutoff := s.now().Add(-s.ttl)
	for id, sess := range s.sessions {
		if sess.lastUsed.Before(cutoff) {
			delete(s.sessions, id)
		}
	}
}

func cloneMessages(in []Message) []Message {
	out := make([]Message, len(in))
	copy(out, in)
	return out
}
