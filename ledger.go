package inkwell

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// ClaimResult is the outcome of claiming a compose form token.
type ClaimResult int

const (
	// ClaimOK means the token was fresh and is now reserved for this submission.
	ClaimOK ClaimResult = iota
	// ClaimInFlight means another submission with the token has not finished.
	ClaimInFlight
	// ClaimDone means the token already produced a post.
	ClaimDone
	// ClaimUnknown means the token was never issued or has expired.
	ClaimUnknown
)

type submission struct {
	issued   time.Time
	inFlight bool
	postID   int64
}

// SubmissionLedger hands out one-time compose form tokens so a double-submitted
// form publishes a single post.
type SubmissionLedger struct {
	mu      sync.Mutex
	entries map[string]*submission
	ttl     time.Duration
	stop    chan struct{}
	once    sync.Once
}

// NewSubmissionLedger creates a ledger whose tokens live for ttl.
func NewSubmissionLedger(ttl time.Duration) *SubmissionLedger {
	l := &SubmissionLedger{
		entries: make(map[string]*submission),
		ttl:     ttl,
		stop:    make(chan struct{}),
	}
	go l.cleanup()
	return l
}

func (l *SubmissionLedger) cleanup() {
	ticker := time.NewTicker(l.ttl)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			l.prune(time.Now())
		case <-l.stop:
			return
		}
	}
}

func (l *SubmissionLedger) prune(now time.Time) {
	cutoff := now.Add(-l.ttl)
	l.mu.Lock()
	for token, s := range l.entries {
		if !s.inFlight && s.issued.Before(cutoff) {
			delete(l.entries, token)
		}
	}
	l.mu.Unlock()
}

// Stop ends the background cleanup.
func (l *SubmissionLedger) Stop() {
	l.once.Do(func() { close(l.stop) })
}

// Issue returns a new token for a compose form.
func (l *SubmissionLedger) Issue() string {
	token := uuid.NewString()
	l.mu.Lock()
	l.entries[token] = &submission{issued: time.Now()}
	l.mu.Unlock()
	return token
}

// Claim reserves token for a submission. For ClaimDone the id of the post the
// token already produced is returned.
func (l *SubmissionLedger) Claim(token string) (ClaimResult, int64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	s, ok := l.entries[token]
	switch {
	case !ok || time.Since(s.issued) > l.ttl && s.postID == 0 && !s.inFlight:
		return ClaimUnknown, 0
	case s.inFlight:
		return ClaimInFlight, 0
	case s.postID != 0:
		return ClaimDone, s.postID
	}
	s.inFlight = true
	return ClaimOK, 0
}

// Complete records the post produced by a claimed token.
func (l *SubmissionLedger) Complete(token string, postID int64) {
	l.mu.Lock()
	if s, ok := l.entries[token]; ok {
		s.inFlight = false
		s.postID = postID
	}
	l.mu.Unlock()
}

// Release returns a claimed token to the issued state so the form can be
// submitted again after a failure.
func (l *SubmissionLedger) Release(token string) {
	l.mu.Lock()
	if s, ok := l.entries[token]; ok {
		s.inFlight = false
	}
	l.mu.Unlock()
}
