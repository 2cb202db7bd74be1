package notify

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingMailer struct {
	mu    sync.Mutex
	sent  []Mail
	fails int
}

func (m *recordingMailer) Send(_ context.Context, mail Mail) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fails > 0 {
		m.fails--
		return errors.New("relay unavailable")
	}
	m.sent = append(m.sent, mail)
	return nil
}

func (m *recordingMailer) delivered() []Mail {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Mail(nil), m.sent...)
}

func TestDispatcher_DeliversQueuedMail(t *testing.T) {
	mailer := &recordingMailer{}
	d := NewDispatcher(mailer)

	d.Enqueue(Mail{To: []string{"a@example.com"}, Subject: "one"})
	d.Enqueue(Mail{To: []string{"b@example.com"}, Subject: "two"})
	d.Close()

	sent := mailer.delivered()
	require.Len(t, sent, 2)
	assert.Equal(t, "one", sent[0].Subject)
	assert.Equal(t, "two", sent[1].Subject)
}

// A transiently failing relay is retried; delivery still succeeds.
func TestDispatcher_RetriesTransientFailure(t *testing.T) {
	mailer := &recordingMailer{fails: 1}
	d := NewDispatcher(mailer)

	d.Enqueue(Mail{To: []string{"a@example.com"}, Subject: "retry me"})
	d.Close()

	sent := mailer.delivered()
	require.Len(t, sent, 1)
	assert.Equal(t, "retry me", sent[0].Subject)
}

// Delivery failures are swallowed; Close returns without surfacing them.
func TestDispatcher_SwallowsPermanentFailure(t *testing.T) {
	mailer := &recordingMailer{fails: 100}
	d := NewDispatcher(mailer)

	d.Enqueue(Mail{To: []string{"a@example.com"}, Subject: "doomed"})
	d.Close()

	assert.Empty(t, mailer.delivered())
}
