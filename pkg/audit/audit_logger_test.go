package audit_test

import (
	"context"
	"sync"
	"testing"

	"intervyo-backend/pkg/audit"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestLogWritesStructuredFields(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := audit.New(zap.New(core), "intervyo-test", "test")

	l.Log(context.Background(), audit.Event{
		Event:       audit.EventQuestionReported,
		ActorID:     "user-1",
		SubjectType: "question",
		SubjectID:   "q-1",
		Details:     map[string]interface{}{"report_count": 3},
	})

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "question_reported", entry.Message)
	assert.Equal(t, zapcore.WarnLevel, entry.Level)

	fields := entry.ContextMap()
	assert.Equal(t, "intervyo-test", fields["service"])
	assert.Equal(t, "q-1", fields["subject_id"])
	assert.Equal(t, audit.HashValue("user-1"), fields["actor_id"])
	assert.NotEqual(t, "user-1", fields["actor_id"])
	assert.Equal(t, `{"report_count":3}`, fields["details"])
}

func TestLogPersistsAsynchronously(t *testing.T) {
	core, _ := observer.New(zapcore.DebugLevel)
	l := audit.New(zap.New(core), "intervyo-test", "test")

	var mu sync.Mutex
	var persisted []audit.Event
	l.SetPersistFunc(func(ctx context.Context, e audit.Event) error {
		mu.Lock()
		defer mu.Unlock()
		persisted = append(persisted, e)
		return nil
	})

	l.Log(context.Background(), audit.Event{Event: audit.EventBuddyAccepted, SubjectID: "m-1"})
	_ = l.Flush()

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, persisted, 1)
	assert.Equal(t, audit.EventBuddyAccepted, persisted[0].Event)
	assert.Equal(t, "info", persisted[0].Level)
	assert.False(t, persisted[0].Timestamp.IsZero())
}

func TestHashValueIsStable(t *testing.T) {
	assert.Equal(t, audit.HashValue("abc"), audit.HashValue("abc"))
	assert.Len(t, audit.HashValue("abc"), 16)
}
