package audit

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"sync"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// EventType represents the type of audit event
type EventType string

const (
	EventBuddyRequested     EventType = "buddy_requested"
	EventBuddyAccepted      EventType = "buddy_accepted"
	EventMockScheduled      EventType = "mock_interview_scheduled"
	EventGroupCreated       EventType = "study_group_created"
	EventGroupJoined        EventType = "study_group_joined"
	EventQuestionSubmitted  EventType = "question_submitted"
	EventQuestionReported   EventType = "question_reported"
	EventQuestionVerified   EventType = "question_verified"
	EventXPAwardFailed      EventType = "xp_award_failed"
	EventRateLimitTriggered EventType = "rate_limit_triggered"
	EventUnauthorizedAccess EventType = "unauthorized_access"
)

// Event is a single audit record
type Event struct {
	Timestamp   time.Time              `json:"timestamp"`
	Service     string                 `json:"service"`
	Environment string                 `json:"env"`
	Level       string                 `json:"level"`
	Event       EventType              `json:"event"`
	ActorID     string                 `json:"actor_id,omitempty"`
	SubjectType string                 `json:"subject_type,omitempty"` // "buddy_match", "question", "ip", ...
	SubjectID   string                 `json:"subject_id,omitempty"`
	IP          string                 `json:"ip,omitempty"`
	RequestID   string                 `json:"request_id,omitempty"`
	Details     map[string]interface{} `json:"details,omitempty"`
}

// PersistFunc stores an event somewhere durable
type PersistFunc func(ctx context.Context, event Event) error

// Logger writes audit events through zap and optionally persists them
type Logger struct {
	zapLogger   *zap.Logger
	serviceName string
	environment string
	persistFunc PersistFunc
	wg          sync.WaitGroup
}

var (
	defaultLogger *Logger
	defaultMu     sync.Mutex
)

// Init builds the process-wide audit logger with a production zap config
func Init(serviceName, environment string) *Logger {
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.EncoderConfig.LevelKey = "level"
	config.EncoderConfig.MessageKey = "message"
	config.OutputPaths = []string{"stdout"}
	config.ErrorOutputPaths = []string{"stderr"}

	zl, err := config.Build(
		zap.AddCaller(),
		zap.AddStacktrace(zapcore.ErrorLevel),
	)
	if err != nil {
		zl, _ = zap.NewProduction()
	}

	l := New(zl, serviceName, environment)

	defaultMu.Lock()
	defaultLogger = l
	defaultMu.Unlock()
	return l
}

// New wraps an existing zap logger
func New(zl *zap.Logger, serviceName, environment string) *Logger {
	return &Logger{
		zapLogger:   zl,
		serviceName: serviceName,
		environment: environment,
	}
}

// Default returns the process-wide audit logger, creating one if Init was never called
func Default() *Logger {
	defaultMu.Lock()
	l := defaultLogger
	defaultMu.Unlock()
	if l == nil {
		return Init("intervyo-backend", "development")
	}
	return l
}

// SetPersistFunc sets the function used to persist events
func (l *Logger) SetPersistFunc(f PersistFunc) {
	l.persistFunc = f
}

// Log writes an audit event
func (l *Logger) Log(ctx context.Context, event Event) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}
	event.Service = l.serviceName
	event.Environment = l.environment

	level := levelFor(event.Event)
	event.Level = level.String()

	fields := []zap.Field{
		zap.String("service", event.Service),
		zap.String("env", event.Environment),
		zap.String("event", string(event.Event)),
	}
	if event.ActorID != "" {
		fields = append(fields, zap.String("actor_id", HashValue(event.ActorID)))
	}
	if event.SubjectType != "" {
		fields = append(fields, zap.String("subject_type", event.SubjectType))
	}
	if event.SubjectID != "" {
		fields = append(fields, zap.String("subject_id", event.SubjectID))
	}
	if event.IP != "" {
		fields = append(fields, zap.String("ip", event.IP))
	}
	if event.RequestID != "" {
		fields = append(fields, zap.String("request_id", event.RequestID))
	}
	if len(event.Details) > 0 {
		detailsJSON, _ := json.Marshal(event.Details)
		fields = append(fields, zap.String("details", string(detailsJSON)))
	}

	l.zapLogger.Log(level, string(event.Event), fields...)

	if l.persistFunc != nil {
		l.wg.Add(1)
		go func(e Event) {
			defer l.wg.Done()
			// The request context may already be cancelled
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := l.persistFunc(ctx, e); err != nil {
				l.zapLogger.Error("Failed to persist audit event", zap.Error(err))
			}
		}(event)
	}
}

// Flush waits for pending persistence and flushes zap buffers
func (l *Logger) Flush() error {
	l.wg.Wait()
	return l.zapLogger.Sync()
}

func levelFor(t EventType) zapcore.Level {
	switch t {
	case EventXPAwardFailed, EventRateLimitTriggered, EventQuestionReported:
		return zapcore.WarnLevel
	case EventUnauthorizedAccess:
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// HashValue creates a short SHA256 digest so user ids never reach log sinks in clear
func HashValue(value string) string {
	hash := sha256.Sum256([]byte(value))
	return hex.EncodeToString(hash[:8])
}
