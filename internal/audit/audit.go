package audit

import (
	"context"
	"net/http"
	"strings"

	"github.com/rs/zerolog"
)

type CtxKey string

const ctxSubjectKey CtxKey = "audit_subject"

// Event names.
const (
	GoalCreated   = "goal_created"
	GoalDeleted   = "goal_deleted"
	PercentageSet = "percentage_set"
)

// Envelope is what we attach to every event.
type Envelope struct {
	Subject      string
	SessionID    string
	Platform     string
	AppVersion   string
	DeviceLocale string
	RemoteAddr   string
}

// FromRequest extracts event envelope fields from request headers.
func FromRequest(r *http.Request) Envelope {
	platform := strings.ToLower(strings.TrimSpace(r.Header.Get("X-Platform")))
	switch platform {
	case "web", "kiosk", "cli":
	default:
		platform = "unknown"
	}

	locale := strings.TrimSpace(r.Header.Get("Accept-Language"))
	if locale == "" {
		locale = strings.TrimSpace(r.Header.Get("X-Device-Locale"))
	}

	subject, _ := SubjectFromContext(r.Context())

	return Envelope{
		Subject:      subject,
		SessionID:    strings.TrimSpace(r.Header.Get("X-Session-Id")),
		Platform:     platform,
		AppVersion:   strings.TrimSpace(r.Header.Get("X-App-Version")),
		DeviceLocale: locale,
		RemoteAddr:   r.RemoteAddr,
	}
}

// WithSubject records the authenticated principal for later events.
func WithSubject(ctx context.Context, subject string) context.Context {
	return context.WithValue(ctx, ctxSubjectKey, subject)
}

func SubjectFromContext(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(ctxSubjectKey).(string)
	return v, ok && v != ""
}

// SourceEventKeyFromRequest returns the client-provided idempotency key, if any.
func SourceEventKeyFromRequest(r *http.Request) string {
	if k := strings.TrimSpace(r.Header.Get("Idempotency-Key")); k != "" {
		return k
	}
	return strings.TrimSpace(r.Header.Get("X-Source-Event-Key"))
}

// Log writes one audit event through the request logger in ctx.
// Callers pass sanitized props only; raw goal names never go here.
func Log(ctx context.Context, env Envelope, eventName string, props map[string]any, sourceEventKey string) {
	if eventName == "" {
		return
	}

	ev := zerolog.Ctx(ctx).Info().
		Str("audit_event", eventName).
		Str("platform", env.Platform)

	if env.Subject != "" {
		ev = ev.Str("subject", env.Subject)
	}
	if env.SessionID != "" {
		ev = ev.Str("session_id", env.SessionID)
	}
	if env.AppVersion != "" {
		ev = ev.Str("app_version", env.AppVersion)
	}
	if env.DeviceLocale != "" {
		ev = ev.Str("device_locale", env.DeviceLocale)
	}
	if env.RemoteAddr != "" {
		ev = ev.Str("remote_addr", env.RemoteAddr)
	}
	if sourceEventKey != "" {
		ev = ev.Str("source_event_key", sourceEventKey)
	}
	if len(props) > 0 {
		ev = ev.Fields(props)
	}

	ev.Msg("audit")
}
