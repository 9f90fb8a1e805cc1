// Package dispatch orchestrates one doorbell ring: challenge
// verification, quiet-hours gating, message templating, and chat
// delivery. Every ring ends in exactly one terminal outcome and
// nothing is retried; the front-end owns retry policy.
package dispatch

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"doribell/internal/i18n"
	"doribell/internal/observability/metrics"
	"doribell/internal/quiet"
	"doribell/internal/transport"
	"doribell/internal/verify"
	"doribell/pkg/logx"
)

// Request is one parsed notify call. Type must match a configured
// button id; Token is the opaque challenge token; Locale is optional.
type Request struct {
	Type   string
	Token  string
	Locale string
}

// FailKind classifies terminal failures for the HTTP layer.
type FailKind int

const (
	FailBadRequest FailKind = iota + 1 // malformed or unknown input
	FailForbidden                      // challenge rejected
	FailUpstream                       // verification or delivery transport failure
)

// Failure is a terminal dispatch error. Message is safe to surface
// verbatim to the caller.
type Failure struct {
	Kind    FailKind
	Message string
}

func (f *Failure) Error() string { return f.Message }

func failf(kind FailKind, format string, args ...any) *Failure {
	return &Failure{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Outcome is the terminal result of a successful (non-error) dispatch.
type Outcome struct {
	RingID     string
	Delivered  bool
	Suppressed bool
}

// Verifier is satisfied by verify.Turnstile. Rejection must be
// signalled via verify.ErrRejected; any other error is transport.
type Verifier interface {
	Verify(ctx context.Context, token string) error
}

// Recorder observes terminal ring outcomes (daily digest counters).
type Recorder interface {
	Record(buttonID string, delivered bool)
}

type Config struct {
	Quiet  quiet.Policy
	Target transport.ChatTarget
}

type Deps struct {
	Catalog  *i18n.Catalog
	Verifier Verifier
	Notifier transport.Notifier
	Recorder Recorder // optional
	Log      logx.Logger
	Now      func() time.Time // optional, defaults to time.Now
}

type Dispatcher struct {
	cfg Config
	d   Deps
}

func New(cfg Config, deps Deps) *Dispatcher {
	if deps.Log.IsZero() {
		deps.Log = logx.Nop()
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	return &Dispatcher{cfg: cfg, d: deps}
}

// Ring runs the full pipeline for one request. A nil error means the
// ring was delivered or suppressed (see Outcome); a *Failure error
// carries the terminal failure kind and a caller-facing description.
func (dp *Dispatcher) Ring(ctx context.Context, req Request) (Outcome, error) {
	start := time.Now()
	defer func() { metrics.DispatchDuration.Observe(time.Since(start).Seconds()) }()
	metrics.RingsTotal.Inc()

	out := Outcome{RingID: uuid.NewString()}
	log := dp.d.Log.With(
		logx.String("ring_id", out.RingID),
		logx.String("type", req.Type),
		logx.String("locale", req.Locale),
	)

	if req.Type == "" {
		metrics.RingsInvalidTotal.Inc()
		return out, failf(FailBadRequest, "missing notification type")
	}

	// 1. Challenge verification.
	if err := dp.d.Verifier.Verify(ctx, req.Token); err != nil {
		if errors.Is(err, verify.ErrRejected) {
			metrics.RingsRejectedTotal.Inc()
			log.Info("ring rejected by challenge verification")
			return out, failf(FailForbidden, "Invalid bot protection token")
		}
		metrics.VerifyFailuresTotal.Inc()
		log.Error("challenge verification failed", logx.Err(err))
		return out, failf(FailUpstream, "%s", err.Error())
	}

	now := dp.d.Now()

	// 2. Quiet hours. Suppression is a success outcome, not an error,
	// and no delivery is attempted.
	if quiet.IsQuiet(now, dp.cfg.Quiet) {
		metrics.RingsSuppressedTotal.Inc()
		if dp.d.Recorder != nil && dp.d.Catalog.HasButton(req.Type) {
			dp.d.Recorder.Record(req.Type, false)
		}
		log.Info("ring suppressed by quiet hours")
		out.Suppressed = true
		return out, nil
	}

	// 3. Resolve the button and template the message. Unknown types are
	// request errors; there is no default-message fallback.
	text, err := dp.d.Catalog.Render(req.Type, req.Locale, quiet.LocalTime(now, dp.cfg.Quiet))
	if err != nil {
		if errors.Is(err, i18n.ErrUnknownButton) {
			metrics.RingsInvalidTotal.Inc()
			log.Info("ring with unknown type")
			return out, failf(FailBadRequest, "Invalid notification type")
		}
		return out, failf(FailBadRequest, "%s", err.Error())
	}

	// 4. Deliver.
	ref, err := dp.d.Notifier.SendText(ctx, dp.cfg.Target, text, &transport.SendOptions{ParseMode: "Markdown"})
	if err != nil {
		metrics.DeliveryFailuresTotal.Inc()
		log.Error("chat delivery failed", logx.Err(err))
		return out, failf(FailUpstream, "%s", err.Error())
	}

	metrics.RingsDeliveredTotal.Inc()
	if dp.d.Recorder != nil {
		dp.d.Recorder.Record(req.Type, true)
	}
	log.Info("ring delivered", logx.Int("message_id", ref.MessageID))
	out.Delivered = true
	return out, nil
}
