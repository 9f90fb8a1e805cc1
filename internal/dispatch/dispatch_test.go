package dispatch

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"doribell/internal/i18n"
	"doribell/internal/quiet"
	"doribell/internal/transport"
	"doribell/internal/verify"
	"doribell/pkg/logx"
)

type fakeVerifier struct {
	err   error
	calls int
}

func (f *fakeVerifier) Verify(ctx context.Context, token string) error {
	f.calls++
	return f.err
}

type fakeNotifier struct {
	mu    sync.Mutex
	err   error
	calls int
	last  string
	to    transport.ChatTarget
	opt   *transport.SendOptions
}

func (f *fakeNotifier) SendText(ctx context.Context, to transport.ChatTarget, text string, opt *transport.SendOptions) (transport.MessageRef, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.last = text
	f.to = to
	f.opt = opt
	if f.err != nil {
		return transport.MessageRef{}, f.err
	}
	return transport.MessageRef{ChatID: to.ChatID, MessageID: 42}, nil
}

type fakeRecorder struct {
	mu      sync.Mutex
	records []string
}

func (f *fakeRecorder) Record(buttonID string, delivered bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	suffix := "/suppressed"
	if delivered {
		suffix = "/delivered"
	}
	f.records = append(f.records, buttonID+suffix)
}

// dayHour is well outside the default 22→7 window (offset 0).
var dayHour = time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)

func newDispatcher(v Verifier, n transport.Notifier, rec Recorder, now time.Time, policy quiet.Policy) *Dispatcher {
	return New(
		Config{Quiet: policy, Target: transport.ChatTarget{ChatID: 100}},
		Deps{
			Catalog:  i18n.Default(),
			Verifier: v,
			Notifier: n,
			Recorder: rec,
			Log:      logx.Nop(),
			Now:      func() time.Time { return now },
		},
	)
}

func defaultPolicy() quiet.Policy {
	return quiet.Policy{StartHour: 22, EndHour: 7}
}

func TestRingDelivered(t *testing.T) {
	t.Parallel()
	n := &fakeNotifier{}
	rec := &fakeRecorder{}
	d := newDispatcher(&fakeVerifier{}, n, rec, dayHour, defaultPolicy())

	out, err := d.Ring(context.Background(), Request{Type: "guest", Token: "valid"})
	if err != nil {
		t.Fatalf("Ring = %v", err)
	}
	if !out.Delivered || out.Suppressed {
		t.Fatalf("Outcome = %+v, want delivered", out)
	}
	if out.RingID == "" {
		t.Fatal("expected a ring id")
	}
	if n.calls != 1 {
		t.Fatalf("delivery calls = %d, want 1", n.calls)
	}
	if !strings.Contains(n.last, "A guest is waiting for you") {
		t.Fatalf("message = %q, want guest alert text", n.last)
	}
	if !strings.Contains(n.last, "_Time: ") {
		t.Fatalf("message = %q, want timestamp line", n.last)
	}
	if n.to.ChatID != 100 {
		t.Fatalf("target = %+v", n.to)
	}
	if n.opt == nil || n.opt.ParseMode != "Markdown" {
		t.Fatalf("send options = %+v, want Markdown parse mode", n.opt)
	}
	if len(rec.records) != 1 || rec.records[0] != "guest/delivered" {
		t.Fatalf("records = %v", rec.records)
	}
}

func TestRingRejectedToken(t *testing.T) {
	t.Parallel()
	n := &fakeNotifier{}
	d := newDispatcher(&fakeVerifier{err: verify.ErrRejected}, n, nil, dayHour, defaultPolicy())

	_, err := d.Ring(context.Background(), Request{Type: "guest", Token: "invalid"})
	var f *Failure
	if !errors.As(err, &f) || f.Kind != FailForbidden {
		t.Fatalf("Ring = %v, want FailForbidden", err)
	}
	if n.calls != 0 {
		t.Fatalf("delivery calls = %d, want 0", n.calls)
	}
}

func TestRingVerifierTransportFailure(t *testing.T) {
	t.Parallel()
	n := &fakeNotifier{}
	d := newDispatcher(&fakeVerifier{err: errors.New("siteverify unreachable")}, n, nil, dayHour, defaultPolicy())

	_, err := d.Ring(context.Background(), Request{Type: "guest", Token: "tok"})
	var f *Failure
	if !errors.As(err, &f) || f.Kind != FailUpstream {
		t.Fatalf("Ring = %v, want FailUpstream", err)
	}
	if !strings.Contains(f.Message, "siteverify unreachable") {
		t.Fatalf("message = %q, want underlying description", f.Message)
	}
	if n.calls != 0 {
		t.Fatalf("delivery calls = %d, want 0", n.calls)
	}
}

func TestRingSuppressedDuringQuietHours(t *testing.T) {
	t.Parallel()
	n := &fakeNotifier{}
	rec := &fakeRecorder{}
	// 23:00 UTC, offset 0, window 22→7: quiet.
	night := time.Date(2026, 8, 31, 23, 0, 0, 0, time.UTC)
	d := newDispatcher(&fakeVerifier{}, n, rec, night, defaultPolicy())

	out, err := d.Ring(context.Background(), Request{Type: "urgent", Token: "valid"})
	if err != nil {
		t.Fatalf("Ring = %v", err)
	}
	if !out.Suppressed || out.Delivered {
		t.Fatalf("Outcome = %+v, want suppressed", out)
	}
	if n.calls != 0 {
		t.Fatalf("delivery calls = %d, want 0 during quiet hours", n.calls)
	}
	if len(rec.records) != 1 || rec.records[0] != "urgent/suppressed" {
		t.Fatalf("records = %v", rec.records)
	}
}

func TestRingUnknownType(t *testing.T) {
	t.Parallel()
	n := &fakeNotifier{}
	d := newDispatcher(&fakeVerifier{}, n, nil, dayHour, defaultPolicy())

	_, err := d.Ring(context.Background(), Request{Type: "basement", Token: "valid"})
	var f *Failure
	if !errors.As(err, &f) || f.Kind != FailBadRequest {
		t.Fatalf("Ring = %v, want FailBadRequest", err)
	}
	if n.calls != 0 {
		t.Fatalf("delivery calls = %d, want 0 for unknown type", n.calls)
	}
}

func TestRingMissingType(t *testing.T) {
	t.Parallel()
	v := &fakeVerifier{}
	d := newDispatcher(v, &fakeNotifier{}, nil, dayHour, defaultPolicy())

	_, err := d.Ring(context.Background(), Request{Token: "valid"})
	var f *Failure
	if !errors.As(err, &f) || f.Kind != FailBadRequest {
		t.Fatalf("Ring = %v, want FailBadRequest", err)
	}
	if v.calls != 0 {
		t.Fatalf("verifier called %d times for empty type", v.calls)
	}
}

func TestRingDeliveryFailurePropagatesDescription(t *testing.T) {
	t.Parallel()
	n := &fakeNotifier{err: errors.New("telegram: Bad Request: chat not found")}
	d := newDispatcher(&fakeVerifier{}, n, nil, dayHour, defaultPolicy())

	_, err := d.Ring(context.Background(), Request{Type: "delivery", Token: "valid"})
	var f *Failure
	if !errors.As(err, &f) || f.Kind != FailUpstream {
		t.Fatalf("Ring = %v, want FailUpstream", err)
	}
	if !strings.Contains(f.Message, "chat not found") {
		t.Fatalf("message = %q, want upstream description", f.Message)
	}
}

func TestRingLocalizedMessage(t *testing.T) {
	t.Parallel()
	n := &fakeNotifier{}
	d := newDispatcher(&fakeVerifier{}, n, nil, dayHour, defaultPolicy())

	if _, err := d.Ring(context.Background(), Request{Type: "delivery", Token: "valid", Locale: "fr"}); err != nil {
		t.Fatalf("Ring = %v", err)
	}
	if !strings.Contains(n.last, "Alerte Livraison") {
		t.Fatalf("message = %q, want french text", n.last)
	}
}
