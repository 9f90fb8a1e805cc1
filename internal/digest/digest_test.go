package digest

import (
	"context"
	"strings"
	"testing"

	"doribell/internal/transport"
	"doribell/pkg/logx"
)

func TestRecorderFlushResets(t *testing.T) {
	t.Parallel()
	r := NewRecorder()
	r.Record("guest", true)
	r.Record("guest", true)
	r.Record("delivery", true)
	r.Record("urgent", false)

	s := r.Flush()
	if s.Delivered["guest"] != 2 || s.Delivered["delivery"] != 1 {
		t.Fatalf("delivered = %v", s.Delivered)
	}
	if s.Suppressed != 1 {
		t.Fatalf("suppressed = %d, want 1", s.Suppressed)
	}

	if got := r.Flush(); !got.Empty() {
		t.Fatalf("second flush = %+v, want empty", got)
	}
}

func TestFormat(t *testing.T) {
	t.Parallel()
	r := NewRecorder()
	r.Record("guest", true)
	r.Record("urgent", false)

	got := Format(r.Flush())
	if !strings.Contains(got, "Doorbell summary") {
		t.Fatalf("Format = %q", got)
	}
	if !strings.Contains(got, "guest: 1") {
		t.Fatalf("Format = %q, want guest count", got)
	}
	if !strings.Contains(got, "Suppressed by quiet hours: 1") {
		t.Fatalf("Format = %q, want suppressed line", got)
	}
}

func TestNewRejectsInvalidSchedule(t *testing.T) {
	t.Parallel()
	var n noopNotifier
	if _, err := New("not-a-schedule", NewRecorder(), n, transport.ChatTarget{}, logx.Nop()); err == nil {
		t.Fatal("expected error for invalid cron spec")
	}
	if _, err := New("0 20 * * *", NewRecorder(), n, transport.ChatTarget{}, logx.Nop()); err != nil {
		t.Fatalf("New = %v, want nil for valid spec", err)
	}
}

type noopNotifier struct{}

func (noopNotifier) SendText(ctx context.Context, to transport.ChatTarget, text string, opt *transport.SendOptions) (transport.MessageRef, error) {
	return transport.MessageRef{}, nil
}
