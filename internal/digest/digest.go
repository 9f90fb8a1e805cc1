// Package digest keeps in-memory ring counters and optionally sends a
// cron-scheduled summary message to the chat. Counters live in process
// memory only; nothing is persisted.
package digest

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"doribell/internal/transport"
	"doribell/pkg/logx"
)

// Recorder aggregates terminal ring outcomes per button id. It is the
// only shared mutable state in the process and is guarded by its own
// mutex.
type Recorder struct {
	mu         sync.Mutex
	delivered  map[string]int
	suppressed int
	since      time.Time
}

func NewRecorder() *Recorder {
	return &Recorder{delivered: map[string]int{}, since: time.Now()}
}

func (r *Recorder) Record(buttonID string, delivered bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if delivered {
		r.delivered[buttonID]++
		return
	}
	r.suppressed++
}

// Summary is one digest window's totals.
type Summary struct {
	Since      time.Time
	Delivered  map[string]int
	Suppressed int
}

func (s Summary) Empty() bool {
	return len(s.Delivered) == 0 && s.Suppressed == 0
}

// Flush returns the current totals and resets the counters.
func (r *Recorder) Flush() Summary {
	r.mu.Lock()
	defer r.mu.Unlock()
	s := Summary{Since: r.since, Delivered: r.delivered, Suppressed: r.suppressed}
	r.delivered = map[string]int{}
	r.suppressed = 0
	r.since = time.Now()
	return s
}

// Format renders the summary as a Telegram Markdown message.
func Format(s Summary) string {
	var b strings.Builder
	b.WriteString("🔔 *Doorbell summary*\n")

	ids := make([]string, 0, len(s.Delivered))
	for id := range s.Delivered {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		fmt.Fprintf(&b, "%s: %d\n", id, s.Delivered[id])
	}
	if s.Suppressed > 0 {
		fmt.Fprintf(&b, "Suppressed by quiet hours: %d\n", s.Suppressed)
	}
	fmt.Fprintf(&b, "_Since: %s_", s.Since.UTC().Format("Mon, 02 Jan 2006 15:04 MST"))
	return b.String()
}

// Service sends the digest on a cron schedule.
type Service struct {
	rec      *Recorder
	notifier transport.Notifier
	target   transport.ChatTarget
	log      logx.Logger

	cron *cron.Cron
	id   cron.EntryID
}

// New validates the schedule and builds the service. The schedule uses
// the standard five-field cron format (e.g. "0 20 * * *").
func New(schedule string, rec *Recorder, notifier transport.Notifier, target transport.ChatTarget, log logx.Logger) (*Service, error) {
	if _, err := cron.ParseStandard(schedule); err != nil {
		return nil, fmt.Errorf("digest: invalid schedule %q: %w", schedule, err)
	}
	if log.IsZero() {
		log = logx.Nop()
	}
	s := &Service{rec: rec, notifier: notifier, target: target, log: log, cron: cron.New()}
	id, err := s.cron.AddFunc(schedule, s.send)
	if err != nil {
		return nil, fmt.Errorf("digest: %w", err)
	}
	s.id = id
	return s, nil
}

func (s *Service) Start() {
	s.cron.Start()
	s.log.Info("digest scheduled")
}

// Stop halts the schedule and waits for an in-flight send, bounded by ctx.
func (s *Service) Stop(ctx context.Context) {
	done := s.cron.Stop().Done()
	select {
	case <-done:
	case <-ctx.Done():
		s.log.Warn("digest stop cancelled", logx.Err(ctx.Err()))
	}
}

func (s *Service) send() {
	sum := s.rec.Flush()
	if sum.Empty() {
		s.log.Debug("digest window empty; nothing to send")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if _, err := s.notifier.SendText(ctx, s.target, Format(sum), &transport.SendOptions{ParseMode: "Markdown"}); err != nil {
		s.log.Error("digest delivery failed", logx.Err(err))
		return
	}
	s.log.Info("digest delivered", logx.Int("suppressed", sum.Suppressed))
}
