// Package verify validates client-supplied bot-challenge tokens against
// the Cloudflare Turnstile siteverify endpoint.
package verify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"doribell/pkg/logx"
)

// DefaultURL is the production siteverify endpoint.
const DefaultURL = "https://challenges.cloudflare.com/turnstile/v0/siteverify"

// ErrRejected means the verification service answered, and the answer
// was no. Transport failures are returned as ordinary errors and must
// not be conflated with rejection.
var ErrRejected = errors.New("bot protection token rejected")

type Config struct {
	// Secret is the server-side Turnstile secret. Empty disables
	// verification entirely: every token is accepted. This is the
	// documented bypass for deployments without bot protection, not an
	// oversight.
	Secret string

	// URL overrides the siteverify endpoint (tests).
	URL string

	// Timeout bounds a single verification call.
	Timeout time.Duration
}

type Turnstile struct {
	cfg  Config
	http *http.Client
	log  logx.Logger
}

func New(cfg Config, log logx.Logger) *Turnstile {
	if cfg.URL == "" {
		cfg.URL = DefaultURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 8 * time.Second
	}
	if log.IsZero() {
		log = logx.Nop()
	}
	if cfg.Secret == "" {
		log.Warn("turnstile secret not configured; challenge verification disabled")
	}
	return &Turnstile{cfg: cfg, http: &http.Client{Timeout: cfg.Timeout}, log: log}
}

// Enabled reports whether a secret is configured.
func (t *Turnstile) Enabled() bool { return t.cfg.Secret != "" }

// Verify checks the token. nil means verified. ErrRejected (possibly
// wrapped) means the service rejected the token; any other error is a
// transport or protocol failure and must surface as such.
func (t *Turnstile) Verify(ctx context.Context, token string) error {
	if !t.Enabled() {
		return nil
	}

	form := url.Values{}
	form.Set("secret", t.cfg.Secret)
	form.Set("response", token)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.cfg.URL, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("turnstile: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := t.http.Do(req)
	if err != nil {
		return fmt.Errorf("turnstile: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		return fmt.Errorf("turnstile: siteverify returned http %d", resp.StatusCode)
	}

	var out struct {
		Success    bool     `json:"success"`
		ErrorCodes []string `json:"error-codes"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return fmt.Errorf("turnstile: decode response: %w", err)
	}

	if !out.Success {
		t.log.Debug("token rejected", logx.Any("error_codes", out.ErrorCodes))
		if len(out.ErrorCodes) > 0 {
			return fmt.Errorf("%w (%s)", ErrRejected, strings.Join(out.ErrorCodes, ", "))
		}
		return ErrRejected
	}
	return nil
}
