// Package app wires the doorbell relay together: immutable config in,
// running HTTP server plus optional digest schedule out.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/coreos/go-systemd/v22/daemon"
	"github.com/gin-gonic/gin"

	"doribell/internal/config"
	"doribell/internal/digest"
	"doribell/internal/dispatch"
	"doribell/internal/i18n"
	"doribell/internal/observability/metrics"
	"doribell/internal/transport"
	"doribell/internal/transport/telegram"
	"doribell/internal/verify"
	"doribell/internal/web"
	"doribell/pkg/logx"
)

type App struct {
	cfg *config.Config
	log logx.Logger

	logCloser io.Closer
	router    *gin.Engine
	dig       *digest.Service

	ln  net.Listener
	srv *http.Server
}

func New(cfg *config.Config) (*App, error) {
	log, logCloser, err := logx.New(cfg.Logging)
	if err != nil {
		return nil, err
	}

	metrics.Register()

	cat, err := i18n.Load(cfg.CatalogFile)
	if err != nil {
		return nil, err
	}

	if cfg.Telegram.Token == "" {
		return nil, errors.New("app: TG_BOT_TOKEN is required")
	}
	adapter, err := telegram.New(telegram.Config{Token: cfg.Telegram.Token}, log.With(logx.String("comp", "telegram")))
	if err != nil {
		return nil, err
	}

	verifier := verify.New(verify.Config{Secret: cfg.Turnstile.Secret}, log.With(logx.String("comp", "verify")))

	target := transport.ChatTarget{ChatID: cfg.Telegram.ChatID}
	rec := digest.NewRecorder()

	var dig *digest.Service
	if cfg.DigestSchedule != "" {
		dig, err = digest.New(cfg.DigestSchedule, rec, adapter, target, log.With(logx.String("comp", "digest")))
		if err != nil {
			return nil, err
		}
	}

	disp := dispatch.New(
		dispatch.Config{Quiet: cfg.Quiet, Target: target},
		dispatch.Deps{
			Catalog:  cat,
			Verifier: verifier,
			Notifier: adapter,
			Recorder: rec,
			Log:      log.With(logx.String("comp", "dispatch")),
		},
	)

	handler, err := web.NewHandler(cfg, cat, disp, log.With(logx.String("comp", "web")))
	if err != nil {
		return nil, err
	}

	return &App{
		cfg:       cfg,
		log:       log,
		logCloser: logCloser,
		router:    web.NewRouter(handler, cfg.RatePerMinute),
		dig:       dig,
	}, nil
}

func (a *App) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", a.cfg.ListenAddr)
	if err != nil {
		return fmt.Errorf("app: listen %s: %w", a.cfg.ListenAddr, err)
	}
	a.ln = ln
	a.srv = &http.Server{
		Handler:     a.router,
		ReadTimeout: 10 * time.Second,
		// /notify waits on two outbound calls; keep headroom above
		// their client timeouts.
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		if err := a.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.log.Error("http server stopped", logx.Err(err))
		}
	}()

	if a.dig != nil {
		a.dig.Start()
	}

	// Best-effort readiness for systemd deployments; a no-op elsewhere.
	_, _ = daemon.SdNotify(false, daemon.SdNotifyReady)

	a.log.Info("doorbell listening",
		logx.String("addr", ln.Addr().String()),
		logx.Bool("verification", a.cfg.Turnstile.Secret != ""),
		logx.Int("quiet_start", a.cfg.Quiet.StartHour),
		logx.Int("quiet_end", a.cfg.Quiet.EndHour),
	)
	return nil
}

// Addr returns the bound listen address (tests use ":0").
func (a *App) Addr() string {
	if a.ln == nil {
		return ""
	}
	return a.ln.Addr().String()
}

func (a *App) Stop(ctx context.Context) error {
	_, _ = daemon.SdNotify(false, daemon.SdNotifyStopping)
	a.log.Info("stopping")

	var firstErr error
	if a.srv != nil {
		if err := a.srv.Shutdown(ctx); err != nil {
			a.log.Warn("http shutdown", logx.Err(err))
			firstErr = err
		}
	}
	if a.dig != nil {
		a.dig.Stop(ctx)
	}
	if a.logCloser != nil {
		_ = a.logCloser.Close()
	}
	a.log.Info("stopped")
	return firstErr
}
