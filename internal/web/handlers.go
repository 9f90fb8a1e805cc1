// Package web is the HTTP entry point: the /notify dispatch endpoint,
// the localized static front-end, and the ambient /metrics and /healthz
// endpoints.
package web

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	"doribell/internal/config"
	"doribell/internal/dispatch"
	"doribell/internal/i18n"
	"doribell/pkg/logx"
)

// suppressedMessage is surfaced with HTTP 200: policy-driven
// non-delivery is a success, not an error.
const suppressedMessage = "Quiet hours active. Notification suppressed."

type notifyRequest struct {
	// Type must match a configured button id.
	Type string `json:"type" binding:"required"`
	// Token may be empty when challenge verification is disabled; the
	// verifier owns that decision.
	Token  string `json:"token"`
	Locale string `json:"locale"`
}

type Handler struct {
	disp *dispatch.Dispatcher
	log  logx.Logger
	page []byte
}

func NewHandler(cfg *config.Config, cat *i18n.Catalog, disp *dispatch.Dispatcher, log logx.Logger) (*Handler, error) {
	page, err := renderFrontend(cfg, cat)
	if err != nil {
		return nil, err
	}
	if log.IsZero() {
		log = logx.Nop()
	}
	return &Handler{disp: disp, log: log, page: page}, nil
}

func (h *Handler) Notify(c *gin.Context) {
	var req notifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	out, err := h.disp.Ring(c.Request.Context(), dispatch.Request{
		Type:   req.Type,
		Token:  req.Token,
		Locale: req.Locale,
	})
	if err != nil {
		var f *dispatch.Failure
		if errors.As(err, &f) {
			c.JSON(statusFor(f.Kind), gin.H{"error": f.Message})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if out.Suppressed {
		c.JSON(http.StatusOK, gin.H{"message": suppressedMessage})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func statusFor(kind dispatch.FailKind) int {
	switch kind {
	case dispatch.FailBadRequest:
		return http.StatusBadRequest
	case dispatch.FailForbidden:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Frontend serves the pre-rendered doorbell page for any non-API path.
func (h *Handler) Frontend(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", h.page)
}

// NewRouter wires the routes. ratePerMinute bounds /notify; the
// doorbell page is public, so a token bucket keeps a stuck finger (or
// a script) from flooding the chat.
func NewRouter(h *Handler, ratePerMinute int) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())

	limiter := rate.NewLimiter(rate.Every(time.Minute/time.Duration(ratePerMinute)), ratePerMinute)
	r.POST("/notify", rateLimit(limiter), h.Notify)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/healthz", h.Health)
	r.NoRoute(h.Frontend)
	return r
}

func rateLimit(l *rate.Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !l.Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "too many requests"})
			return
		}
		c.Next()
	}
}
