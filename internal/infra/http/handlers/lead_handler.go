package handlers

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/homewiz/homewiz-backend/internal/infra/http/middleware"
	"github.com/homewiz/homewiz-backend/internal/usecase"
)

type LeadHandler struct {
	Leads       *usecase.LeadUseCase
	Convert     *usecase.ConvertLeadUseCase
	Logger      *zap.Logger
	rateLimiter *RateLimiter
}

// NewLeadHandler limits lead creation to ratePerMinute requests per client IP.
func NewLeadHandler(leads *usecase.LeadUseCase, convert *usecase.ConvertLeadUseCase, ratePerMinute int, logger *zap.Logger) *LeadHandler {
	return &LeadHandler{
		Leads:       leads,
		Convert:     convert,
		Logger:      logger,
		rateLimiter: NewRateLimiter(ratePerMinute, time.Minute),
	}
}

// Stop ends the rate limiter's cleanup loop.
func (h *LeadHandler) Stop() {
	h.rateLimiter.Stop()
}

// Create answers 200 with "Lead already exists" when the email is known and
// 201 otherwise.
func (h *LeadHandler) Create(w http.ResponseWriter, r *http.Request) {
	clientIP := getClientIP(r)
	if !h.rateLimiter.Allow(clientIP) {
		middleware.RecordLeadCreated("rate_limited")
		writeMessage(w, http.StatusTooManyRequests, "Too many requests. Please try again later.")
		return
	}

	var input usecase.CreateLeadInput
	if !decodeJSON(w, r, &input) {
		return
	}

	out, err := h.Leads.Create(r.Context(), input)
	if err != nil {
		middleware.RecordLeadCreated("error")
		writeError(w, h.Logger, err)
		return
	}

	if out.Existing {
		middleware.RecordLeadCreated("existing")
		writeJSON(w, http.StatusOK, newEnvelope("Lead already exists", out.Lead).with("lead_id", out.Lead.LeadID))
		return
	}
	middleware.RecordLeadCreated("created")
	writeJSON(w, http.StatusCreated, newEnvelope("Lead created successfully", out.Lead).with("lead_id", out.Lead.LeadID))
}

func (h *LeadHandler) List(w http.ResponseWriter, r *http.Request) {
	leads, err := h.Leads.List(r.Context())
	if err != nil {
		writeError(w, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, leads)
}

func (h *LeadHandler) Get(w http.ResponseWriter, r *http.Request) {
	lead, err := h.Leads.Get(r.Context(), chi.URLParam(r, "leadId"))
	if err != nil {
		writeError(w, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, lead)
}

func (h *LeadHandler) RecordInterest(w http.ResponseWriter, r *http.Request) {
	var input usecase.RecordInterestInput
	if !decodeJSON(w, r, &input) {
		return
	}
	lead, err := h.Leads.RecordInterest(r.Context(), chi.URLParam(r, "leadId"), input)
	if err != nil {
		writeError(w, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, newEnvelope("Interest recorded", lead).with("lead_id", lead.LeadID))
}

func (h *LeadHandler) ScheduleShowing(w http.ResponseWriter, r *http.Request) {
	var input usecase.ScheduleShowingInput
	if !decodeJSON(w, r, &input) {
		return
	}
	lead, err := h.Leads.ScheduleShowing(r.Context(), chi.URLParam(r, "leadId"), input)
	if err != nil {
		writeError(w, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, newEnvelope("Showing scheduled", lead).with("lead_id", lead.LeadID))
}

func (h *LeadHandler) SelectRoom(w http.ResponseWriter, r *http.Request) {
	var input usecase.SelectRoomInput
	if !decodeJSON(w, r, &input) {
		return
	}
	lead, err := h.Leads.SelectRoom(r.Context(), chi.URLParam(r, "leadId"), input)
	if err != nil {
		writeError(w, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, newEnvelope("Room selected", lead).with("lead_id", lead.LeadID))
}

func (h *LeadHandler) MarkLost(w http.ResponseWriter, r *http.Request) {
	lead, err := h.Leads.MarkLost(r.Context(), chi.URLParam(r, "leadId"))
	if err != nil {
		writeError(w, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, newEnvelope("Lead marked as lost", lead).with("lead_id", lead.LeadID))
}

func (h *LeadHandler) ConvertLead(w http.ResponseWriter, r *http.Request) {
	var input usecase.ConvertLeadInput
	if !decodeJSON(w, r, &input) {
		return
	}
	input.LeadID = chi.URLParam(r, "leadId")

	out, err := h.Convert.Execute(r.Context(), input)
	if err != nil {
		middleware.RecordConversion(usecase.ErrorCode(err))
		writeError(w, h.Logger, err)
		return
	}
	middleware.RecordConversion("converted")
	middleware.RecordTenantCreated("conversion")
	writeJSON(w, http.StatusCreated, newEnvelope("Lead converted successfully", out).
		with("lead_id", out.Lead.LeadID).
		with("tenant_id", out.Tenant.TenantID))
}

// getClientIP prefers the first X-Forwarded-For hop, then X-Real-IP, then the
// connection address without its port.
func getClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		return strings.TrimSpace(strings.Split(xff, ",")[0])
	}

	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}

	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}

// RateLimiter is a fixed-window counter per key.
type RateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	limit    int
	window   time.Duration
	done     chan struct{}
	stopOnce sync.Once
}

type visitor struct {
	count     int
	lastReset time.Time
}

func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	rl := &RateLimiter{
		visitors: make(map[string]*visitor),
		limit:    limit,
		window:   window,
		done:     make(chan struct{}),
	}

	go rl.cleanup()
	return rl
}

// Allow always passes when the limit is not positive.
func (rl *RateLimiter) Allow(key string) bool {
	if rl.limit <= 0 {
		return true
	}

	rl.mu.Lock()
	defer rl.mu.Unlock()

	v, exists := rl.visitors[key]
	now := time.Now()

	if !exists {
		rl.visitors[key] = &visitor{count: 1, lastReset: now}
		return true
	}

	if now.Sub(v.lastReset) > rl.window {
		v.count = 1
		v.lastReset = now
		return true
	}

	v.count++
	return v.count <= rl.limit
}

func (rl *RateLimiter) Stop() {
	rl.stopOnce.Do(func() { close(rl.done) })
}

func (rl *RateLimiter) cleanup() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-rl.done:
			return
		case <-ticker.C:
			rl.mu.Lock()
			now := time.Now()
			for key, v := range rl.visitors {
				if now.Sub(v.lastReset) > rl.window*2 {
					delete(rl.visitors, key)
				}
			}
			rl.mu.Unlock()
		}
	}
}
