// Package server exposes the payoff engine over a small HTTP JSON API.
package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/iwvelando/debt-payoff/internal/cache"
	"github.com/iwvelando/debt-payoff/internal/payoff"
	"github.com/iwvelando/debt-payoff/internal/store"
	"github.com/iwvelando/debt-payoff/pkg/constants"
	"github.com/iwvelando/debt-payoff/pkg/datetime"
	"go.uber.org/zap"
)

type handler struct {
	logger       *zap.Logger
	store        *store.Store    // optional; nil disables persistence endpoints
	planCache    cache.PlanCache // optional
	maxBodyBytes int64
	version      string
	now          func() time.Time
}

// NewHandler constructs the HTTP handler serving the payoff API. store and
// planCache may be nil; the corresponding features are then disabled.
func NewHandler(logger *zap.Logger, st *store.Store, planCache cache.PlanCache, maxBodyBytes int64, version string) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if maxBodyBytes <= 0 {
		maxBodyBytes = constants.DefaultMaxBodyBytes
	}
	trimmedVersion := strings.TrimSpace(version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	h := &handler{
		logger:       logger,
		store:        st,
		planCache:    planCache,
		maxBodyBytes: maxBodyBytes,
		version:      trimmedVersion,
		now:          time.Now,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/plan", h.handlePlan)
	mux.HandleFunc("/api/compare", h.handleCompare)
	mux.HandleFunc("/api/payments", h.handlePayment)
	mux.HandleFunc("/api/debts", h.handleDebts)
	mux.HandleFunc("/api/version", h.handleVersion)
	return mux
}

type planRequest struct {
	Debts         []payoff.DebtSnapshot `json:"debts"`
	Strategy      payoff.Strategy       `json:"strategy"`
	MonthlyAmount float64               `json:"monthlyAmount"`
	StartDate     string                `json:"startDate,omitempty"`
}

type paymentRequest struct {
	DebtID int64   `json:"debtId"`
	Amount float64 `json:"amount"`
	Date   string  `json:"date"`
	PlanID *int64  `json:"planId,omitempty"`
}

type paymentResponse struct {
	DebtID         int64   `json:"debtId"`
	UpdatedBalance float64 `json:"updatedBalance"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (h *handler) handlePlan(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		h.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	req, ok := h.decodePlanRequest(w, r)
	if !ok {
		return
	}
	if req.Strategy == "" {
		req.Strategy = payoff.StrategyAvalanche
	}
	if !req.Strategy.Valid() {
		h.writeError(w, http.StatusBadRequest, fmt.Sprintf("unknown strategy %q", req.Strategy))
		return
	}

	debts, startDate, ok := h.resolveInputs(w, r, req)
	if !ok {
		return
	}

	key := planCacheKey("plan", debts, req.Strategy, req.MonthlyAmount, startDate)
	if h.serveCached(w, key) {
		return
	}

	plan, err := payoff.CalculatePayoffPlan(h.logger, debts, req.Strategy, req.MonthlyAmount, startDate)
	if err != nil {
		h.writeEngineError(w, err)
		return
	}
	h.writeCacheable(w, key, plan)
}

func (h *handler) handleCompare(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		h.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	req, ok := h.decodePlanRequest(w, r)
	if !ok {
		return
	}

	debts, startDate, ok := h.resolveInputs(w, r, req)
	if !ok {
		return
	}

	key := planCacheKey("compare", debts, "", req.MonthlyAmount, startDate)
	if h.serveCached(w, key) {
		return
	}

	comparison, err := payoff.CompareStrategies(h.logger, debts, req.MonthlyAmount, startDate)
	if err != nil {
		h.writeEngineError(w, err)
		return
	}
	h.writeCacheable(w, key, comparison)
}

func (h *handler) handlePayment(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		h.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	if h.store == nil {
		h.writeError(w, http.StatusServiceUnavailable, "no debt store configured")
		return
	}

	var req paymentRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, h.maxBodyBytes)).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return
	}

	if req.Date == "" {
		h.writeError(w, http.StatusBadRequest, "payment date is required")
		return
	}
	date, err := datetime.ParseDate(req.Date)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid payment date %q", req.Date))
		return
	}

	updated, err := h.store.RecordPayment(r.Context(), req.DebtID, req.Amount, date, h.now(), req.PlanID)
	if err != nil {
		h.writeEngineError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, paymentResponse{DebtID: req.DebtID, UpdatedBalance: updated})
}

func (h *handler) handleDebts(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		h.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	if h.store == nil {
		h.writeError(w, http.StatusServiceUnavailable, "no debt store configured")
		return
	}

	debts, err := h.store.ListDebts(r.Context())
	if err != nil {
		h.logger.Error("failed to list debts",
			zap.String("op", "server.handleDebts"),
			zap.Error(err),
		)
		h.writeError(w, http.StatusInternalServerError, "failed to list debts")
		return
	}
	if debts == nil {
		debts = []payoff.DebtSnapshot{}
	}
	h.writeJSON(w, http.StatusOK, debts)
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		h.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]string{"version": h.version})
}

// decodePlanRequest reads and decodes the body shared by the plan and
// compare endpoints.
func (h *handler) decodePlanRequest(w http.ResponseWriter, r *http.Request) (planRequest, bool) {
	var req planRequest
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, h.maxBodyBytes))
	if err != nil {
		h.writeError(w, http.StatusBadRequest, fmt.Sprintf("failed to read request body: %v", err))
		return req, false
	}
	if err := json.Unmarshal(body, &req); err != nil {
		h.writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return req, false
	}
	return req, true
}

// planCacheKey derives the cache key from the resolved simulation inputs
// rather than the raw request body. When the debt list comes from the store
// or the start date from the clock, the body alone does not determine the
// plan; a recorded payment changes the resolved debts and therefore the
// key, so no stale entry is ever served.
func planCacheKey(prefix string, debts []payoff.DebtSnapshot, strategy payoff.Strategy, monthlyAmount float64, startDate time.Time) string {
	resolved := struct {
		Debts         []payoff.DebtSnapshot `json:"debts"`
		Strategy      payoff.Strategy       `json:"strategy,omitempty"`
		MonthlyAmount float64               `json:"monthlyAmount"`
		StartDate     string                `json:"startDate"`
	}{debts, strategy, monthlyAmount, datetime.FormatDate(startDate)}
	data, err := json.Marshal(resolved)
	if err != nil {
		return ""
	}
	return cache.Key(prefix, data)
}

// resolveInputs fills in the debt list from the store when the request
// omits it, and parses the optional start date.
func (h *handler) resolveInputs(w http.ResponseWriter, r *http.Request, req planRequest) ([]payoff.DebtSnapshot, time.Time, bool) {
	debts := req.Debts
	if len(debts) == 0 && h.store != nil {
		stored, err := h.store.ListDebts(r.Context())
		if err != nil {
			h.logger.Error("failed to list debts",
				zap.String("op", "server.resolveInputs"),
				zap.Error(err),
			)
			h.writeError(w, http.StatusInternalServerError, "failed to list debts")
			return nil, time.Time{}, false
		}
		debts = stored
	}

	startDate := h.now()
	if req.StartDate != "" {
		parsed, err := datetime.ParseDate(req.StartDate)
		if err != nil {
			h.writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid start date %q", req.StartDate))
			return nil, time.Time{}, false
		}
		startDate = parsed
	}
	return debts, startDate, true
}

func (h *handler) serveCached(w http.ResponseWriter, key string) bool {
	if h.planCache == nil || key == "" {
		return false
	}
	cached, ok := h.planCache.Get(key)
	if !ok {
		return false
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Cache", "hit")
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, cached)
	return true
}

func (h *handler) writeCacheable(w http.ResponseWriter, key string, v interface{}) {
	data, err := json.Marshal(v)
	if err != nil {
		h.logger.Error("failed to encode response",
			zap.String("op", "server.writeCacheable"),
			zap.Error(err),
		)
		h.writeError(w, http.StatusInternalServerError, "failed to encode response")
		return
	}
	if h.planCache != nil && key != "" {
		if err := h.planCache.Set(key, string(data)); err != nil {
			h.logger.Warn("failed to cache response",
				zap.String("op", "server.writeCacheable"),
				zap.Error(err),
			)
		}
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Cache", "miss")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// writeEngineError maps the engine's typed failures onto HTTP statuses.
func (h *handler) writeEngineError(w http.ResponseWriter, err error) {
	status := http.StatusBadRequest
	switch {
	case errors.Is(err, payoff.ErrNoConvergence):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, store.ErrDebtNotFound):
		status = http.StatusNotFound
	case errors.Is(err, payoff.ErrNoDebts),
		errors.Is(err, payoff.ErrInsufficientFunds),
		errors.Is(err, payoff.ErrInvalidDebtData),
		errors.Is(err, payoff.ErrInvalidAmount),
		errors.Is(err, payoff.ErrInvalidDate):
		status = http.StatusBadRequest
	}
	h.writeError(w, status, err.Error())
}

func (h *handler) writeError(w http.ResponseWriter, status int, msg string) {
	h.writeJSON(w, status, errorResponse{Error: msg})
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("failed to write response",
			zap.String("op", "server.writeJSON"),
			zap.Error(err),
		)
	}
}
