package api

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/louisbranch/bengkel/internal/platform/requestctx"
	"github.com/louisbranch/bengkel/internal/platform/timeouts"
	"github.com/louisbranch/bengkel/internal/services/web/gate"
	"github.com/louisbranch/bengkel/internal/services/web/performance"
	apperrors "github.com/louisbranch/bengkel/internal/services/web/platform/errors"
	"github.com/louisbranch/bengkel/internal/services/web/platform/httpx"
	"github.com/louisbranch/bengkel/internal/services/web/platform/modulehandler"
	"github.com/louisbranch/bengkel/internal/services/web/platform/sessioncookie"
	"github.com/louisbranch/bengkel/internal/services/web/reporting"
	"github.com/louisbranch/bengkel/internal/services/web/storage"
)

// Store is the read surface of the API.
type Store interface {
	storage.ReportStore
	GetMechanic(ctx context.Context, id string) (storage.Mechanic, error)
	ListExpenses(ctx context.Context, from, to time.Time) ([]storage.Expense, error)
}

type handlers struct {
	modulehandler.Base
	store    Store
	sessions gate.SessionResolver
}

var (
	errSessionRequired = apperrors.E(apperrors.KindUnauthorized, "authentication required")
	errRouteNotFound   = apperrors.E(apperrors.KindNotFound, "route not found")
)

type healthResponse struct {
	Status string `json:"status"`
}

type performanceResponse struct {
	MechanicID           string   `json:"mechanic_id"`
	Name                 string   `json:"name"`
	Month                string   `json:"month"`
	TotalRevenue         int64    `json:"total_revenue"`
	TransactionCount     int      `json:"transaction_count"`
	AvgTransactionValue  float64  `json:"avg_transaction_value"`
	CustomerSatisfaction *float64 `json:"customer_satisfaction"`
	Score                int      `json:"score"`
}

type expenseJSON struct {
	ID          string `json:"id"`
	Category    string `json:"category"`
	Description string `json:"description"`
	Amount      int64  `json:"amount"`
	SpentAt     string `json:"spent_at"`
}

type expensesResponse struct {
	Month    string        `json:"month"`
	Total    int64         `json:"total"`
	Expenses []expenseJSON `json:"expenses"`
}

func (h handlers) handleHealth(w http.ResponseWriter, _ *http.Request) {
	_ = httpx.WriteJSON(w, http.StatusOK, healthResponse{Status: "ok"})
}

func (h handlers) handleNotFound(w http.ResponseWriter, _ *http.Request) {
	_ = httpx.WriteJSONError(w, errRouteNotFound)
}

// requireSession answers 401 without a session and 503 when the session
// backend cannot be reached.
func (h handlers) requireSession(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), timeouts.SessionLookup)
		defer cancel()
		sess, ok, err := h.sessions.ResolveSession(r.WithContext(ctx))
		if err != nil {
			_ = httpx.WriteJSONError(w, apperrors.Wrap(apperrors.KindUnavailable, "session lookup failed", err))
			return
		}
		if !ok {
			_ = httpx.WriteJSONError(w, errSessionRequired)
			return
		}
		if sess.RenewedToken != "" {
			sessioncookie.Write(w, r, h.Policy(), sess.RenewedToken, sess.ExpiresAt)
		}
		reqCtx := gate.WithSession(r.Context(), sess)
		reqCtx = requestctx.WithUserID(reqCtx, sess.UserID)
		next(w, r.WithContext(reqCtx))
	}
}

func (h handlers) handleMechanicPerformance(w http.ResponseWriter, r *http.Request) {
	month, err := h.RequestMonth(r)
	if err != nil {
		_ = httpx.WriteJSONError(w, err)
		return
	}
	mechanic, err := h.store.GetMechanic(r.Context(), r.PathValue("id"))
	if err != nil {
		h.writeJSONError(w, r, err)
		return
	}
	stats, err := h.store.MechanicStats(r.Context(), month.From, month.To)
	if err != nil {
		h.writeJSONError(w, r, fmt.Errorf("load mechanic stats: %w", err))
		return
	}
	stat := storage.MechanicStat{MechanicID: mechanic.ID, Name: mechanic.Name}
	for _, candidate := range stats {
		if candidate.MechanicID == mechanic.ID {
			stat = candidate
			break
		}
	}
	entry := reporting.Entry(stat)
	in := performance.FromStats(entry.Stats)
	_ = httpx.WriteJSON(w, http.StatusOK, performanceResponse{
		MechanicID:           mechanic.ID,
		Name:                 mechanic.Name,
		Month:                month.Key(),
		TotalRevenue:         stat.TotalRevenue,
		TransactionCount:     stat.TransactionCount,
		AvgTransactionValue:  in.AvgTransactionValue,
		CustomerSatisfaction: in.CustomerSatisfaction,
		Score:                performance.Score(in),
	})
}

func (h handlers) handleExpenses(w http.ResponseWriter, r *http.Request) {
	month, err := h.RequestMonth(r)
	if err != nil {
		_ = httpx.WriteJSONError(w, err)
		return
	}
	list, err := h.store.ListExpenses(r.Context(), month.From, month.To)
	if err != nil {
		h.writeJSONError(w, r, fmt.Errorf("list expenses: %w", err))
		return
	}
	resp := expensesResponse{Month: month.Key(), Expenses: make([]expenseJSON, 0, len(list))}
	for _, e := range list {
		resp.Total += e.Amount
		resp.Expenses = append(resp.Expenses, expenseJSON{
			ID:          e.ID,
			Category:    e.Category,
			Description: e.Description,
			Amount:      e.Amount,
			SpentAt:     e.SpentAt.In(h.Location()).Format("2006-01-02"),
		})
	}
	_ = httpx.WriteJSON(w, http.StatusOK, resp)
}

func (h handlers) writeJSONError(w http.ResponseWriter, r *http.Request, err error) {
	if apperrors.HTTPStatus(err) >= http.StatusInternalServerError {
		log.Printf("api error path=%s request_id=%s err=%v", r.URL.Path, requestctx.RequestIDFromContext(r.Context()), err)
	}
	_ = httpx.WriteJSONError(w, err)
}
