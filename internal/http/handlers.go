package http

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"bilancio/internal/core"
	"bilancio/internal/storage"
)

// transactionDTO is the externally visible record shape. The stored note
// field is exposed as description.
type transactionDTO struct {
	ID          int64   `json:"id"`
	Date        string  `json:"date"`
	Amount      string  `json:"amount"`
	Description *string `json:"description"`
	Category    *string `json:"category"`
	Type        string  `json:"type"`
}

func (s *Server) handleAdd(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeMethodNotAllowed(w, http.MethodPost)
		return
	}

	body, err := ParseRequestBody(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	kind, err := core.ParseKind(body.Get("type"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid type")
		return
	}

	if !body.Has("amount") {
		writeError(w, http.StatusBadRequest, core.ErrMissingAmount.Error())
		return
	}
	amount, err := core.ParseAmount(body.Get("amount"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	id, err := s.store.Create(r.Context(), kind, amount, body.Get("description"), body.Get("date"))
	if err != nil {
		slog.ErrorContext(r.Context(), "Create transaction failed",
			"error", err,
			"kind", kind,
			"amount_cents", amount.Cents)
		// Store failures surface with their raw message.
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status": "success",
		"id":     id,
	})
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeMethodNotAllowed(w, http.MethodPost)
		return
	}

	body, err := ParseRequestBody(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	kindStr := body.Get("type")
	idStr := body.Get("id")
	if kindStr == "" || idStr == "" {
		writeError(w, http.StatusBadRequest, core.ErrMissingFields.Error())
		return
	}

	kind, err := core.ParseKind(kindStr)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid type")
		return
	}

	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid id %q", idStr))
		return
	}

	if err := s.store.Delete(r.Context(), kind, id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeError(w, http.StatusNotFound, kind.Label()+" not found")
			return
		}
		slog.ErrorContext(r.Context(), "Delete transaction failed",
			"error", err,
			"kind", kind,
			"id", id)
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "success"})
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeMethodNotAllowed(w, http.MethodGet)
		return
	}

	txs, err := s.store.List(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "List transactions failed", "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	items := make([]transactionDTO, len(txs))
	for i, tx := range txs {
		items[i] = transactionDTO{
			ID:          tx.ID,
			Date:        tx.RawDate,
			Amount:      tx.Amount.String(),
			Description: tx.Note,
			Category:    tx.Category,
			Type:        string(tx.Kind),
		}
	}

	writeJSON(w, http.StatusOK, map[string]any{"transactions": items})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeMethodNotAllowed(w, http.MethodGet)
		return
	}

	params := ParseMonthParams(r.URL.Query())
	summary, err := s.store.MonthlySummary(r.Context(), params.Year, params.Month)
	if err != nil {
		slog.ErrorContext(r.Context(), "Monthly summary failed",
			"error", err,
			"year", params.Year,
			"month", params.Month)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"month":   summary.Month,
		"year":    summary.Year,
		"income":  summary.Income.String(),
		"expense": summary.Expense.String(),
		"balance": summary.Balance.String(),
	})
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeMethodNotAllowed(w, http.MethodGet)
		return
	}

	file, err := s.exporter.Build(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Export failed", "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("Content-Type", file.ContentType)
	w.Header().Set("Content-Disposition", "attachment; filename="+file.Name)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(file.Data)
}
