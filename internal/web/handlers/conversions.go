package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/jusunglee/hangulnum/internal/db"
	"github.com/samber/lo"
)

const (
	defaultHistoryLimit = 20
	maxHistoryLimit     = 200
)

type HistoryHandler struct {
	repo db.Repository
	log  *slog.Logger
}

func NewHistoryHandler(repo db.Repository, log *slog.Logger) *HistoryHandler {
	return &HistoryHandler{repo: repo, log: log}
}

type conversionResponse struct {
	ID        int64  `json:"id"`
	Direction string `json:"direction"`
	Surface   string `json:"surface"`
	Input     string `json:"input"`
	Output    string `json:"output"`
	CreatedAt string `json:"created_at"`
}

type historyResponse struct {
	Data  []conversionResponse `json:"data"`
	Total int64                `json:"total"`
}

type pruneResponse struct {
	Deleted int64 `json:"deleted"`
}

func toConversionResponse(c db.Conversion, _ int) conversionResponse {
	return conversionResponse{
		ID:        c.ID,
		Direction: string(c.Direction),
		Surface:   c.Surface,
		Input:     c.Input,
		Output:    c.Output,
		CreatedAt: c.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func (h *HistoryHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := defaultHistoryLimit
	if s := r.URL.Query().Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = min(n, maxHistoryLimit)
	}

	conversions, err := h.repo.ListRecentConversions(r.Context(), int32(limit))
	if err != nil {
		h.log.ErrorContext(r.Context(), "listing conversions", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	total, err := h.repo.CountConversions(r.Context())
	if err != nil {
		h.log.ErrorContext(r.Context(), "counting conversions", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, historyResponse{
		Data:  lo.Map(conversions, toConversionResponse),
		Total: total,
	})
}

func (h *HistoryHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	c, err := h.repo.GetConversion(r.Context(), id)
	if errors.Is(err, db.ErrConversionNotFound) {
		writeError(w, http.StatusNotFound, "conversion not found")
		return
	}
	if err != nil {
		h.log.ErrorContext(r.Context(), "getting conversion", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, toConversionResponse(c, 0))
}

// Prune deletes history older than the "before" query parameter (RFC 3339).
func (h *HistoryHandler) Prune(w http.ResponseWriter, r *http.Request) {
	before, err := time.Parse(time.RFC3339, r.URL.Query().Get("before"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "before must be an RFC 3339 timestamp")
		return
	}

	deleted, err := h.repo.DeleteConversionsBefore(r.Context(), before)
	if err != nil {
		h.log.ErrorContext(r.Context(), "pruning conversions", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	h.log.InfoContext(r.Context(), "pruned conversion history", "before", before, "deleted", deleted)
	writeJSON(w, http.StatusOK, pruneResponse{Deleted: deleted})
}
