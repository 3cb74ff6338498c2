package api

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/sells-group/pool-cli/internal/export"
)

func (h *handler) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, jsonResponse{"status": "ok"})
}

// getLeaderboard serves the live board as JSON, or as CSV with ?format=csv.
func (h *handler) getLeaderboard(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format != "" && format != "json" && format != "csv" {
		errorResponse(w, http.StatusBadRequest, "format must be json or csv")
		return
	}

	board, err := h.boards.Live(r.Context(), chi.URLParam(r, "game"))
	if err != nil {
		serviceError(w, r, err)
		return
	}

	if format == "csv" {
		var buf bytes.Buffer
		if err := export.WriteCSV(&buf, board.Entries); err != nil {
			serviceError(w, r, err)
			return
		}
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		_, _ = w.Write(buf.Bytes())
		return
	}
	writeJSON(w, http.StatusOK, board)
}

func (h *handler) getChart(w http.ResponseWriter, r *http.Request) {
	top := 0
	if s := r.URL.Query().Get("top"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 {
			errorResponse(w, http.StatusBadRequest, "top must be a positive integer")
			return
		}
		top = n
	}

	game := chi.URLParam(r, "game")
	board, err := h.boards.Live(r.Context(), game)
	if err != nil {
		serviceError(w, r, err)
		return
	}

	var buf bytes.Buffer
	err = export.WriteChart(&buf, board.Entries, export.ChartOptions{Title: game, Top: top})
	if errors.Is(err, export.ErrNoEntries) {
		errorResponse(w, http.StatusNotFound, "no participants to chart")
		return
	}
	if err != nil {
		serviceError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	_, _ = w.Write(buf.Bytes())
}

func (h *handler) getBreakdown(w http.ResponseWriter, r *http.Request) {
	participant, err := url.PathUnescape(chi.URLParam(r, "participant"))
	if err != nil {
		errorResponse(w, http.StatusBadRequest, "bad participant name")
		return
	}

	card, ok, err := h.boards.Breakdown(r.Context(), chi.URLParam(r, "game"), participant)
	if err != nil {
		serviceError(w, r, err)
		return
	}
	if !ok {
		errorResponse(w, http.StatusNotFound, "participant not found")
		return
	}
	writeJSON(w, http.StatusOK, card)
}

func (h *handler) recompute(w http.ResponseWriter, r *http.Request) {
	// a client that hangs up does not abort the run
	sum, err := h.boards.Recompute(context.WithoutCancel(r.Context()), chi.URLParam(r, "game"))
	if err != nil {
		serviceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sum)
}

// setBaseline snapshots the stored ranking; ?refresh=true recomputes first.
func (h *handler) setBaseline(w http.ResponseWriter, r *http.Request) {
	refresh := false
	if s := r.URL.Query().Get("refresh"); s != "" {
		b, err := strconv.ParseBool(s)
		if err != nil {
			errorResponse(w, http.StatusBadRequest, "refresh must be a boolean")
			return
		}
		refresh = b
	}

	sum, err := h.boards.SetBaseline(context.WithoutCancel(r.Context()), chi.URLParam(r, "game"), refresh)
	if err != nil {
		serviceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sum)
}
