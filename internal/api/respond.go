package api

import (
	"encoding/json"
	"net/http"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/pool-cli/internal/scoring"
)

type jsonResponse map[string]any

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		zap.L().Warn("api: encode response", zap.Error(err))
	}
}

func errorResponse(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, jsonResponse{"error": message})
}

// serviceError maps a leaderboard error to a response. Rules errors are the
// operator's to fix and are reported verbatim.
func serviceError(w http.ResponseWriter, r *http.Request, err error) {
	if eris.Is(err, scoring.ErrMissingBonusReward) {
		errorResponse(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	zap.L().Error("api: request failed",
		zap.String("path", r.URL.Path),
		zap.Error(err),
	)
	errorResponse(w, http.StatusInternalServerError, "the server could not process the request")
}
