package rest

import (
	"errors"
	"net/http"

	"github.com/goccy/go-json"

	"github.com/ewilliams-labs/deepcut/backend/internal/core/domain"
	"github.com/ewilliams-labs/deepcut/backend/internal/logging"
)

const maxAnalyzeBodyBytes = 1 << 20

// analyzeRequest is the taste profile sent by the client. A missing or null
// artists field is treated as an empty list.
type analyzeRequest struct {
	Artists []string `json:"artists"`
}

// Analyze handles POST /analyze
func (h *Handler) Analyze(w http.ResponseWriter, r *http.Request) {
	if !isJSONContentType(r) {
		writeError(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
		return
	}

	// 1. Decode the Request Body
	r.Body = http.MaxBytesReader(w, r.Body, maxAnalyzeBodyBytes)
	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
			return
		}
		logging.Ctx(r.Context()).Debug().Err(err).Msg("invalid analyze body")
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	// 2. Run the pipeline; it cannot fail
	result := h.svc.Analyze(r.Context(), domain.ArtistQuery{Artists: req.Artists})

	writeJSON(w, http.StatusOK, result)
}
