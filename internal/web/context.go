package web

import (
	"context"
	"net/http"

	"github.com/JonMunkholm/pcc/internal/core"
	"github.com/google/uuid"
)

// analysisIDHeader carries the analysis ID on analysis responses, including
// failed ones, so a user can quote it alongside the error code.
const analysisIDHeader = "X-Analysis-ID"

// withAnalysisID assigns a fresh analysis ID to the request and reports it
// in the response header.
func withAnalysisID(w http.ResponseWriter, r *http.Request) context.Context {
	id := uuid.New()
	w.Header().Set(analysisIDHeader, id.String())
	return core.ContextWithAnalysisID(r.Context(), id)
}
