package httpapi

import "net/http"

func (a *API) handleExecuteCode(w http.ResponseWriter, r *http.Request) {
	if a.exec == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "code execution is not configured"})
		return
	}

	var req executeCodeRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if !requireFields(w, "source_code", req.SourceCode) {
		return
	}
	if req.LanguageID <= 0 {
		writeValidationError(w, "language_id must be a positive integer")
		return
	}

	result, err := a.exec.Execute(r.Context(), req.SourceCode, req.LanguageID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}
