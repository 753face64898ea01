package httpapi

import (
	"fmt"
	"net/http"

	"github.com/harshaakurathi/newMCQ-backend/internal/export"
)

func (a *API) handleExportSubject(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("subjectName")
	if !requireFields(w, "subjectName", name) {
		return
	}

	subject, err := a.lifecycle.Subject(r.Context(), name)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	workbook, err := export.Workbook(subject)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name+".xlsx"))
	if _, err := workbook.WriteTo(w); err != nil {
		// Headers are already out; nothing useful left to send.
		return
	}
}
