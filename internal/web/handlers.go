package web

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/JonMunkholm/tradeimport/internal/core"
)

type healthResponse struct {
	Status  string             `json:"status"`
	Formats int                `json:"formats"`
	Imports core.LimiterStatus `json:"imports"`
}

// handleHealth reports liveness and import slot usage.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		Status:  "ok",
		Formats: core.FormatCount(),
		Imports: s.service.Status(),
	})
}

// handleListFormats lists every registered format with its header layouts.
func (s *Server) handleListFormats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.service.ListFormats())
}

func (s *Server) handleGetFormat(w http.ResponseWriter, r *http.Request) {
	desc, err := s.service.Format(chi.URLParam(r, "format"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, desc)
}

// handleDownloadTemplate returns a CSV holding only the header row of the
// format's first layout.
func (s *Server) handleDownloadTemplate(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "format")

	tmpl, err := s.service.Template(key)
	if err != nil {
		respondError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s_template.csv"`, key))
	_, _ = w.Write(tmpl)
}
