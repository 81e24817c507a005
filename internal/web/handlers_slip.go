package web

import (
	"net/http"
	"strings"

	"novel/internal/savegame"
	"novel/internal/slip"
)

// GET /slip?code=<code>&format=pdf|txt
func (s *Server) handleSlip(w http.ResponseWriter, r *http.Request) {
	code := strings.TrimSpace(r.URL.Query().Get("code"))
	if !savegame.ValidCode(code) {
		http.Error(w, "invalid save code", http.StatusBadRequest)
		return
	}

	if r.URL.Query().Get("format") == "txt" {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Header().Set("Content-Disposition", `attachment; filename="`+slip.Filename(s.Tenant)+`"`)
		_, _ = w.Write(slip.Text(code))
		return
	}

	info := s.slipInfo(r, code)
	pdf, err := slip.PDF(info)
	if err != nil {
		s.logger().Printf("slip %s: %v", code, err)
		http.Error(w, "failed to render slip", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="`+slip.PDFFilename(s.Tenant)+`"`)
	if _, err := w.Write(pdf); err != nil {
		s.logger().Printf("slip %s: write: %v", code, err)
	}
}

// slipInfo fills in the player and resume line only for a code this
// browser saved; any other code gets a bare slip.
func (s *Server) slipInfo(r *http.Request, code string) slip.Info {
	info := slip.Info{Tenant: s.Tenant, Code: code}
	p, _, ok := s.currentPlay(r.Context(), r)
	if !ok {
		return info
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.SaveCode == code {
		info.PlayerName = p.Saved.PlayerName
		info.Line = p.Saved.CurrentLine
		info.Total = s.Catalog.Len()
	}
	return info
}
