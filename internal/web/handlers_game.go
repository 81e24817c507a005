package web

import (
	"net/http"
	"strings"

	"novel/internal/game"
	"novel/internal/savegame"
)

const (
	msgLoadFailed = "Save data not found."
	msgSaveFailed = "Failed to save. Please try again."
)

// GET /
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Cache-Control", "no-store")
	s.render(w, r, "title.html", TitleViewModel{Tenant: s.Tenant})
}

// POST /begin
func (s *Server) handleBegin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}
	name := game.NormalizePlayerName(r.FormValue("name"))
	if name == "" {
		s.render(w, r, "title.html", TitleViewModel{Tenant: s.Tenant, Message: "Please enter your name."})
		return
	}

	p := &Play{Session: game.NewSession(s.Tenant, name)}
	p.LastBeat = s.interpreter(p).Start()
	vm := newGameViewModel(s.Tenant, p, s.Catalog.Len())

	id := s.ensureSessionID(w, r)
	if err := s.Store.Put(r.Context(), id, p); err != nil {
		http.Error(w, "failed to save state", http.StatusInternalServerError)
		return
	}
	s.logger().Printf("session %s: new game for %q", id, name)
	s.render(w, r, "game.html", vm)
}

// POST /load
func (s *Server) handleLoad(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}
	code := strings.TrimSpace(r.FormValue("code"))
	if code == "" {
		s.render(w, r, "title.html", TitleViewModel{Tenant: s.Tenant, Message: "Please enter a save code."})
		return
	}

	data, err := s.Gateway.Load(r.Context(), s.Tenant, code)
	if err != nil {
		// Any failure leaves the current session as it was.
		s.logger().Printf("load %s: %v", code, err)
		s.render(w, r, "title.html", TitleViewModel{Tenant: s.Tenant, Message: msgLoadFailed})
		return
	}

	p := &Play{Session: game.NewSession(s.Tenant, data.PlayerName)}
	p.LastBeat = s.interpreter(p).Resume(data.CurrentLine)
	vm := newGameViewModel(s.Tenant, p, s.Catalog.Len())

	id := s.ensureSessionID(w, r)
	if err := s.Store.Put(r.Context(), id, p); err != nil {
		http.Error(w, "failed to save state", http.StatusInternalServerError)
		return
	}
	s.logger().Printf("session %s: resumed %q at line %d", id, data.PlayerName, data.CurrentLine)
	s.render(w, r, "game.html", vm)
}

// POST /advance
func (s *Server) handleAdvance(w http.ResponseWriter, r *http.Request) {
	p, _, ok := s.currentPlay(r.Context(), r)
	if !ok {
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}
	p.mu.Lock()
	p.LastBeat = s.interpreter(p).Advance()
	vm := newGameViewModel(s.Tenant, p, s.Catalog.Len())
	p.mu.Unlock()

	s.render(w, r, "game.html", vm)
}

// POST /save
func (s *Server) handleSave(w http.ResponseWriter, r *http.Request) {
	p, id, ok := s.currentPlay(r.Context(), r)
	if !ok {
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}
	p.mu.Lock()
	data := savegame.SaveData{PlayerName: p.Session.PlayerName, CurrentLine: p.Session.CurrentLine}
	p.mu.Unlock()

	code, err := s.Gateway.Save(r.Context(), s.Tenant, data)
	if err != nil {
		s.logger().Printf("session %s: save: %v", id, err)
		s.render(w, r, "save.html", SaveViewModel{Message: msgSaveFailed})
		return
	}
	p.mu.Lock()
	p.SaveCode, p.Saved = code, data
	p.mu.Unlock()
	s.logger().Printf("session %s: saved line %d as %s", id, data.CurrentLine, code)
	s.render(w, r, "save.html", SaveViewModel{Code: code})
}

// POST /quit
func (s *Server) handleQuit(w http.ResponseWriter, r *http.Request) {
	if id := s.sessionID(r); id != "" {
		if err := s.Store.Delete(r.Context(), id); err != nil {
			s.logger().Printf("session %s: delete: %v", id, err)
		}
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
