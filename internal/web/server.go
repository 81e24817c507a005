// Package web serves the player client: title screen, htmx game fragments,
// save slips and a websocket stream of stage events.
package web

import (
	"context"
	"html/template"
	"io"
	"log"
	"net/http"
	"path/filepath"
	"sync"

	"novel/internal/game"
	"novel/internal/savegame"
	"novel/internal/session"
)

const cookieName = "novel_sid"

// SaveGateway saves and loads progress through the backend.
type SaveGateway interface {
	Save(ctx context.Context, tenantID string, data savegame.SaveData) (string, error)
	Load(ctx context.Context, tenantID, code string) (savegame.SaveData, error)
}

// Play is one browser's run. mu serializes interpreter access.
type Play struct {
	mu       sync.Mutex
	Session  *game.Session
	LastBeat game.Beat
	// SaveCode and Saved record the most recent successful save.
	SaveCode string
	Saved    savegame.SaveData
}

type Server struct {
	Catalog *game.Catalog
	Assets  game.AssetResolver
	Gateway SaveGateway
	Store   session.Store[*Play]
	Tmpl    *template.Template
	Tenant  string
	// MediaDir, when set, is served under /media/ as a local asset mirror.
	MediaDir string
	Logger   *log.Logger
}

// ParseTemplates loads the page templates from dir.
func ParseTemplates(dir string) (*template.Template, error) {
	return template.New("").Funcs(templateFuncs).ParseFiles(
		filepath.Join(dir, "layout.html"),
		filepath.Join(dir, "title.html"),
		filepath.Join(dir, "game.html"),
		filepath.Join(dir, "save.html"),
	)
}

func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("POST /begin", s.handleBegin)
	mux.HandleFunc("POST /load", s.handleLoad)
	mux.HandleFunc("POST /advance", s.handleAdvance)
	mux.HandleFunc("POST /save", s.handleSave)
	mux.HandleFunc("POST /quit", s.handleQuit)
	mux.HandleFunc("GET /slip", s.handleSlip)
	mux.HandleFunc("GET /ws", s.handleWS)
	if s.MediaDir != "" {
		mux.HandleFunc("GET /media/{object...}", s.handleMedia)
	}
	return mux
}

func (s *Server) logger() *log.Logger {
	if s.Logger == nil {
		return log.New(io.Discard, "", 0)
	}
	return s.Logger
}

func (s *Server) interpreter(p *Play) *game.Interpreter {
	return game.NewInterpreter(s.Catalog, s.Assets, p.Session, s.Logger)
}

func (s *Server) sessionID(r *http.Request) string {
	c, err := r.Cookie(cookieName)
	if err != nil {
		return ""
	}
	return c.Value
}

// ensureSessionID returns the request's session id, issuing a cookie for a
// new one when absent.
func (s *Server) ensureSessionID(w http.ResponseWriter, r *http.Request) string {
	if id := s.sessionID(r); id != "" {
		return id
	}
	id := s.Store.NewID()
	http.SetCookie(w, &http.Cookie{
		Name:     cookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}

// currentPlay returns the play bound to the request's cookie.
func (s *Server) currentPlay(ctx context.Context, r *http.Request) (*Play, string, bool) {
	id := s.sessionID(r)
	if id == "" {
		return nil, "", false
	}
	p, ok, err := s.Store.Get(ctx, id)
	if err != nil || !ok || p == nil {
		return nil, id, false
	}
	return p, id, true
}

// render writes a bare fragment for htmx requests and the full page otherwise.
func (s *Server) render(w http.ResponseWriter, r *http.Request, fragment string, data any) {
	name := "layout.html"
	if r.Header.Get("HX-Request") == "true" {
		name = fragment
	} else {
		data = PageViewModel{Fragment: fragment, Data: data}
	}
	if err := s.Tmpl.ExecuteTemplate(w, name, data); err != nil {
		s.logger().Printf("render %s: %v", fragment, err)
		http.Error(w, "failed to render template", http.StatusInternalServerError)
	}
}
