package callable

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"novel/internal/apperr"
	"novel/internal/catalog"
	"novel/internal/docstore"
	"novel/internal/functions"
	"novel/internal/savegame"
)

func newBackend(t *testing.T) (*httptest.Server, *docstore.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	st, err := docstore.Open(filepath.Join(t.TempDir(), "novel.db"))
	if err != nil {
		t.Fatalf("Failed to open store: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })
	srv := httptest.NewServer(functions.NewRouter(functions.NewService(st, nil), nil))
	t.Cleanup(srv.Close)
	return srv, st
}

func TestClient_SaveLoadRoundTrip(t *testing.T) {
	srv, _ := newBackend(t)
	gw := &savegame.Gateway{Caller: NewClient(srv.URL, time.Second)}
	ctx := context.Background()

	code, err := gw.Save(ctx, "acme", savegame.SaveData{PlayerName: "Aria", CurrentLine: 12})
	if err != nil {
		t.Fatalf("Unexpected save error: %v", err)
	}
	if !savegame.ValidCode(code) {
		t.Errorf("Expected a valid code, got %q", code)
	}

	got, err := gw.Load(ctx, "acme", "  "+code+" ")
	if err != nil {
		t.Fatalf("Unexpected load error: %v", err)
	}
	if got.PlayerName != "Aria" || got.CurrentLine != 12 {
		t.Errorf("Expected Aria at 12, got %+v", got)
	}
	if got.CreatedAt.IsZero() {
		t.Error("Expected createdAt from the backend")
	}
}

func TestClient_ErrorKinds(t *testing.T) {
	srv, _ := newBackend(t)
	c := NewClient(srv.URL, 0)
	ctx := context.Background()

	err := c.Call(ctx, savegame.FuncLoadGame, map[string]string{"tenantId": "acme", "saveCode": "NOPE0000"}, nil)
	if !apperr.IsNotFound(err) {
		t.Errorf("Expected not-found, got %v", err)
	}
	if apperr.Message(err) != "Save data not found." {
		t.Errorf("Unexpected message %q", apperr.Message(err))
	}

	err = c.Call(ctx, savegame.FuncLoadGame, map[string]string{"tenantId": "acme"}, nil)
	if !apperr.IsInvalidArgument(err) {
		t.Errorf("Expected invalid-argument, got %v", err)
	}
}

func TestClient_CatalogSource(t *testing.T) {
	srv, st := newBackend(t)
	ctx := context.Background()
	if err := st.PutBatch(ctx, "acme", docstore.CollectionScenario, []docstore.Item{
		{ID: docstore.ScenarioDocID(1), Body: []byte(`{"order":1,"command":"text","param1":"hero","param2":"Hi %PLAYER_NAME%"}`)},
	}); err != nil {
		t.Fatalf("Failed to seed: %v", err)
	}
	if err := st.PutBatch(ctx, "acme", docstore.CollectionCharacters, []docstore.Item{
		{ID: docstore.CharacterDocID("hero", "smile"), Body: []byte(`{"characterId":"hero","characterName":"Hero","expressionId":"smile","imageUrl":"u"}`)},
	}); err != nil {
		t.Fatalf("Failed to seed: %v", err)
	}

	l := &catalog.Loader{Source: NewClient(srv.URL, time.Second)}
	cat, err := l.Load(ctx, "acme")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if cat.Len() != 1 {
		t.Errorf("Expected 1 command, got %d", cat.Len())
	}
	if ch, ok := cat.Character("hero"); !ok || ch.Name != "Hero" {
		t.Errorf("Expected hero character, got %+v", ch)
	}
}

func TestClient_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := NewClient(url, time.Second)
	if err := c.Call(context.Background(), catalog.FuncGetCharacters, map[string]string{"tenantId": "acme"}, nil); !apperr.IsUnavailable(err) {
		t.Errorf("Expected unavailable, got %v", err)
	}
	if err := c.Healthy(context.Background()); !apperr.IsUnavailable(err) {
		t.Errorf("Expected unhealthy backend, got %v", err)
	}
}

func TestClient_Healthy(t *testing.T) {
	srv, _ := newBackend(t)
	if err := NewClient(srv.URL+"/", 0).Healthy(context.Background()); err != nil {
		t.Errorf("Expected healthy backend, got %v", err)
	}
}
