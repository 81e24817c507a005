package web

import (
	"bytes"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

func mediaServer(t *testing.T) *Server {
	t.Helper()
	srv, _ := testServer(t)
	srv.MediaDir = t.TempDir()
	if err := os.MkdirAll(filepath.Join(srv.MediaDir, "backgrounds"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(srv.MediaDir, "backgrounds", "office.jpg"), []byte("jpeg-bytes"), 0o644); err != nil {
		t.Fatal(err)
	}
	return srv
}

func getMedia(srv *Server, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	srv.Routes().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, http.NoBody))
	return rec
}

func TestHandleMedia_ServesFileByBucketPath(t *testing.T) {
	srv := mediaServer(t)

	// office.png is requested; office.jpg exists on disk.
	rec := getMedia(srv, "/media/backgrounds%2Foffice.png?alt=media")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	if rec.Body.String() != "jpeg-bytes" {
		t.Errorf("Expected file contents, got %q", rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "image/jpeg" {
		t.Errorf("Expected image/jpeg, got %q", ct)
	}
}

func TestHandleMedia_PlaceholderWhenMissing(t *testing.T) {
	srv := mediaServer(t)

	for _, path := range []string{"/media/backgrounds/harbor.png", "/media/characters%2Fhero.png"} {
		rec := getMedia(srv, path)
		if rec.Code != http.StatusOK {
			t.Errorf("%s: expected 200, got %d", path, rec.Code)
			continue
		}
		if _, err := png.Decode(bytes.NewReader(rec.Body.Bytes())); err != nil {
			t.Errorf("%s: expected a PNG placeholder: %v", path, err)
		}
	}
}

func TestHandleMedia_RejectsBadObjects(t *testing.T) {
	srv := mediaServer(t)
	for _, path := range []string{
		"/media/music%2Ftheme.mp3",
		"/media/backgrounds",
	} {
		if rec := getMedia(srv, path); rec.Code != http.StatusNotFound {
			t.Errorf("%s: expected 404, got %d", path, rec.Code)
		}
	}
}

func TestHandleMedia_DisabledWithoutDir(t *testing.T) {
	srv, _ := testServer(t)
	if rec := getMedia(srv, "/media/backgrounds/harbor.png"); rec.Code != http.StatusNotFound {
		t.Errorf("Expected 404 without a media dir, got %d", rec.Code)
	}
}

func TestPlaceholder_Deterministic(t *testing.T) {
	a := placeholder("backgrounds", "harbor")
	b := placeholder("backgrounds", "harbor")
	c := placeholder("backgrounds", "street")
	if a.At(0, 0) != b.At(0, 0) {
		t.Error("Expected same id to draw the same image")
	}
	if a.At(0, 0) == c.At(0, 0) {
		t.Error("Expected different ids to be tinted differently")
	}
	if p := placeholder("characters", "hero"); p.Bounds().Dx() != portraitW {
		t.Errorf("Expected portrait width %d, got %d", portraitW, p.Bounds().Dx())
	}
}

func TestSplitMediaObject(t *testing.T) {
	cases := []struct {
		object     string
		kind, name string
		ok         bool
	}{
		{"backgrounds/office.png", "backgrounds", "office.png", true},
		{"/characters/hero.png", "characters", "hero.png", true},
		{"backgrounds/../../secret", "", "", false},
		{"backgrounds/a/b.png", "", "", false},
		{"music/theme.mp3", "", "", false},
		{"backgrounds/", "", "", false},
	}
	for _, tc := range cases {
		kind, name, ok := splitMediaObject(tc.object)
		if ok != tc.ok || kind != tc.kind || name != tc.name {
			t.Errorf("splitMediaObject(%q) = %q, %q, %v; want %q, %q, %v", tc.object, kind, name, ok, tc.kind, tc.name, tc.ok)
		}
	}
}
