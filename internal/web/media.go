package web

import (
	"bytes"
	"hash/fnv"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

const mediaCacheControl = "public, max-age=3600"

// mediaExtensions are tried when the requested object has no file on disk.
var mediaExtensions = []string{".png", ".jpg", ".jpeg", ".webp"}

var mediaContentTypes = map[string]string{
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".webp": "image/webp",
}

// handleMedia serves the local asset mirror. Object names follow the
// bucket layout, e.g. /media/backgrounds%2Foffice.png. Files come from
// MediaDir/<kind>/<file>; a missing image is replaced by a generated
// placeholder so a scenario can be played before its art exists.
func (s *Server) handleMedia(w http.ResponseWriter, r *http.Request) {
	kind, name, ok := splitMediaObject(r.PathValue("object"))
	if !ok {
		http.NotFound(w, r)
		return
	}

	for _, p := range s.mediaCandidates(kind, name) {
		f, err := os.Open(p) // #nosec G304 -- p is under the validated media dir
		if err != nil {
			continue
		}
		info, err := f.Stat()
		if err != nil || info.IsDir() {
			_ = f.Close()
			continue
		}
		defer f.Close()
		if ct, ok := mediaContentTypes[strings.ToLower(filepath.Ext(p))]; ok {
			w.Header().Set("Content-Type", ct)
		}
		w.Header().Set("Cache-Control", mediaCacheControl)
		http.ServeContent(w, r, filepath.Base(p), info.ModTime(), f)
		return
	}

	img := placeholder(kind, strings.TrimSuffix(name, filepath.Ext(name)))
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "public, max-age=300")
	_, _ = w.Write(buf.Bytes())
}

// splitMediaObject validates "<kind>/<file>" and rejects traversal.
func splitMediaObject(object string) (kind, name string, ok bool) {
	kind, name, found := strings.Cut(strings.Trim(object, "/"), "/")
	if !found || (kind != "backgrounds" && kind != "characters") {
		return "", "", false
	}
	clean := filepath.Clean(name)
	if clean == "" || clean == "." || strings.Contains(clean, "..") ||
		filepath.IsAbs(clean) || strings.ContainsAny(clean, `/\`) {
		return "", "", false
	}
	return kind, clean, true
}

func (s *Server) mediaCandidates(kind, name string) []string {
	base := filepath.Join(s.MediaDir, kind)
	resolved := filepath.Join(base, name)
	rel, err := filepath.Rel(base, resolved)
	if err != nil || strings.Contains(rel, "..") {
		return nil
	}
	out := []string{resolved}
	stem := strings.TrimSuffix(resolved, filepath.Ext(resolved))
	for _, ext := range mediaExtensions {
		if c := stem + ext; c != resolved {
			out = append(out, c)
		}
	}
	return out
}

const (
	blockPx              = 8
	bgW, bgH             = 256, 144
	portraitW, portraitH = 96, 144
)

// placeholder draws a blocky stand-in tinted by the asset id: a sky and
// ground split for backgrounds, a bust silhouette for characters.
func placeholder(kind, id string) image.Image {
	h := fnv.New32a()
	_, _ = h.Write([]byte(id))
	sum := h.Sum32()
	tint := color.RGBA{uint8(sum), uint8(sum >> 8), uint8(sum >> 16), 255}

	if kind == "characters" {
		img := image.NewRGBA(image.Rect(0, 0, portraitW, portraitH))
		cx := portraitW / 2
		for y := 0; y < portraitH; y += blockPx {
			for x := 0; x < portraitW; x += blockPx {
				dx, dy := x+blockPx/2-cx, y+blockPx/2-40
				head := dx*dx+dy*dy <= 24*24
				body := y >= 72 && abs(x+blockPx/2-cx) <= 40-(portraitH-y)/6
				if head || body {
					fillBlock(img, x, y, tint)
				}
			}
		}
		return img
	}

	img := image.NewRGBA(image.Rect(0, 0, bgW, bgH))
	sky := shade(tint, 0.5)
	ground := shade(tint, 0.25)
	for y := 0; y < bgH; y += blockPx {
		for x := 0; x < bgW; x += blockPx {
			c := sky
			if y >= bgH*2/3 {
				c = ground
			} else if (x/blockPx+y/blockPx)%7 == 0 {
				c = tint
			}
			fillBlock(img, x, y, c)
		}
	}
	return img
}

func fillBlock(img *image.RGBA, x0, y0 int, c color.RGBA) {
	b := img.Bounds()
	for y := y0; y < y0+blockPx && y < b.Max.Y; y++ {
		for x := x0; x < x0+blockPx && x < b.Max.X; x++ {
			img.SetRGBA(x, y, c)
		}
	}
}

func shade(c color.RGBA, f float64) color.RGBA {
	return color.RGBA{uint8(float64(c.R) * f), uint8(float64(c.G) * f), uint8(float64(c.B) * f), 255}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
