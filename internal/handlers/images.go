package handlers

import (
	"image"
	"image/jpeg"
	_ "image/png"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"github.com/nfnt/resize"
)

// ImageHandler serves downscaled article images so the step pages don't
// ship full-size product shots.
type ImageHandler struct {
	StaticDir string
}

// Thumbnail resizes an image from the static images directory to the
// requested width. Only bare filenames are accepted; path components
// are stripped.
func (h *ImageHandler) Thumbnail(w http.ResponseWriter, r *http.Request) {
	name := filepath.Base(r.URL.Query().Get("name"))
	if name == "" || name == "." || name == string(filepath.Separator) {
		http.Error(w, "Missing image name", http.StatusBadRequest)
		return
	}

	width := 160
	if ws := r.URL.Query().Get("w"); ws != "" {
		if v, err := strconv.Atoi(ws); err == nil && v >= 16 && v <= 1024 {
			width = v
		}
	}

	f, err := os.Open(filepath.Join(h.StaticDir, "images", name))
	if err != nil {
		http.Error(w, "Image not found", http.StatusNotFound)
		return
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		http.Error(w, "Invalid image", http.StatusUnprocessableEntity)
		return
	}

	thumb := resize.Resize(uint(width), 0, img, resize.Lanczos3)

	w.Header().Set("Content-Type", "image/jpeg")
	w.Header().Set("Cache-Control", "public, max-age=86400")
	jpeg.Encode(w, thumb, &jpeg.Options{Quality: 85})
}
