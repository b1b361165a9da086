package stubserver

import (
	"encoding/json"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"mime"
	"net/http"
	"strconv"

	"prismslink/internal/codec"
)

// maxImageSide bounds generated images.
const maxImageSide = 2048

// serveSource answers the GET URLs built for images and downloads and the
// upload POSTs.
func (s *Server) serveSource(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodPost && r.URL.Query().Get("method") == codec.MethodDoUpload {
		if err := r.ParseMultipartForm(32 << 20); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
	} else if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	sess, ok := s.sessions[r.Form.Get("sessionID")]
	var data map[string]any
	var err error
	if ok {
		data, err = s.sourceData(sess, r.Form.Get("data"), r.Form.Get("encrypted") == "true")
	}
	s.mu.Unlock()
	if !ok {
		http.Error(w, "unknown session", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	switch r.Form.Get("method") {
	case codec.MethodGenerateImage:
		s.serveImage(w, data)
	case codec.MethodGetDownload:
		s.serveDownload(w, data)
	case codec.MethodDoUpload:
		s.receiveUpload(w, r)
	default:
		http.Error(w, "unknown source method", http.StatusBadRequest)
	}
}

func (s *Server) sourceData(sess *session, raw string, encrypted bool) (map[string]any, error) {
	if encrypted {
		plain, err := s.open(sess, raw)
		if err != nil {
			return nil, fmt.Errorf("source data: %w", err)
		}
		raw = plain
	}
	data := map[string]any{}
	if raw != "" {
		if err := json.Unmarshal([]byte(raw), &data); err != nil {
			return nil, fmt.Errorf("source data: %w", err)
		}
	}
	delete(data, codec.PaddingField)
	return data, nil
}

func intField(data map[string]any, key string) int {
	switch v := data[key].(type) {
	case float64:
		return int(v)
	case string:
		n, _ := strconv.Atoi(v)
		return n
	}
	return 0
}

// serveImage renders a gradient of the requested size.
func (s *Server) serveImage(w http.ResponseWriter, data map[string]any) {
	width, height := intField(data, "width"), intField(data, "height")
	if width <= 0 || height <= 0 || width > maxImageSide || height > maxImageSide {
		http.Error(w, "bad image size", http.StatusBadRequest)
		return
	}
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 255 / width), G: uint8(y * 255 / height), B: 0x80, A: 0xff})
		}
	}
	w.Header().Set("Content-Type", "image/png")
	if err := png.Encode(w, img); err != nil {
		s.log.Warn().Err(err).Msg("encode image")
	}
}

func (s *Server) serveDownload(w http.ResponseWriter, data map[string]any) {
	name, _ := data["name"].(string)
	if name == "" {
		name = "download.json"
	}
	body, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": name}))
	_, _ = w.Write(body)
}

func (s *Server) receiveUpload(w http.ResponseWriter, r *http.Request) {
	f, hdr, err := r.FormFile("file")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	defer f.Close()
	n, err := io.Copy(io.Discard, f)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	s.log.Info().Str("file", hdr.Filename).Int64("bytes", n).Msg("upload received")
	_, _ = fmt.Fprintf(w, "received %s (%d bytes)\n", hdr.Filename, n)
}
