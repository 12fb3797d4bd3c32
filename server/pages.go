package server

import (
	"bytes"
	"errors"
	"io"
	"io/fs"
	"math/rand/v2"
	"mime"
	"net/http"
	"path"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/healerlk/healer/canvas"
	field "github.com/healerlk/healer/particle-field"
	"github.com/healerlk/healer/site"
)

const (
	ogWidth  = 1200
	ogHeight = 630
	ogFrames = 120
)

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	services, err := s.store.ActiveServices()
	if err != nil {
		s.logger.Error("listing services", "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	testimonials, err := s.store.ApprovedTestimonials()
	if err != nil {
		s.logger.Error("listing testimonials", "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	posts, err := s.store.PublishedPosts("")
	if err != nil {
		s.logger.Error("listing tips", "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	page, err := site.NewPage(s.site, services, testimonials, posts, s.now())
	if err != nil {
		s.logger.Error("building page", "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	if s.field != nil {
		page.FieldSocket = "/ws/field"
	}

	var buf bytes.Buffer
	if err := s.renderer.Render(&buf, page); err != nil {
		s.logger.Error("rendering page", "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(buf.Bytes())
}

func (s *Server) handleStatic(w http.ResponseWriter, r *http.Request) {
	name := path.Clean(r.PathValue("path"))
	if !fs.ValidPath(name) || name == "." {
		http.NotFound(w, r)
		return
	}

	f, err := s.static.Open(name)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			s.logger.Error("opening static file", "name", name, "error", err)
		}
		http.NotFound(w, r)
		return
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil || info.IsDir() {
		http.NotFound(w, r)
		return
	}
	content, ok := f.(io.ReadSeeker)
	if !ok {
		http.NotFound(w, r)
		return
	}

	ctype := mime.TypeByExtension(path.Ext(name))
	if ctype == "" {
		mt, err := mimetype.DetectReader(content)
		if err != nil {
			s.logger.Error("sniffing static file", "name", name, "error", err)
			http.Error(w, "internal server error", http.StatusInternalServerError)
			return
		}
		ctype = mt.String()
		if _, err := content.Seek(0, io.SeekStart); err != nil {
			http.Error(w, "internal server error", http.StatusInternalServerError)
			return
		}
	}
	w.Header().Set("Content-Type", ctype)
	http.ServeContent(w, r, name, info.ModTime(), content)
}

// handleOGImage serves a still of the snow field, rendered once.
func (s *Server) handleOGImage(w http.ResponseWriter, r *http.Request) {
	s.ogOnce.Do(func() {
		rnd := rand.New(rand.NewPCG(1, 2))
		pointer := field.Point{X: ogWidth / 2, Y: ogHeight / 2}
		c, err := canvas.Snapshot(ogWidth, ogHeight, ogFrames, pointer, s.fieldCfg, rnd, canvas.DefaultBackground)
		if err != nil {
			s.ogErr = err
			return
		}
		defer c.Close()

		var buf bytes.Buffer
		if err := c.EncodePNG(&buf); err != nil {
			s.ogErr = err
			return
		}
		s.ogImage = buf.Bytes()
	})
	if s.ogErr != nil {
		s.logger.Error("rendering og image", "error", s.ogErr)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "public, max-age=86400")
	http.ServeContent(w, r, "og-image.png", time.Time{}, bytes.NewReader(s.ogImage))
}

func (s *Server) handleSitemap(w http.ResponseWriter, r *http.Request) {
	doc, err := s.site.Sitemap(s.now())
	if err != nil {
		s.logger.Error("building sitemap", "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	w.Write(doc)
}

func (s *Server) handleRobots(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	io.WriteString(w, s.site.Robots())
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Ping(); err != nil {
		s.logger.Error("health check", "error", err)
		respondWithError(w, http.StatusServiceUnavailable, "database unavailable")
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
