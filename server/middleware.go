package server

import (
	"bufio"
	"crypto/subtle"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/andybalholm/brotli"
)

// statusRecorder remembers the status code written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Unwrap() http.ResponseWriter {
	return r.ResponseWriter
}

// Hijack lets the websocket upgrader take over the connection.
func (r *statusRecorder) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	r.status = http.StatusSwitchingProtocols
	return http.NewResponseController(r.ResponseWriter).Hijack()
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.Info("request",
			"remote", r.RemoteAddr,
			"method", r.Method,
			"url", r.URL.String(),
			"status", rec.status,
			"duration", time.Since(start),
		)
	})
}

// compressWriter picks brotli or gzip when the response starts. Bodyless
// and image responses pass through untouched.
type compressWriter struct {
	http.ResponseWriter
	r       *http.Request
	w       io.WriteCloser
	started bool
}

func (c *compressWriter) WriteHeader(code int) {
	if c.started {
		return
	}
	c.started = true

	h := c.Header()
	compressible := code == http.StatusOK || code == http.StatusCreated ||
		code >= http.StatusBadRequest
	if compressible && c.r.Method != http.MethodHead && h.Get("Content-Encoding") == "" &&
		!strings.HasPrefix(h.Get("Content-Type"), "image/") {
		c.w = brotli.HTTPCompressor(c.ResponseWriter, c.r)
		h.Del("Content-Length")
	}
	c.ResponseWriter.WriteHeader(code)
}

func (c *compressWriter) Write(b []byte) (int, error) {
	if !c.started {
		if c.Header().Get("Content-Type") == "" {
			c.Header().Set("Content-Type", http.DetectContentType(b))
		}
		c.WriteHeader(http.StatusOK)
	}
	if c.w == nil {
		return c.ResponseWriter.Write(b)
	}
	return c.w.Write(b)
}

func (c *compressWriter) Unwrap() http.ResponseWriter {
	return c.ResponseWriter
}

func (c *compressWriter) close() error {
	if c.w == nil {
		return nil
	}
	return c.w.Close()
}

func compress(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// The websocket handshake hijacks the connection.
		if strings.HasPrefix(r.URL.Path, "/ws/") {
			next.ServeHTTP(w, r)
			return
		}
		cw := &compressWriter{ResponseWriter: w, r: r}
		defer cw.close()
		next.ServeHTTP(cw, r)
	})
}

// requireAdmin guards the admin API with the configured bearer token. The
// admin API does not exist when no token is configured.
func (s *Server) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.adminToken == "" {
			respondWithError(w, http.StatusNotFound, "not found")
			return
		}
		token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		if !ok || subtle.ConstantTimeCompare([]byte(token), []byte(s.adminToken)) != 1 {
			w.Header().Set("WWW-Authenticate", `Bearer realm="healer"`)
			respondWithError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		next.ServeHTTP(w, r)
	})
}
