package middleware

import (
	"bytes"
	"strings"

	"github.com/andybalholm/brotli"
	"github.com/gin-gonic/gin"
)

// BrotliConfig tunes the compression middleware.
type BrotliConfig struct {
	Quality   int
	MinLength int
}

// DefaultBrotliConfig compresses bodies of 1 KiB and more at the default level.
var DefaultBrotliConfig = BrotliConfig{
	Quality:   brotli.DefaultCompression,
	MinLength: 1024,
}

// bufferedWriter holds the body until the handler chain finishes so the
// compression decision can be made on the full length.
type bufferedWriter struct {
	gin.ResponseWriter
	body bytes.Buffer
}

func (w *bufferedWriter) Write(data []byte) (int, error) {
	return w.body.Write(data)
}

func (w *bufferedWriter) WriteString(s string) (int, error) {
	return w.body.WriteString(s)
}

// Brotli compresses responses for clients that accept "br".
func Brotli(cfg BrotliConfig) gin.HandlerFunc {
	if cfg.Quality < brotli.BestSpeed || cfg.Quality > brotli.BestCompression {
		cfg.Quality = brotli.DefaultCompression
	}
	if cfg.MinLength <= 0 {
		cfg.MinLength = DefaultBrotliConfig.MinLength
	}

	return func(c *gin.Context) {
		if isStreaming(c) || !acceptsBrotli(c.GetHeader("Accept-Encoding")) {
			c.Next()
			return
		}

		out := c.Writer
		bw := &bufferedWriter{ResponseWriter: out}
		c.Writer = bw
		c.Next()
		c.Writer = out

		if bw.body.Len() == 0 {
			return
		}
		out.Header().Add("Vary", "Accept-Encoding")
		if bw.body.Len() < cfg.MinLength || out.Header().Get("Content-Encoding") != "" {
			_, _ = out.Write(bw.body.Bytes())
			return
		}

		out.Header().Set("Content-Encoding", "br")
		out.Header().Del("Content-Length")
		zw := brotli.NewWriterLevel(out, cfg.Quality)
		if _, err := zw.Write(bw.body.Bytes()); err != nil {
			_ = c.Error(err)
		}
		if err := zw.Close(); err != nil {
			_ = c.Error(err)
		}
	}
}

// isStreaming reports requests whose responses must not be buffered:
// websocket upgrades and server-sent events.
func isStreaming(c *gin.Context) bool {
	return strings.EqualFold(c.GetHeader("Upgrade"), "websocket") ||
		strings.Contains(c.GetHeader("Accept"), "text/event-stream")
}

func acceptsBrotli(header string) bool {
	for _, enc := range strings.Split(header, ",") {
		name := strings.TrimSpace(strings.SplitN(enc, ";", 2)[0])
		if strings.EqualFold(name, "br") {
			return true
		}
	}
	return false
}
