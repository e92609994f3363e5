package middleware

import (
	"bytes"
	"net/http"
	"sort"
	"strings"
	"time"

	"census-otp-service/internal/infrastructure/cache"

	"github.com/gin-gonic/gin"
)

// CacheConfig configures the response cache middleware
type CacheConfig struct {
	Expiration time.Duration             // zero disables caching
	Methods    []string                  // methods eligible for caching
	KeyFunc    func(*gin.Context) string // cache key for a request
}

// CacheKey builds "<path>?<sorted query>". Handlers purge by the
// "<path>?" prefix, so the key must stay unhashed.
func CacheKey(c *gin.Context) string {
	queryParams := c.Request.URL.Query()
	queryKeys := make([]string, 0, len(queryParams))
	for key := range queryParams {
		queryKeys = append(queryKeys, key)
	}
	sort.Strings(queryKeys)

	var b strings.Builder
	b.WriteString(c.Request.URL.Path)
	b.WriteString("?")
	for _, key := range queryKeys {
		values := append([]string(nil), queryParams[key]...)
		sort.Strings(values)
		for _, value := range values {
			b.WriteString(key + "=" + value + "&")
		}
	}
	return b.String()
}

// Cache serves 200 responses from store until they expire
func Cache(store *cache.ResponseCache, cfg CacheConfig) gin.HandlerFunc {
	if len(cfg.Methods) == 0 {
		cfg.Methods = []string{http.MethodGet}
	}
	if cfg.KeyFunc == nil {
		cfg.KeyFunc = CacheKey
	}

	return func(c *gin.Context) {
		if cfg.Expiration <= 0 || store == nil || !methodAllowed(cfg.Methods, c.Request.Method) {
			c.Next()
			return
		}

		key := cfg.KeyFunc(c)
		if status, contentType, content, ok := store.Get(key); ok {
			c.Header("X-Cache", "HIT")
			c.Data(status, contentType, content)
			c.Abort()
			return
		}

		gen := store.Generation()
		writer := &responseWriter{
			ResponseWriter: c.Writer,
			body:           &bytes.Buffer{},
		}
		c.Writer = writer
		c.Header("X-Cache", "MISS")

		c.Next()

		if writer.Status() == http.StatusOK {
			store.SetIfUnchanged(key, http.StatusOK, writer.Header().Get("Content-Type"), writer.body.Bytes(), cfg.Expiration, gen)
		}
	}
}

func methodAllowed(methods []string, method string) bool {
	for _, m := range methods {
		if m == method {
			return true
		}
	}
	return false
}

// responseWriter copies the body while writing it through
type responseWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w *responseWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *responseWriter) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}
