package logger

import (
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
)

// Middleware writes one access line per request.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		level := "[INFO]"
		if status >= 500 {
			level = "[WARN]"
		}
		log.Printf("%s %s %s %d %dB %s", level, r.Method, r.URL.RequestURI(), status, ww.BytesWritten(), time.Since(start).Round(time.Millisecond))
	})
}
