// Package middleware wraps the router with request logging, panic recovery
// and a per-request timeout.
package middleware

import (
	"encoding/json"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/aanand-mishra/professores-api/internal/logger"
	"github.com/aanand-mishra/professores-api/internal/utils/response"
)

// Middleware decorates an http.Handler.
type Middleware func(http.Handler) http.Handler

// Chain applies mws so that the first one is the outermost.
func Chain(h http.Handler, mws ...Middleware) http.Handler {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// Logger logs one line per request with method, path, status and duration.
func Logger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		entry := logger.Log.WithFields(logrus.Fields{
			"method":   r.Method,
			"path":     r.URL.Path,
			"status":   rec.status,
			"duration": time.Since(start).String(),
			"ip":       r.RemoteAddr,
		})
		if rec.status >= http.StatusInternalServerError {
			entry.Warn("request completed")
			return
		}
		entry.Info("request completed")
	})
}

// Recover turns a panic in a handler into a 500 and logs the stack.
func Recover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if p := recover(); p != nil {
				if p == http.ErrAbortHandler {
					panic(p)
				}
				logger.Log.WithFields(logrus.Fields{
					"panic":      p,
					"method":     r.Method,
					"path":       r.URL.Path,
					"user_agent": r.UserAgent(),
					"stack":      string(debug.Stack()),
				}).Error("panic recovered")

				response.WriteJSON(w, http.StatusInternalServerError,
					response.Response{Message: response.MsgServerError, Error: "internal server error"})
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// Timeout cancels the request context after d and answers 503 with a JSON
// body if the handler has not written a response by then.
func Timeout(d time.Duration) Middleware {
	body, _ := json.Marshal(response.Message(response.MsgRequestTimeout))
	return func(next http.Handler) http.Handler {
		return jsonContentType(http.TimeoutHandler(next, d, string(body)))
	}
}

// jsonContentType presets the content type on the outer writer, which is the
// one http.TimeoutHandler writes its timeout body to.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		next.ServeHTTP(w, r)
	})
}
