package ingesthttp

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/google/uuid"

	"github.com/sir_venger/synthmod_backend/pkg/httperrors"
	"github.com/sir_venger/synthmod_backend/pkg/ingestproto"
)

type loggerKey struct{}

// corsHeaders выставляет CORS-заголовки на каждый ответ и сразу отвечает на preflight.
func corsHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("Access-Control-Allow-Origin", ingestproto.CORSAllowOrigin)
		h.Set("Access-Control-Allow-Methods", ingestproto.CORSAllowMethods)
		h.Set("Access-Control-Allow-Headers", ingestproto.CORSAllowHeaders)
		h.Set("Access-Control-Max-Age", ingestproto.CORSMaxAge)
		h.Set("Content-Type", ingestproto.ContentTypeJSON)

		if r.Method == http.MethodOptions {
			httperrors.WriteJSON(w, http.StatusOK, nil)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// observe присваивает запросу id, логирует его и снимает метрику длительности.
func (s *Server) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		id := uuid.NewString()
		w.Header().Set(ingestproto.HeaderRequestID, id)

		logger := log.With(s.logger, "request_id", id)
		level.Info(logger).Log("msg", "Received request", "method", r.Method, "url", requestTarget(r))

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		ctx := context.WithValue(r.Context(), loggerKey{}, logger)
		next.ServeHTTP(ww, r.WithContext(ctx))

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		dur := time.Since(start)
		level.Debug(logger).Log("msg", "request served", "status", status, "dur", dur)
		s.metrics.observe(r, status, dur)
	})
}

func loggerFrom(ctx context.Context, fallback log.Logger) log.Logger {
	if l, ok := ctx.Value(loggerKey{}).(log.Logger); ok {
		return l
	}
	return fallback
}

func logError(ctx context.Context, fallback log.Logger, err error) {
	level.Error(loggerFrom(ctx, fallback)).Log("err", err)
}
