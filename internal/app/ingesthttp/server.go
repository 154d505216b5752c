package ingesthttp

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-kit/log"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/sir_venger/synthmod_backend/internal/models"
	"github.com/sir_venger/synthmod_backend/internal/usecase/recordsvc"
	"github.com/sir_venger/synthmod_backend/pkg/httperrors"
	"github.com/sir_venger/synthmod_backend/pkg/ingestproto"
)

type Deps struct {
	Records recordsvc.Service
	Logger  log.Logger
	// Registerer получает гистограмму длительности запросов; nil — без метрик.
	Registerer prometheus.Registerer
	// Now задаёт серверное время приёма загрузки; по умолчанию time.Now.
	Now func() time.Time
}

// Server обслуживает приём записей и проверку наличия.
type Server struct {
	records recordsvc.Service
	logger  log.Logger
	now     func() time.Time
	metrics *httpMetrics
}

// New создаёт HTTP-обработчик сервиса поверх сервиса записей.
func New(deps Deps) http.Handler {
	srv := &Server{
		records: deps.Records,
		logger:  deps.Logger,
		now:     deps.Now,
		metrics: newHTTPMetrics(deps.Registerer),
	}
	if srv.logger == nil {
		srv.logger = log.NewNopLogger()
	}
	if srv.now == nil {
		srv.now = time.Now
	}

	return srv.routes()
}

// routes регистрирует обработчики; OPTIONS перехватывается в corsHeaders до маршрутизации.
func (s *Server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(s.observe, middleware.Recoverer, corsHeaders)

	r.Post(ingestproto.UploadPath, s.upload)
	r.Get(ingestproto.CheckPath, s.check)

	r.NotFound(s.unsupported)
	r.MethodNotAllowed(s.unsupported)

	return r
}

// unsupported отвечает 404 на любую комбинацию метода и пути вне протокола.
func (s *Server) unsupported(w http.ResponseWriter, r *http.Request) {
	var msg string
	switch r.Method {
	case http.MethodPost:
		msg = fmt.Sprintf("Unsupported POST URL '%s'", requestTarget(r))
	case http.MethodGet:
		msg = fmt.Sprintf("Unsupported GET URL '%s'", requestTarget(r))
	default:
		msg = fmt.Sprintf("Unsupported request method '%s'", r.Method)
	}

	s.fail(w, r, &models.RouteError{Msg: msg})
}

// fail пишет ошибку клиенту; серверные ошибки дополнительно логируются.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := httperrors.Status(err)
	if status >= http.StatusInternalServerError {
		logError(r.Context(), s.logger, err)
	}
	httperrors.WriteJSON(w, status, err.Error())
}

// requestTarget возвращает сырую цель запроса в том виде, в каком её прислал клиент.
func requestTarget(r *http.Request) string {
	if r.RequestURI != "" {
		return r.RequestURI
	}
	return r.URL.RequestURI()
}
