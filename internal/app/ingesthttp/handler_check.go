package ingesthttp

import (
	"net/http"

	"github.com/sir_venger/synthmod_backend/pkg/httperrors"
	"github.com/sir_venger/synthmod_backend/pkg/ingestproto"
)

// check отвечает кодом наличия: 0 — ошибка или нет id, 1 — найден, 2 — не найден.
func (s *Server) check(w http.ResponseWriter, r *http.Request) {
	target := ParseTarget(requestTarget(r))
	id, ok := target.Params.Get(ingestproto.CheckIDParam)

	res, err := s.records.Check(r.Context(), id, ok)
	if err != nil {
		logError(r.Context(), s.logger, err)
	}

	httperrors.WriteJSON(w, res.Status(), res.Code())
}
