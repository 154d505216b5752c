package ingesthttp

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/sir_venger/synthmod_backend/internal/models"
	"github.com/sir_venger/synthmod_backend/pkg/httperrors"
	"github.com/sir_venger/synthmod_backend/pkg/ingestproto"
)

// upload принимает JSON-тело целиком и сохраняет его без изменений.
// Цель POST сравнивается целиком: /upload с query-строкой — неподдерживаемый URL.
func (s *Server) upload(w http.ResponseWriter, r *http.Request) {
	if requestTarget(r) != ingestproto.UploadPath {
		s.unsupported(w, r)
		return
	}

	// Время фиксируется при приёме, до чтения тела.
	ts := s.now().UnixMilli()

	body, err := io.ReadAll(r.Body)
	if err != nil {
		s.fail(w, r, &models.ValidationError{Msg: "Error reading body", Err: err})
		return
	}

	userID, err := extractUserID(body)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	rec := models.Record{ServerTimestamp: ts, UserID: userID, Body: body}
	if err = s.records.Store(r.Context(), rec); err != nil {
		s.fail(w, r, err)
		return
	}

	httperrors.WriteJSON(w, http.StatusOK, nil)
}

// extractUserID достаёт строковое поле userID из JSON-объекта; остальное содержимое не проверяется.
func extractUserID(body []byte) (string, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return "", &models.ValidationError{Msg: "Invalid JSON body", Err: err}
	}

	raw, ok := fields[ingestproto.UserIDField]
	if !ok {
		return "", &models.ValidationError{Msg: "Missing field 'userID'"}
	}

	var userID string
	if err := json.Unmarshal(raw, &userID); err != nil {
		return "", &models.ValidationError{Msg: "Field 'userID' must be a string"}
	}
	if userID == "" {
		return "", &models.ValidationError{Msg: "Missing field 'userID'"}
	}

	return userID, nil
}
