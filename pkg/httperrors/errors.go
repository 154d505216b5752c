package httperrors

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sir_venger/synthmod_backend/internal/models"
	"github.com/sir_venger/synthmod_backend/pkg/ingestproto"
)

// Status подбирает HTTP-код по типу ошибки.
func Status(err error) int {
	var (
		ve *models.ValidationError
		re *models.RouteError
	)
	switch {
	case errors.As(err, &ve):
		return http.StatusBadRequest
	case errors.As(err, &re):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// Write отдаёт ошибку JSON-строкой с подобранным статусом.
func Write(w http.ResponseWriter, err error) {
	WriteJSON(w, Status(err), err.Error())
}

// WriteJSON пишет статус и тело, сериализованное в JSON; nil-тело оставляет ответ пустым.
// &, < и > не экранируются.
func WriteJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", ingestproto.ContentTypeJSON)
	if body == nil {
		w.WriteHeader(status)
		return
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(body); err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.WriteHeader(status)
	_, _ = w.Write(bytes.TrimSuffix(buf.Bytes(), []byte("\n")))
}
