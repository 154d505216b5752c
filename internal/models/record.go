package models

import (
	"net/http"
	"strconv"
)

// Record — один сохраняемый JSON-пейлоад с серверной меткой времени.
type Record struct {
	// ServerTimestamp в миллисекундах с эпохи, присваивается при получении запроса.
	ServerTimestamp int64
	UserID          string
	Body            []byte
}

// FileName возвращает имя файла записи: {timestamp}-{userID}.json.
func (r Record) FileName() string {
	return strconv.FormatInt(r.ServerTimestamp, 10) + "-" + r.UserID + ".json"
}

// PresenceResult — исход проверки наличия идентификатора в каталоге данных.
type PresenceResult int

const (
	PresenceBadRequest PresenceResult = iota
	PresenceFound
	PresenceNotFound
	PresenceError
)

// Status возвращает HTTP-код ответа для результата проверки.
func (p PresenceResult) Status() int {
	switch p {
	case PresenceBadRequest:
		return http.StatusBadRequest
	case PresenceFound, PresenceNotFound:
		return http.StatusOK
	default:
		return http.StatusInternalServerError
	}
}

// Code возвращает тело ответа: 0 — ошибка, 1 — найден, 2 — не найден.
func (p PresenceResult) Code() int {
	switch p {
	case PresenceFound:
		return 1
	case PresenceNotFound:
		return 2
	default:
		return 0
	}
}

func (p PresenceResult) String() string {
	switch p {
	case PresenceBadRequest:
		return "bad_request"
	case PresenceFound:
		return "found"
	case PresenceNotFound:
		return "not_found"
	default:
		return "error"
	}
}
