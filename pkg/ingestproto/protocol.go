// Package ingestproto описывает HTTP-протокол сервиса приёма и проверки записей.
package ingestproto

// Пути и заголовки протокола.
const (
	UploadPath      = "/upload"
	CheckPath       = "/check"
	CheckIDParam    = "id"
	UserIDField     = "userID"
	HeaderRequestID = "X-Request-Id"
	ContentTypeJSON = "application/json"
)

// CORS-заголовки, которые сервер отдаёт в каждом ответе.
const (
	CORSAllowOrigin  = "*"
	CORSAllowMethods = "GET, POST, PUT, DELETE, OPTIONS"
	CORSAllowHeaders = "content-type, accept"
	CORSMaxAge       = "10"
)

// CheckCode — тело ответа GET /check.
type CheckCode int

const (
	CheckError    CheckCode = 0
	CheckFound    CheckCode = 1
	CheckNotFound CheckCode = 2
)
