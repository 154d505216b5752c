// Package ingesthttp реализует внешний HTTP-интерфейс сервиса приёма записей.
// Эндпоинты:
//   - OPTIONS * — CORS preflight, 200 без тела.
//   - POST /upload — сохраняет JSON-тело как {timestamp}-{userID}.json в каталоге данных.
//   - GET /check?id=X — 1, если в каталоге есть запись с именем X, иначе 2; 0 при ошибке.
//
// Любая другая комбинация метода и пути отвечает 404 с пояснением. Каждый ответ
// несёт фиксированные CORS-заголовки и Content-Type: application/json.
package ingesthttp
