package opshttp

import (
	"encoding/json"
	"net/http"
	"os"
)

// healthStats — payload ответа /health.
type healthStats struct {
	OK         bool  `json:"ok"`
	Records    int   `json:"records"`
	TotalBytes int64 `json:"total_bytes"`
}

// health отдаёт число записей и их суммарный размер в каталоге данных.
// Недоступный каталог — 500, как и у основных эндпоинтов.
func (a *Server) health(w http.ResponseWriter, _ *http.Request) {
	entries, err := os.ReadDir(a.dataDir)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	var stats healthStats
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		info, err := e.Info()
		if err != nil {
			// файл мог исчезнуть между листингом и stat
			continue
		}
		stats.Records++
		stats.TotalBytes += info.Size()
	}
	stats.OK = true

	w.Header().Set("Content-Type", "application/json")
	if err = json.NewEncoder(w).Encode(stats); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}
