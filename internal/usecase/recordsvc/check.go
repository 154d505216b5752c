package recordsvc

import (
	"context"
	"os"

	"github.com/sir_venger/synthmod_backend/internal/models"
)

// Check сообщает, есть ли в каталоге данных запись (файл или подкаталог) с именем id.
// Пустой id считается отсутствующим.
func (s *Records) Check(ctx context.Context, id string, present bool) (models.PresenceResult, error) {
	if !present || id == "" {
		s.Metrics.presenceChecked(models.PresenceBadRequest)
		return models.PresenceBadRequest, nil
	}

	if err := ctx.Err(); err != nil {
		s.Metrics.presenceChecked(models.PresenceError)
		return models.PresenceError, err
	}

	entries, err := os.ReadDir(s.DataDir)
	if err != nil {
		s.Metrics.presenceChecked(models.PresenceError)
		return models.PresenceError, &models.StorageError{Op: "list data dir", Err: err}
	}

	for _, e := range entries {
		if e.Name() == id {
			s.Metrics.presenceChecked(models.PresenceFound)
			return models.PresenceFound, nil
		}
	}

	s.Metrics.presenceChecked(models.PresenceNotFound)
	return models.PresenceNotFound, nil
}
