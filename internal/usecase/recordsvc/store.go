package recordsvc

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-kit/log/level"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/sir_venger/synthmod_backend/internal/models"
)

const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// Store сохраняет тело запроса как {timestamp}-{userID}.json в каталоге данных.
// Две записи с одинаковыми timestamp и userID перезаписывают друг друга,
// если не включён UniqueFilenames.
func (s *Records) Store(ctx context.Context, rec models.Record) error {
	if err := validateUserID(rec.UserID); err != nil {
		return err
	}

	if err := ctx.Err(); err != nil {
		return err
	}
	// Листинг остался от проверки userID по списку каталогов; результат не используется,
	// но недоступный каталог всё так же даёт 500.
	if _, err := os.ReadDir(s.DataDir); err != nil {
		return s.storeFailed("list data dir", err)
	}

	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.MkdirAll(s.DataDir, dirPerm); err != nil {
		return s.storeFailed("ensure data dir", err)
	}

	name := s.fileName(rec)
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(s.DataDir, name), rec.Body, filePerm); err != nil {
		return s.storeFailed("write record", err)
	}

	s.Metrics.recordStored(len(rec.Body))
	level.Info(s.Logger).Log(
		"msg", "Successfully stored data",
		"timestamp", rec.ServerTimestamp,
		"file", name,
	)

	return nil
}

func (s *Records) fileName(rec models.Record) string {
	if !s.UniqueFilenames {
		return rec.FileName()
	}
	base := strings.TrimSuffix(rec.FileName(), ".json")
	return base + "-" + uuid.NewString() + ".json"
}

func (s *Records) storeFailed(op string, err error) error {
	s.Metrics.storeFailed()
	return &models.StorageError{Op: op, Err: errors.WithStack(err)}
}

// validateUserID не даёт userID выйти за пределы каталога данных.
func validateUserID(id string) error {
	if id == "." || id == ".." || strings.ContainsAny(id, `/\`) || strings.ContainsRune(id, 0) {
		return &models.ValidationError{Msg: "Invalid field 'userID'", Err: models.ErrUnsafeUserID}
	}
	return nil
}
