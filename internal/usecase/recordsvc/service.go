package recordsvc

import (
	"context"

	"github.com/go-kit/log"

	"github.com/sir_venger/synthmod_backend/internal/models"
)

// Service объединяет запись пейлоадов и проверку наличия идентификаторов.
type Service interface {
	Store(ctx context.Context, rec models.Record) error
	Check(ctx context.Context, id string, present bool) (models.PresenceResult, error)
}

type Deps struct {
	DataDir string
	Logger  log.Logger
	Metrics *Metrics
	// UniqueFilenames добавляет uuid-суффикс к имени файла, исключая перезапись
	// при совпадении timestamp и userID.
	UniqueFilenames bool
}

type Records struct {
	Deps
}

// New конструирует сервис записей поверх каталога данных.
func New(deps Deps) *Records {
	if deps.Logger == nil {
		deps.Logger = log.NewNopLogger()
	}
	return &Records{Deps: deps}
}

var _ Service = (*Records)(nil)
