package models

import (
	"errors"
	"fmt"
)

var ErrUnsafeUserID = errors.New("userID must not contain path separators")

// StorageError оборачивает сбой файловой системы при листинге, создании каталога или записи.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// ValidationError описывает отсутствующее или некорректное поле запроса.
type ValidationError struct {
	Msg string
	Err error
}

func (e *ValidationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *ValidationError) Unwrap() error { return e.Err }

// RouteError — неподдерживаемая комбинация метода и пути.
type RouteError struct {
	Msg string
}

func (e *RouteError) Error() string { return e.Msg }
