package port

import (
	"context"

	"islet-seg/internal/domain/entity"
)

// DatasetProvider интерфейс источника выборок
type DatasetProvider interface {
	// Load возвращает обучающую, валидационную и тестовую выборки
	Load(ctx context.Context) (entity.Split, error)
}
