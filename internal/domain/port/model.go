package port

import (
	"context"
	"errors"

	"islet-seg/internal/domain/entity"
	"islet-seg/internal/domain/metric"
)

// ErrShapeMismatch возвращается, если размер изображения не совпадает с ожидаемым моделью.
var ErrShapeMismatch = errors.New("shape mismatch")

// Model интерфейс обученной модели сегментации
type Model interface {
	// InputShape возвращает ожидаемый размер одного изображения (H, W, C)
	InputShape() (height, width, channels int)

	// Predict превращает батч нормализованных изображений [N,H,W,C]
	// в батч вероятностей [N,H,W,1]
	Predict(ctx context.Context, batch entity.Batch) (entity.Batch, error)

	// Close освобождает ресурсы модели
	Close() error
}

// ModelLoader интерфейс загрузчика моделей
type ModelLoader interface {
	// Load загружает модель по имени файла, регистрируя пользовательские объекты
	Load(ctx context.Context, name string, registry metric.Registry) (Model, error)
}
