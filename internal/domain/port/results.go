package port

import "islet-seg/internal/domain/entity"

// ResultPersister интерфейс хранилища результатов
type ResultPersister interface {
	// SavePrediction сохраняет предсказанную маску без потерь (TIFF)
	SavePrediction(name string, pred entity.Mask) (string, error)

	// SaveComposite сохраняет склейку [снимок | эталон | предсказание]
	SaveComposite(name string, img, truth entity.Image, pred entity.Mask) (string, error)

	// SaveImage сохраняет снимок для просмотра (PNG)
	SaveImage(name string, img entity.Image) (string, error)

	// SaveMask сохраняет маску для просмотра (PNG)
	SaveMask(name string, mask entity.Mask) (string, error)

	// WriteScores записывает таблицу метрик в CSV
	WriteScores(modelID string, records []entity.ScoreRecord, mean entity.ScoreRecord) (string, error)
}
