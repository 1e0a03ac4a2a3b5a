package onnx

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"

	ort "github.com/yalue/onnxruntime_go"

	"islet-seg/internal/domain/entity"
	"islet-seg/internal/domain/metric"
	"islet-seg/internal/domain/port"
)

var (
	envMu   sync.Mutex
	envRefs int
)

// acquireEnvironment инициализирует среду ONNX Runtime при первой загрузке модели.
func acquireEnvironment(libraryPath string) error {
	envMu.Lock()
	defer envMu.Unlock()

	if envRefs == 0 && !ort.IsInitialized() {
		if libraryPath != "" {
			ort.SetSharedLibraryPath(libraryPath)
		}
		if err := ort.InitializeEnvironment(); err != nil {
			return fmt.Errorf("failed to initialize ONNX environment: %w", err)
		}
	}
	envRefs++
	return nil
}

func releaseEnvironment() {
	envMu.Lock()
	defer envMu.Unlock()

	envRefs--
	if envRefs == 0 && ort.IsInitialized() {
		if err := ort.DestroyEnvironment(); err != nil {
			log.Printf("Error destroying ONNX environment: %v", err)
		}
	}
}

// Loader загружает модели из каталога моделей.
type Loader struct {
	ModelsDir   string
	LibraryPath string
}

// NewLoader создаёт загрузчик ONNX-моделей.
func NewLoader(modelsDir, libraryPath string) *Loader {
	return &Loader{ModelsDir: modelsDir, LibraryPath: libraryPath}
}

// Load читает метаданные, проверяет пользовательские объекты по реестру
// и открывает сессию ONNX Runtime. Реестр используется только во время вызова.
func (l *Loader) Load(ctx context.Context, name string, registry metric.Registry) (port.Model, error) {
	_ = ctx
	modelPath := filepath.Join(l.ModelsDir, name)

	meta, err := ReadMetadata(MetadataPath(modelPath))
	if err != nil {
		return nil, fmt.Errorf("load model %s: %w", name, err)
	}
	if err := registry.Require(meta.CustomObjects); err != nil {
		return nil, fmt.Errorf("load model %s: %w", name, err)
	}
	if _, err := os.Stat(modelPath); err != nil {
		return nil, fmt.Errorf("load model %s: %w", name, err)
	}

	if err := acquireEnvironment(l.LibraryPath); err != nil {
		return nil, err
	}

	model, err := newModel(modelPath, meta)
	if err != nil {
		releaseEnvironment()
		return nil, fmt.Errorf("load model %s: %w", name, err)
	}

	log.Printf("Model loaded: %s (input %v, custom objects %v)", name, meta.InputShape, meta.CustomObjects)
	return model, nil
}

// Model — сессия ONNX Runtime с заранее выделенными тензорами.
type Model struct {
	mu           sync.Mutex
	session      *ort.AdvancedSession
	meta         Metadata
	inputTensor  *ort.Tensor[float32]
	outputTensor *ort.Tensor[float32]
}

func newModel(modelPath string, meta Metadata) (*Model, error) {
	inputTensor, err := ort.NewEmptyTensor[float32](ort.NewShape(meta.InputShape...))
	if err != nil {
		return nil, fmt.Errorf("failed to create input tensor: %w", err)
	}

	outputTensor, err := ort.NewEmptyTensor[float32](ort.NewShape(meta.OutputShape...))
	if err != nil {
		inputTensor.Destroy()
		return nil, fmt.Errorf("failed to create output tensor: %w", err)
	}

	session, err := ort.NewAdvancedSession(modelPath,
		[]string{meta.InputName}, []string{meta.OutputName},
		[]ort.Value{inputTensor}, []ort.Value{outputTensor},
		nil)
	if err != nil {
		inputTensor.Destroy()
		outputTensor.Destroy()
		return nil, fmt.Errorf("failed to create ONNX session: %w", err)
	}

	return &Model{
		session:      session,
		meta:         meta,
		inputTensor:  inputTensor,
		outputTensor: outputTensor,
	}, nil
}

// InputShape возвращает (H, W, C) входного тензора.
func (m *Model) InputShape() (height, width, channels int) {
	s := m.meta.InputShape
	return int(s[1]), int(s[2]), int(s[3])
}

// Predict копирует батч во входной тензор, запускает сессию и возвращает карту вероятностей.
func (m *Model) Predict(ctx context.Context, batch entity.Batch) (entity.Batch, error) {
	if err := ctx.Err(); err != nil {
		return entity.Batch{}, err
	}
	h, w, c := m.InputShape()
	if batch.N != 1 || batch.Height != h || batch.Width != w || batch.Channels != c {
		return entity.Batch{}, fmt.Errorf("%w: model expects [1 %d %d %d], got %v", port.ErrShapeMismatch, h, w, c, batch.Shape())
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.session == nil {
		return entity.Batch{}, fmt.Errorf("model is closed")
	}

	dst := m.inputTensor.GetData()
	if len(dst) != len(batch.Data) {
		return entity.Batch{}, fmt.Errorf("%w: input tensor has %d values, batch has %d", port.ErrShapeMismatch, len(dst), len(batch.Data))
	}
	if c == 3 && m.meta.ChannelOrder == ChannelOrderBGR {
		for i := 0; i < len(dst); i += 3 {
			dst[i], dst[i+1], dst[i+2] = batch.Data[i+2], batch.Data[i+1], batch.Data[i]
		}
	} else {
		copy(dst, batch.Data)
	}

	if err := m.session.Run(); err != nil {
		return entity.Batch{}, fmt.Errorf("inference failed: %w", err)
	}

	out := m.outputTensor.GetData()
	data := make([]float32, len(out))
	copy(data, out)

	return entity.Batch{
		N:        1,
		Height:   h,
		Width:    w,
		Channels: 1,
		Data:     data,
	}, nil
}

// Close освобождает тензоры, сессию и, если это последняя модель, среду ONNX Runtime.
func (m *Model) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.session == nil {
		return nil
	}
	if m.inputTensor != nil {
		m.inputTensor.Destroy()
	}
	if m.outputTensor != nil {
		m.outputTensor.Destroy()
	}
	err := m.session.Destroy()
	m.session = nil
	releaseEnvironment()
	return err
}

var (
	_ port.Model       = (*Model)(nil)
	_ port.ModelLoader = (*Loader)(nil)
)
