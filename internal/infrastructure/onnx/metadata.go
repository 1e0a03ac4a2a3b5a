package onnx

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	ChannelOrderRGB = "rgb"
	ChannelOrderBGR = "bgr"
)

// Metadata описывает экспортированную модель: имена и формы тензоров,
// порядок каналов и пользовательские объекты, на которые ссылается граф.
type Metadata struct {
	InputName     string   `json:"input_name"`
	OutputName    string   `json:"output_name"`
	InputShape    []int64  `json:"input_shape"`
	OutputShape   []int64  `json:"output_shape"`
	ChannelOrder  string   `json:"channel_order"`
	CustomObjects []string `json:"custom_objects"`
}

// MetadataPath возвращает путь к файлу метаданных рядом с моделью: model.onnx -> model.json.
func MetadataPath(modelPath string) string {
	return strings.TrimSuffix(modelPath, filepath.Ext(modelPath)) + ".json"
}

// ReadMetadata читает и проверяет метаданные модели.
func ReadMetadata(path string) (Metadata, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Metadata{}, fmt.Errorf("failed to read metadata: %w", err)
	}

	var meta Metadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return Metadata{}, fmt.Errorf("failed to parse metadata: %w", err)
	}

	meta.applyDefaults()
	if err := meta.Validate(); err != nil {
		return Metadata{}, err
	}
	return meta, nil
}

func (m *Metadata) applyDefaults() {
	if m.InputName == "" {
		m.InputName = "input"
	}
	if m.OutputName == "" {
		m.OutputName = "output"
	}
	m.ChannelOrder = strings.ToLower(m.ChannelOrder)
	if m.ChannelOrder == "" {
		m.ChannelOrder = ChannelOrderBGR
	}
}

// Validate проверяет формы NHWC: вход [1,H,W,C], выход [1,H,W,1].
func (m Metadata) Validate() error {
	if len(m.InputShape) != 4 {
		return fmt.Errorf("input shape must be [N H W C], got %v", m.InputShape)
	}
	if len(m.OutputShape) != 4 {
		return fmt.Errorf("output shape must be [N H W 1], got %v", m.OutputShape)
	}
	for _, d := range m.InputShape {
		if d <= 0 {
			return fmt.Errorf("input shape has non-positive dimension: %v", m.InputShape)
		}
	}
	if m.InputShape[0] != 1 || m.OutputShape[0] != 1 {
		return fmt.Errorf("only batch size 1 is supported, got %v -> %v", m.InputShape, m.OutputShape)
	}
	if m.OutputShape[1] != m.InputShape[1] || m.OutputShape[2] != m.InputShape[2] || m.OutputShape[3] != 1 {
		return fmt.Errorf("output shape %v does not match input %v", m.OutputShape, m.InputShape)
	}
	if m.InputShape[3] != 1 && m.InputShape[3] != 3 {
		return fmt.Errorf("unsupported channel count %d", m.InputShape[3])
	}
	if m.ChannelOrder != ChannelOrderRGB && m.ChannelOrder != ChannelOrderBGR {
		return fmt.Errorf("unknown channel order %q", m.ChannelOrder)
	}
	return nil
}
