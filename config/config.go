package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	ModelsDir      string
	ResultsDir     string
	DatasetDir     string
	ModelName      string
	OnnxRuntimeLib string
	ImageHeight    int
	ImageWidth     int
	MaskThreshold  float64
	Seed           int64
	ValidSplit     float64
	TestSplit      float64
	SaveComposite  bool
	TelegramToken  string
}

func Load() (*Config, error) {
	// Загружаем .env файл (игнорируем ошибку если файла нет)
	_ = godotenv.Load()

	cfg := &Config{
		ModelsDir:      getString("MODELS_DIR", "files"),
		ResultsDir:     getString("RESULTS_DIR", "results"),
		DatasetDir:     getString("DATASET_DIR", "data"),
		ModelName:      os.Getenv("MODEL_NAME"),
		OnnxRuntimeLib: os.Getenv("ONNXRUNTIME_LIB"),
		TelegramToken:  os.Getenv("TELEGRAM_TOKEN"),
	}

	var err error
	if cfg.ImageHeight, err = getInt("IMAGE_HEIGHT", 256); err != nil {
		return nil, err
	}
	if cfg.ImageWidth, err = getInt("IMAGE_WIDTH", 256); err != nil {
		return nil, err
	}
	if cfg.MaskThreshold, err = getFloat("MASK_THRESHOLD", 0.5); err != nil {
		return nil, err
	}
	seed, err := getInt("SEED", 42)
	if err != nil {
		return nil, err
	}
	cfg.Seed = int64(seed)
	if cfg.ValidSplit, err = getFloat("VALID_SPLIT", 0.1); err != nil {
		return nil, err
	}
	if cfg.TestSplit, err = getFloat("TEST_SPLIT", 0.1); err != nil {
		return nil, err
	}
	if cfg.SaveComposite, err = getBool("SAVE_COMPOSITE", false); err != nil {
		return nil, err
	}

	if cfg.ImageHeight <= 0 || cfg.ImageWidth <= 0 {
		return nil, fmt.Errorf("image size must be positive, got %dx%d", cfg.ImageWidth, cfg.ImageHeight)
	}
	if cfg.MaskThreshold <= 0 || cfg.MaskThreshold >= 1 {
		return nil, fmt.Errorf("MASK_THRESHOLD must be in (0, 1), got %v", cfg.MaskThreshold)
	}

	return cfg, nil
}

func getString(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getInt(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func getFloat(key string, def float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return f, nil
}

func getBool(key string, def bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("invalid %s: %w", key, err)
	}
	return b, nil
}
