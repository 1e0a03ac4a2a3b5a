package main

import (
	"context"
	"errors"
	"log"
	"os/signal"
	"path/filepath"
	"syscall"

	"islet-seg/config"
	telegram "islet-seg/internal/api"
	"islet-seg/internal/container"
	"islet-seg/internal/domain/metric"
	"islet-seg/internal/infrastructure/onnx"
	"islet-seg/internal/infrastructure/storage"
	"islet-seg/internal/infrastructure/vision"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if cfg.TelegramToken == "" {
		log.Fatal("TELEGRAM_TOKEN is required")
	}
	if cfg.ModelName == "" {
		log.Fatal("MODEL_NAME is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Загружаем модель один раз на всё время работы бота
	model, err := onnx.NewLoader(cfg.ModelsDir, cfg.OnnxRuntimeLib).Load(ctx, cfg.ModelName, metric.DefaultRegistry())
	if err != nil {
		log.Fatalf("Failed to load model: %v", err)
	}
	defer model.Close()

	results, err := storage.NewResultStore(cfg.ResultsDir)
	if err != nil {
		log.Fatalf("Failed to create results store: %v", err)
	}

	// Создаём хранилище пользователей
	userRepo := storage.NewMemoryUserRepository()

	// Собираем сервисы приложения
	appContainer := container.New(userRepo, model, results, vision.NewContourMeasurer())
	appContainer.SegmentationService.WithThreshold(float32(cfg.MaskThreshold))

	// Создаём бота
	bot, err := telegram.NewBot(cfg.TelegramToken, appContainer, filepath.Join(cfg.ResultsDir, "uploads"))
	if err != nil {
		log.Fatalf("Failed to create bot: %v", err)
	}

	log.Println("Bot is running...")
	if err := bot.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatalf("Bot error: %v", err)
	}
}
