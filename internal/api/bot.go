package telegram

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"islet-seg/internal/container"
	"islet-seg/internal/domain/entity"
	"islet-seg/internal/domain/port"
)

const (
	msgStart = `👋 Привет! Я бот для сегментации островков на микроскопических снимках.

📸 Отправьте мне снимок, и я построю маску и измерю найденные области.

📋 Команды:
/segment — начать сегментацию снимка
/help — справка
/cancel — отменить текущую операцию`

	msgHelp = `ℹ️ Как пользоваться ботом:

1️⃣ Отправьте /segment
2️⃣ Пришлите снимок (фото или файлом без сжатия)
3️⃣ Вы получите маску и сводку по найденным областям

💡 Рекомендации:
• Файлом без сжатия точность выше
• Поддерживаются JPEG, PNG, TIFF, BMP

📋 Команды:
/segment — начать сегментацию
/cancel — отменить операцию`

	msgAwaitingImage   = "📸 Отправьте снимок для сегментации."
	msgCancelled       = "❌ Операция отменена. Отправьте /segment для нового снимка."
	msgSendImage       = "📸 Сначала отправьте /segment, затем снимок."
	msgUnknownCommand  = "❓ Неизвестная команда. Используйте /help для справки."
	msgProcessing      = "⏳ Обрабатываю снимок..."
	msgNoROIs          = "✅ Области интереса не обнаружены."
	msgProcessingError = "⚠️ Не удалось обработать снимок. Попробуйте другой файл."
)

// Bot представляет Telegram-бота
type Bot struct {
	api       *tgbotapi.BotAPI
	app       *container.Container
	uploadDir string
}

// NewBot создаёт нового бота
func NewBot(token string, app *container.Container, uploadDir string) (*Bot, error) {
	if err := os.MkdirAll(uploadDir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}

	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}

	log.Printf("Authorized on account %s", api.Self.UserName)

	return &Bot{
		api:       api,
		app:       app,
		uploadDir: uploadDir,
	}, nil
}

// Run запускает основной цикл обработки сообщений
func (b *Bot) Run(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)
	defer b.api.StopReceivingUpdates()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			if update.Message == nil {
				continue
			}
			b.handleMessage(ctx, update.Message)
		}
	}
}

// handleMessage обрабатывает входящее сообщение
func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	user, err := b.app.UserService.Get(ctx, msg.From.ID, msg.Chat.ID)
	if err != nil {
		log.Printf("Error getting user: %v", err)
		return
	}

	// Обработка команд
	if msg.IsCommand() {
		b.handleCommand(ctx, msg)
		return
	}

	fileID, name, ok := imageFile(msg)
	if ok && user.AwaitingImage() {
		b.handleImage(ctx, msg, fileID, name)
		return
	}

	b.sendMessage(msg.Chat.ID, msgSendImage)
}

// handleCommand обрабатывает команды бота
func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message) {
	users := b.app.UserService
	var err error

	switch msg.Command() {
	case "start":
		_, err = users.Cancel(ctx, msg.From.ID, msg.Chat.ID)
		b.sendMessage(msg.Chat.ID, msgStart)

	case "help":
		b.sendMessage(msg.Chat.ID, msgHelp)

	case "segment":
		_, err = users.BeginSegmentation(ctx, msg.From.ID, msg.Chat.ID)
		b.sendMessage(msg.Chat.ID, msgAwaitingImage)

	case "cancel":
		_, err = users.Cancel(ctx, msg.From.ID, msg.Chat.ID)
		b.sendMessage(msg.Chat.ID, msgCancelled)

	default:
		b.sendMessage(msg.Chat.ID, msgUnknownCommand)
	}

	if err != nil {
		log.Printf("Error updating user state: %v", err)
	}
}

// handleImage сегментирует присланный снимок и отвечает маской и сводкой
func (b *Bot) handleImage(ctx context.Context, msg *tgbotapi.Message, fileID, name string) {
	users := b.app.UserService
	segmentation := b.app.SegmentationService

	if _, err := users.StartProcessing(ctx, msg.From.ID, msg.Chat.ID); err != nil {
		log.Printf("Error updating user state: %v", err)
	}
	defer func() {
		if _, err := users.Cancel(ctx, msg.From.ID, msg.Chat.ID); err != nil {
			log.Printf("Error updating user state: %v", err)
		}
	}()

	b.sendMessage(msg.Chat.ID, msgProcessing)

	imageData, err := b.downloadFile(fileID)
	if err != nil {
		log.Printf("Error downloading image: %v", err)
		b.sendMessage(msg.Chat.ID, msgProcessingError)
		return
	}

	path := filepath.Join(b.uploadDir, name)
	if err := os.WriteFile(path, imageData, 0o644); err != nil {
		log.Printf("Error storing image: %v", err)
		b.sendMessage(msg.Chat.ID, msgProcessingError)
		return
	}
	log.Printf("Received image %s: %d bytes", name, len(imageData))

	out, err := segmentation.Segment(ctx, path)
	if err != nil {
		log.Printf("Error segmenting image: %v", err)
		b.sendMessage(msg.Chat.ID, msgProcessingError)
		return
	}

	b.sendPhoto(msg.Chat.ID, tgbotapi.FilePath(out.MaskPath), "Маска сегментации")

	report, err := segmentation.MeasureROIs(ctx, path, out.Mask)
	if err != nil {
		if !errors.Is(err, port.ErrMeasurementUnavailable) {
			log.Printf("Error measuring ROIs: %v", err)
		}
		b.sendMessage(msg.Chat.ID, formatMaskSummary(out.Mask))
		return
	}

	if !report.HasROIs() {
		b.sendMessage(msg.Chat.ID, msgNoROIs)
		return
	}

	highlighted, err := segmentation.HighlightROIs(out.Image, report)
	if err != nil {
		log.Printf("Error highlighting ROIs: %v", err)
		b.sendMessage(msg.Chat.ID, formatROIReport(report))
		return
	}
	b.sendPhoto(msg.Chat.ID, tgbotapi.FileBytes{Name: "roi_" + name + ".jpg", Bytes: highlighted}, formatROIReport(report))
}

// imageFile достаёт идентификатор файла снимка из фото или документа
func imageFile(msg *tgbotapi.Message) (fileID, name string, ok bool) {
	if len(msg.Photo) > 0 {
		// Берём фото с максимальным разрешением
		photo := msg.Photo[len(msg.Photo)-1]
		return photo.FileID, photo.FileUniqueID + ".jpg", true
	}
	if msg.Document != nil && strings.HasPrefix(msg.Document.MimeType, "image/") {
		name := filepath.Base(msg.Document.FileName)
		if name == "." || name == string(filepath.Separator) || name == "" {
			name = msg.Document.FileUniqueID
		}
		return msg.Document.FileID, name, true
	}
	return "", "", false
}

// formatROIReport описывает найденные области
func formatROIReport(report *entity.ROIReport) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "🔬 Найдено областей: %d\n", len(report.ROIs))
	fmt.Fprintf(&sb, "Суммарная площадь: %.0f px\n", report.TotalArea)
	fmt.Fprintf(&sb, "Покрытие: %.2f%%", report.Coverage*100)
	return sb.String()
}

// formatMaskSummary описывает маску, если измерение областей недоступно
func formatMaskSummary(mask entity.Mask) string {
	total := mask.Height * mask.Width
	if total == 0 || mask.Count() == 0 {
		return msgNoROIs
	}
	return fmt.Sprintf("🔬 Пикселей маски: %d из %d (%.2f%%)", mask.Count(), total, float64(mask.Count())*100/float64(total))
}

// downloadFile скачивает файл из Telegram
func (b *Bot) downloadFile(fileID string) ([]byte, error) {
	file, err := b.api.GetFile(tgbotapi.FileConfig{FileID: fileID})
	if err != nil {
		return nil, fmt.Errorf("get file: %w", err)
	}

	fileURL := file.Link(b.api.Token)

	resp, err := http.Get(fileURL)
	if err != nil {
		return nil, fmt.Errorf("download file: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("download file: unexpected status %s", resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	return data, nil
}

// sendMessage отправляет текстовое сообщение
func (b *Bot) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.api.Send(msg); err != nil {
		log.Printf("Error sending message: %v", err)
	}
}

// sendPhoto отправляет изображение с подписью
func (b *Bot) sendPhoto(chatID int64, file tgbotapi.RequestFileData, caption string) {
	photo := tgbotapi.NewPhoto(chatID, file)
	photo.Caption = caption
	if _, err := b.api.Send(photo); err != nil {
		log.Printf("Error sending photo: %v", err)
	}
}
