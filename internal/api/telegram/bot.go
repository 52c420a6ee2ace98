package telegram

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	app "acnemap/internal/application"
	"acnemap/internal/domain/analysis"
	"acnemap/internal/domain/entity"
)

const (
	msgStart = `👋 Привет! Я бот, который ищет покраснения на лице.

📸 Отправьте мне фото лица анфас, и я покажу зоны с покраснением и подскажу, как за ними ухаживать.

📋 Команды:
/scan — начать сканирование
/tips — все советы по уходу
/help — справка
/cancel — отменить текущую операцию`

	msgHelp = `ℹ️ Как пользоваться ботом:

1️⃣ Отправьте фото лица
2️⃣ Бот найдёт лоб, щёки, нос и подбородок и оценит покраснение
3️⃣ Вы получите снимок с тепловой картой и советы по зонам

💡 Рекомендации:
• Снимайте при дневном свете
• Лицо анфас, без макияжа и фильтров
• Фото должно быть чётким

⚠️ Это не медицинский диагноз. При сильном воспалении обратитесь к дерматологу.

📋 Команды:
/scan — начать сканирование
/tips — советы по уходу
/cancel — отменить операцию`

	msgAwaitingPhoto   = "📸 Отправьте фото лица анфас."
	msgCancelled       = "❌ Операция отменена. Отправьте /scan для нового сканирования."
	msgSendPhoto       = "📸 Пожалуйста, отправьте фото лица для сканирования."
	msgUnknownCommand  = "❓ Неизвестная команда. Используйте /help для справки."
	msgProcessing      = "⏳ Сканирую фото..."
	msgBusy            = "⏳ Предыдущее фото ещё обрабатывается, подождите."
	msgNoFace          = "🙈 Лицо не найдено. Сделайте фото анфас при ровном освещении."
	msgProcessingError = "⚠️ Не удалось обработать изображение. Попробуйте сделать другое фото."
)

// botAPI часть tgbotapi.BotAPI, которой пользуется бот
type botAPI interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	GetFile(config tgbotapi.FileConfig) (tgbotapi.File, error)
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
}

// Bot представляет Telegram-бота
type Bot struct {
	api   botAPI
	token string
	users *app.UserService
	scans *app.ScanService
	log   *zap.Logger

	download func(ctx context.Context, fileID string) ([]byte, error)
}

// NewBot создаёт нового бота
func NewBot(token string, users *app.UserService, scans *app.ScanService, log *zap.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}

	log.Info("authorized on telegram", zap.String("account", api.Self.UserName))

	return newBot(api, token, users, scans, log), nil
}

func newBot(api botAPI, token string, users *app.UserService, scans *app.ScanService, log *zap.Logger) *Bot {
	b := &Bot{
		api:   api,
		token: token,
		users: users,
		scans: scans,
		log:   log,
	}
	b.download = b.downloadFile
	return b
}

// Run запускает основной цикл обработки сообщений до отмены контекста
func (b *Bot) Run(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)
	defer b.api.StopReceivingUpdates()

	for {
		select {
		case <-ctx.Done():
			return nil
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
	if msg.From == nil || msg.Chat == nil {
		return
	}

	// Обработка команд
	if msg.IsCommand() {
		b.handleCommand(ctx, msg)
		return
	}

	// Обработка фото
	if len(msg.Photo) > 0 {
		b.handlePhoto(ctx, msg)
		return
	}

	// Текстовое сообщение (не команда)
	b.sendMessage(msg.Chat.ID, msgSendPhoto)
}

// handleCommand обрабатывает команды бота
func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message) {
	userID, chatID := msg.From.ID, msg.Chat.ID

	switch msg.Command() {
	case "start":
		b.setState(ctx, msg, entity.StateMainMenu)
		b.sendMessage(chatID, msgStart)

	case "help":
		b.sendMessage(chatID, msgHelp)

	case "scan":
		if _, err := b.users.BeginScan(ctx, userID, chatID); err != nil {
			b.log.Error("begin scan", zap.Int64("user_id", userID), zap.Error(err))
		}
		b.sendMessage(chatID, msgAwaitingPhoto)

	case "tips":
		b.sendMessage(chatID, renderTips(b.scans.Remedies()))

	case "cancel":
		if _, err := b.users.Cancel(ctx, userID, chatID); err != nil {
			b.log.Error("cancel", zap.Int64("user_id", userID), zap.Error(err))
		}
		b.sendMessage(chatID, msgCancelled)

	default:
		b.sendMessage(chatID, msgUnknownCommand)
	}
}

func (b *Bot) setState(ctx context.Context, msg *tgbotapi.Message, state entity.UserState) {
	if _, err := b.users.SetState(ctx, msg.From.ID, msg.Chat.ID, state); err != nil {
		b.log.Error("set user state", zap.Int64("user_id", msg.From.ID), zap.Error(err))
	}
}

// handlePhoto сканирует фото. Пока идёт скан, новые фото пользователя отклоняются.
func (b *Bot) handlePhoto(ctx context.Context, msg *tgbotapi.Message) {
	userID, chatID := msg.From.ID, msg.Chat.ID

	if _, err := b.users.StartProcessing(ctx, userID, chatID); err != nil {
		if errors.Is(err, entity.ErrScanInProgress) {
			b.sendMessage(chatID, msgBusy)
			return
		}
		b.log.Error("start processing", zap.Int64("user_id", userID), zap.Error(err))
		b.sendMessage(chatID, msgProcessingError)
		return
	}

	scanID := ""
	defer func() {
		if _, err := b.users.Finish(ctx, userID, chatID, scanID); err != nil {
			b.log.Error("finish scan", zap.Int64("user_id", userID), zap.Error(err))
		}
	}()

	b.sendMessage(chatID, msgProcessing)

	// Получаем файл с максимальным разрешением
	photo := msg.Photo[len(msg.Photo)-1]

	imageData, err := b.download(ctx, photo.FileID)
	if err != nil {
		b.log.Error("download photo", zap.String("file_id", photo.FileID), zap.Error(err))
		b.sendMessage(chatID, msgProcessingError)
		return
	}

	result, err := b.scans.ScanImage(ctx, imageData, app.ScanOptions{Snapshot: true})
	if err != nil {
		b.log.Error("scan photo", zap.Int64("user_id", userID), zap.Error(err))
		b.sendMessage(chatID, msgProcessingError)
		return
	}
	scanID = result.ID

	if !result.FaceFound {
		b.sendMessage(chatID, msgNoFace)
		return
	}

	if len(result.Snapshot) > 0 {
		snap := tgbotapi.NewPhoto(chatID, tgbotapi.FileBytes{
			Name:  "acnemap-scan-" + result.ID + ".png",
			Bytes: result.Snapshot,
		})
		if _, err := b.api.Send(snap); err != nil {
			b.log.Error("send snapshot", zap.Int64("chat_id", chatID), zap.Error(err))
		}
	}
	b.sendMessage(chatID, analysis.RenderText(result.Advice))
}

// downloadFile скачивает файл из Telegram
func (b *Bot) downloadFile(ctx context.Context, fileID string) ([]byte, error) {
	file, err := b.api.GetFile(tgbotapi.FileConfig{FileID: fileID})
	if err != nil {
		return nil, fmt.Errorf("get file: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, file.Link(b.token), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download file: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("download file: status %d", resp.StatusCode)
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
		b.log.Error("send message", zap.Int64("chat_id", chatID), zap.Error(err))
	}
}

// renderTips печатает всю книгу советов
func renderTips(book *entity.RemedyBook) string {
	var sb strings.Builder
	sb.WriteString("📚 Советы по уходу\n")

	for _, name := range entity.ScoredRegions {
		tips := book.For(name)
		if len(tips) == 0 {
			continue
		}
		fmt.Fprintf(&sb, "\n📍 %s\n", analysis.RegionTitle(name))
		for _, tip := range tips {
			fmt.Fprintf(&sb, "• %s: %s\n", tip.Title, tip.How)
		}
	}

	if universal := book.Universal(); len(universal) > 0 {
		sb.WriteString("\n🧼 Общие советы\n")
		for _, tip := range universal {
			fmt.Fprintf(&sb, "• %s: %s\n", tip.Title, tip.How)
		}
	}
	return sb.String()
}
