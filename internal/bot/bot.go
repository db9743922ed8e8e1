// Package bot is the Telegram gateway: the same intent pipeline the HTTP
// surface runs, with action cards rendered as text replies.
package bot

import (
	"context"
	"fmt"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/solobuddy/hub/internal/activity"
	"github.com/solobuddy/hub/internal/intent"
	"github.com/solobuddy/hub/internal/models"
	"github.com/solobuddy/hub/internal/storage"
)

type Bot struct {
	api             *tgbotapi.BotAPI
	store           storage.Storage
	scanner         *activity.Scanner
	resolver        *intent.Resolver
	maxScanProjects int
	logger          *zap.Logger
}

func New(token string, store storage.Storage, scanner *activity.Scanner, resolver *intent.Resolver, maxScanProjects int, logger *zap.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}

	return &Bot{
		api:             api,
		store:           store,
		scanner:         scanner,
		resolver:        resolver,
		maxScanProjects: maxScanProjects,
		logger:          logger,
	}, nil
}

func (b *Bot) Start() error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)

	for update := range updates {
		if update.Message == nil {
			continue
		}
		go b.handleMessage(update.Message)
	}

	return nil
}

func (b *Bot) handleMessage(message *tgbotapi.Message) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if message.IsCommand() {
		b.handleCommand(ctx, message)
		return
	}

	correlationID := uuid.New().String()
	data := b.gatherContext(ctx)
	result := b.resolver.Resolve(ctx, message.Text, data)

	b.logger.Info("telegram message resolved",
		zap.String("correlation_id", correlationID),
		zap.Int64("chat_id", message.Chat.ID),
		zap.String("intent", string(result.IntentType)),
		zap.Int("confidence", result.Confidence),
		zap.String("source", string(result.Source)))

	if result.Action == nil {
		b.reply(message.Chat.ID, message.MessageID,
			"Не уверен, что ты имеешь в виду 🤔 Попробуй, например: «добавь идею про ...» или «что происходит с <проект>»")
		return
	}

	b.reply(message.Chat.ID, message.MessageID, renderCard(result.Action))
}

func (b *Bot) handleCommand(ctx context.Context, message *tgbotapi.Message) {
	switch message.Command() {
	case "start":
		b.reply(message.Chat.ID, 0, `Привет! Я SoloBuddy 🪴
Кидай мне сообщения вроде «добавь идею про live orb» или «что происходит с hub» — я разберу их в действия.

/backlog — показать идеи`)
	case "backlog":
		items, err := b.store.ListBacklog(ctx)
		if err != nil {
			b.logger.Error("failed to list backlog", zap.Error(err))
			b.reply(message.Chat.ID, 0, "Не получилось загрузить backlog, попробуй ещё раз.")
			return
		}
		if len(items) == 0 {
			b.reply(message.Chat.ID, 0, "Backlog пуст — самое время для новой идеи 💡")
			return
		}
		var sb strings.Builder
		sb.WriteString("📋 Backlog:\n")
		for _, item := range items {
			sb.WriteString(fmt.Sprintf("%d. %s [%s, %s]\n", item.ID, item.Title, item.Priority, item.Format))
		}
		b.reply(message.Chat.ID, 0, sb.String())
	default:
		b.reply(message.Chat.ID, 0, "Не знаю такую команду. Есть /start и /backlog.")
	}
}

func (b *Bot) gatherContext(ctx context.Context) models.Context {
	data := models.Context{}

	if items, err := b.store.ListBacklog(ctx); err != nil {
		b.logger.Warn("failed to load backlog for context", zap.Error(err))
	} else {
		data.BacklogItems = items
	}

	if projects, err := b.store.ListProjects(ctx); err != nil {
		b.logger.Warn("failed to load projects for context", zap.Error(err))
	} else {
		data.Projects = projects
	}

	if b.scanner != nil {
		data.GitActivity = b.scanner.Scan(ctx, data.Projects, b.maxScanProjects)
	}
	return data
}

// renderCard flattens an action card into a telegram-friendly text block.
func renderCard(card *intent.ActionCard) string {
	var sb strings.Builder

	switch card.Type {
	case intent.CardAddIdea:
		sb.WriteString(fmt.Sprintf("%s Добавить идею: «%s» [%s, %s]\n",
			card.ConfidenceBadge, card.Title, card.SuggestedPriority, card.SuggestedFormat))
		for _, link := range card.Links {
			sb.WriteString("· " + link.Suggestion + "\n")
		}
	case intent.CardFindIdea:
		if card.FoundIdea != nil {
			sb.WriteString(fmt.Sprintf("%s Нашёл: «%s» [%s, %s]\n",
				card.ConfidenceBadge, card.FoundIdea.Title, card.FoundIdea.Priority, card.FoundIdea.Format))
		} else {
			sb.WriteString(fmt.Sprintf("%s Ничего похожего в backlog не нашёл.\n", card.ConfidenceBadge))
		}
	case intent.CardActivity:
		if card.Project != nil {
			sb.WriteString(fmt.Sprintf("%s Активность по %s — смотри /api/activity в хабе.\n",
				card.ConfidenceBadge, card.Project.Name))
		} else {
			sb.WriteString(fmt.Sprintf("%s Какой проект показать?\n", card.ConfidenceBadge))
		}
	case intent.CardChangePriority:
		if card.Idea != nil {
			sb.WriteString(fmt.Sprintf("%s Поменять приоритет «%s» на %s?\n",
				card.ConfidenceBadge, card.Idea.Title, card.NewPriority))
		} else {
			sb.WriteString(fmt.Sprintf("%s Не понял, у какой идеи менять приоритет.\n", card.ConfidenceBadge))
		}
	case intent.CardContentGenerator:
		sb.WriteString(fmt.Sprintf("%s Сгенерить %s? Промпт: «%s»\n",
			card.ConfidenceBadge, card.Template, card.Prompt))
	default:
		sb.WriteString("Готово.\n")
	}

	return strings.TrimSpace(sb.String())
}

func (b *Bot) reply(chatID int64, replyTo int, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if replyTo != 0 {
		msg.ReplyToMessageID = replyTo
	}
	if _, err := b.api.Send(msg); err != nil {
		b.logger.Error("failed to send telegram message",
			zap.Error(err), zap.Int64("chat_id", chatID))
	}
}
