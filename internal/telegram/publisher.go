package telegram

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// Publisher envia o pronóstico do dia para o canal Telegram, com fallback de
// formatação: Markdown -> MarkdownV2 -> texto puro. O texto puro sempre chega;
// os dois primeiros modos só melhoram a apresentação.
type Publisher struct {
	bot    *tgbotapi.BotAPI
	chatID string
	log    *zap.Logger
}

func NewPublisher(token, chatID string, log *zap.Logger) (*Publisher, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("telegram bot init: %w", err)
	}
	return &Publisher{bot: bot, chatID: chatID, log: log}, nil
}

// Publish tenta os três modos em ordem e retorna o modo que funcionou.
func (p *Publisher) Publish(message string) (mode string, err error) {
	attempts := []struct {
		mode string
		text string
	}{
		{tgbotapi.ModeMarkdown, sanitizeMarkdown(message)},
		{tgbotapi.ModeMarkdownV2, escapeMarkdownV2(message)},
		{"", stripMarkdown(message)},
	}

	var lastErr error
	for _, a := range attempts {
		msg, err := p.newMessage(a.text)
		if err != nil {
			return "", err
		}
		msg.ParseMode = a.mode
		msg.DisableWebPagePreview = true

		if _, err := p.bot.Send(msg); err != nil {
			p.log.Warn("telegram send failed",
				zap.String("parseMode", a.mode),
				zap.Error(err),
			)
			lastErr = err
			continue
		}
		if a.mode == "" {
			return "Plain", nil
		}
		return a.mode, nil
	}
	return "", fmt.Errorf("telegram publish: %w", lastErr)
}

// BroadcastPhoto envia uma imagem para o canal com legenda em Markdown.
// Usado pelo broadcast manual do admin (visual do pronóstico do dia).
func (p *Publisher) BroadcastPhoto(image []byte, name, caption string) error {
	file := tgbotapi.FileBytes{Name: name, Bytes: image}

	var photo tgbotapi.PhotoConfig
	if strings.HasPrefix(p.chatID, "@") {
		photo = tgbotapi.NewPhotoToChannel(p.chatID, file)
	} else {
		id, err := strconv.ParseInt(p.chatID, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid telegram chat id %q", p.chatID)
		}
		photo = tgbotapi.NewPhoto(id, file)
	}
	photo.Caption = sanitizeMarkdown(caption)
	photo.ParseMode = tgbotapi.ModeMarkdown

	if _, err := p.bot.Send(photo); err != nil {
		return fmt.Errorf("telegram broadcast: %w", err)
	}
	return nil
}

func (p *Publisher) newMessage(text string) (tgbotapi.MessageConfig, error) {
	if strings.HasPrefix(p.chatID, "@") {
		return tgbotapi.NewMessageToChannel(p.chatID, text), nil
	}
	id, err := strconv.ParseInt(p.chatID, 10, 64)
	if err != nil {
		return tgbotapi.MessageConfig{}, fmt.Errorf("invalid telegram chat id %q", p.chatID)
	}
	return tgbotapi.NewMessage(id, text), nil
}

var (
	markdownSpecials = regexp.MustCompile("([_`\\[\\]])")
	markdownV2All    = regexp.MustCompile(`([_*\[\]()~` + "`" + `>#+\-=|{}.!\\])`)
	boldPattern      = regexp.MustCompile(`\*([^*]+)\*`)
	italicPattern    = regexp.MustCompile(`_([^_]+)_`)
	codePattern      = regexp.MustCompile("`([^`]+)`")
	linkPattern      = regexp.MustCompile(`\[([^\]]+)\]\([^)]+\)`)
)

// sanitizeMarkdown escapa os caracteres que quebram o Markdown V1 do
// Telegram, preservando os * usados para negrito.
func sanitizeMarkdown(text string) string {
	out := markdownSpecials.ReplaceAllString(text, `\$1`)
	return strings.ReplaceAll(out, `\\`, `\`)
}

// escapeMarkdownV2 escapa o conjunto (bem maior) exigido pelo MarkdownV2.
func escapeMarkdownV2(text string) string {
	return markdownV2All.ReplaceAllString(text, `\$1`)
}

// stripMarkdown remove toda a formatação, deixando texto puro.
func stripMarkdown(text string) string {
	out := boldPattern.ReplaceAllString(text, "$1")
	out = italicPattern.ReplaceAllString(out, "$1")
	out = codePattern.ReplaceAllString(out, "$1")
	out = linkPattern.ReplaceAllString(out, "$1")
	return strings.ReplaceAll(out, `\`, "")
}
