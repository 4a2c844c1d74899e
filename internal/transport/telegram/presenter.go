package telegram

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// MessageHandle identifies a sent message for later edit or delete.
type MessageHandle struct {
	ChatID    int64
	MessageID int
}

// LinkButton is a URL button attached below an outgoing message.
type LinkButton struct {
	Label string
	URL   string
}

// Presenter is the chat transport boundary the pipeline outputs are handed
// to. The core never deals with delivery guarantees; a failed send or edit is
// logged and the request ends.
type Presenter interface {
	SendText(chatID int64, text string) (MessageHandle, error)
	// EditText replaces a message's content. markdown enables Markdown parse
	// mode and must only be set for composer-produced text.
	EditText(handle MessageHandle, text string, markdown bool) error
	Delete(handle MessageHandle) error
	// SendImage sends an image with a Markdown caption, optionally replying
	// to the triggering message and attaching URL buttons.
	SendImage(chatID int64, image []byte, caption string, replyToMessageID int, links []LinkButton) error
}

// telegramPresenter implements Presenter on top of the Bot API.
type telegramPresenter struct {
	api    *tgbotapi.BotAPI
	logger *zap.Logger
}

// NewPresenter creates a Presenter bound to a Bot API client.
func NewPresenter(api *tgbotapi.BotAPI, logger *zap.Logger) Presenter {
	return &telegramPresenter{
		api:    api,
		logger: logger.Named("TelegramPresenter"),
	}
}

// SendText implements the Presenter interface.
func (p *telegramPresenter) SendText(chatID int64, text string) (MessageHandle, error) {
	sent, err := p.api.Send(tgbotapi.NewMessage(chatID, text))
	if err != nil {
		p.logger.Error("Failed to send message", zap.Int64("chatID", chatID), zap.Error(err))
		return MessageHandle{}, err
	}
	return MessageHandle{ChatID: chatID, MessageID: sent.MessageID}, nil
}

// EditText implements the Presenter interface.
func (p *telegramPresenter) EditText(handle MessageHandle, text string, markdown bool) error {
	edit := tgbotapi.NewEditMessageText(handle.ChatID, handle.MessageID, text)
	if markdown {
		edit.ParseMode = tgbotapi.ModeMarkdown
	}
	if _, err := p.api.Send(edit); err != nil {
		p.logger.Error("Failed to edit message",
			zap.Int64("chatID", handle.ChatID),
			zap.Int("messageID", handle.MessageID),
			zap.Error(err))
		return err
	}
	return nil
}

// Delete implements the Presenter interface.
func (p *telegramPresenter) Delete(handle MessageHandle) error {
	if _, err := p.api.Request(tgbotapi.NewDeleteMessage(handle.ChatID, handle.MessageID)); err != nil {
		p.logger.Warn("Failed to delete message",
			zap.Int64("chatID", handle.ChatID),
			zap.Int("messageID", handle.MessageID),
			zap.Error(err))
		return err
	}
	return nil
}

// SendImage implements the Presenter interface.
func (p *telegramPresenter) SendImage(chatID int64, image []byte, caption string, replyToMessageID int, links []LinkButton) error {
	photo := tgbotapi.NewPhoto(chatID, tgbotapi.FileBytes{Name: "bubblemap.png", Bytes: image})
	photo.Caption = caption
	photo.ParseMode = tgbotapi.ModeMarkdown
	if replyToMessageID != 0 {
		photo.ReplyToMessageID = replyToMessageID
	}
	if len(links) > 0 {
		row := make([]tgbotapi.InlineKeyboardButton, 0, len(links))
		for _, link := range links {
			row = append(row, tgbotapi.NewInlineKeyboardButtonURL(link.Label, link.URL))
		}
		photo.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(row)
	}
	if _, err := p.api.Send(photo); err != nil {
		p.logger.Error("Failed to send image", zap.Int64("chatID", chatID), zap.Error(err))
		return err
	}
	return nil
}
