// Package telegram adapts Telegram updates to the dispatcher. It owns nothing
// but translation: commands and button presses go in, Reply values come back
// out as messages or message edits.
package telegram

import (
	"context"
	"log"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"pm-tutor-bot/internal/bot"
)

const pollTimeoutSeconds = 30

type Bot struct {
	api        *tgbotapi.BotAPI
	dispatcher *bot.Dispatcher
}

func New(token string, dispatcher *bot.Dispatcher) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}
	return &Bot{api: api, dispatcher: dispatcher}, nil
}

// Username reports the bot account name, for startup logging.
func (b *Bot) Username() string {
	return b.api.Self.UserName
}

// Run polls for updates until ctx is cancelled. Each update is handled
// independently; a failure in one never stops the loop.
func (b *Bot) Run(ctx context.Context) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = pollTimeoutSeconds
	updates := b.api.GetUpdatesChan(u)

	go func() {
		<-ctx.Done()
		b.api.StopReceivingUpdates()
	}()

	for update := range updates {
		switch {
		case update.CallbackQuery != nil:
			b.handleCallback(ctx, update.CallbackQuery)
		case update.Message != nil:
			b.handleMessage(ctx, update.Message)
		}
	}
}

func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	key := sessionKey(msg.Chat.ID)
	if msg.IsCommand() {
		switch msg.Command() {
		case "start":
			b.send(msg.Chat.ID, b.dispatcher.Start(key))
		case "scope":
			b.send(msg.Chat.ID, b.dispatcher.Scope())
		case "sources":
			b.send(msg.Chat.ID, b.dispatcher.Sources())
		case "lesson":
			b.send(msg.Chat.ID, b.dispatcher.Lesson(key, msg.CommandArguments()))
		case "quiz":
			b.sendAll(msg.Chat.ID, b.dispatcher.Quiz(ctx, key))
		case "calc":
			b.send(msg.Chat.ID, b.dispatcher.Calc(strings.Fields(msg.CommandArguments())))
		}
		// Unregistered commands are ignored, matching transports that only
		// deliver known commands to handlers.
		return
	}
	if strings.TrimSpace(msg.Text) == "" {
		return
	}
	b.sendAll(msg.Chat.ID, b.dispatcher.FreeText(ctx, key, msg.Text))
}

func (b *Bot) handleCallback(ctx context.Context, q *tgbotapi.CallbackQuery) {
	// Acknowledge the press so the client stops its spinner, whatever happens next.
	if _, err := b.api.Request(tgbotapi.NewCallback(q.ID, "")); err != nil {
		log.Printf("[callback] failed to answer callback: %v", err)
	}
	if q.Message == nil {
		log.Printf("[callback] callback without originating message, data %q", q.Data)
		return
	}

	chatID := q.Message.Chat.ID
	action := bot.ParseAction(q.Data)
	replies := b.dispatcher.HandleAction(ctx, sessionKey(chatID), action)
	if len(replies) == 0 {
		return
	}

	// Quiz results arrive as fresh messages; everything else replaces the
	// menu message in place.
	if action.Kind == bot.ActionMenuQuiz {
		b.sendAll(chatID, replies)
		return
	}
	b.edit(chatID, q.Message.MessageID, replies[0])
	if len(replies) > 1 {
		b.sendAll(chatID, replies[1:])
	}
}

func (b *Bot) send(chatID int64, reply bot.Reply) {
	msg := tgbotapi.NewMessage(chatID, reply.Text)
	if len(reply.Buttons) > 0 {
		msg.ReplyMarkup = toMarkup(reply.Buttons)
	}
	if _, err := b.api.Send(msg); err != nil {
		log.Printf("[send] failed to send message to %d: %v", chatID, err)
	}
}

func (b *Bot) sendAll(chatID int64, replies []bot.Reply) {
	for _, r := range replies {
		b.send(chatID, r)
	}
}

func (b *Bot) edit(chatID int64, messageID int, reply bot.Reply) {
	var c tgbotapi.Chattable
	if len(reply.Buttons) > 0 {
		edit := tgbotapi.NewEditMessageTextAndMarkup(chatID, messageID, reply.Text, toMarkup(reply.Buttons))
		c = edit
	} else {
		c = tgbotapi.NewEditMessageText(chatID, messageID, reply.Text)
	}
	if _, err := b.api.Send(c); err != nil {
		log.Printf("[edit] failed to edit message %d in %d: %v", messageID, chatID, err)
	}
}

func sessionKey(chatID int64) string {
	return strconv.FormatInt(chatID, 10)
}

func toMarkup(rows [][]bot.Button) tgbotapi.InlineKeyboardMarkup {
	keyboard := make([][]tgbotapi.InlineKeyboardButton, 0, len(rows))
	for _, row := range rows {
		buttons := make([]tgbotapi.InlineKeyboardButton, 0, len(row))
		for _, btn := range row {
			buttons = append(buttons, tgbotapi.NewInlineKeyboardButtonData(btn.Label, btn.Data))
		}
		keyboard = append(keyboard, buttons)
	}
	return tgbotapi.NewInlineKeyboardMarkup(keyboard...)
}
