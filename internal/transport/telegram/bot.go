package telegram

import (
	"context"
	"fmt"
	"strings"

	"bubblemap_bot/internal/config"
	"bubblemap_bot/internal/entity"
	"bubblemap_bot/internal/service"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// sampleTokenAddress is the demo token used by the sample-map button (COMP on Ethereum).
const sampleTokenAddress = "0xc00e94cb662c3520282e6f5717214004a7f26888"

// Bot wires Telegram updates into the resolution pipeline. Each update is an
// independent unit of work; overlapping requests from one user are allowed to
// race, last write wins.
type Bot struct {
	api       *tgbotapi.BotAPI
	presenter Presenter
	sessions  service.SessionService
	resolver  service.ResolutionService
	logger    *zap.Logger
	cfg       config.TelegramConfig
}

// NewBot creates a Bot from a bot token and the core services.
func NewBot(
	token string,
	cfg config.TelegramConfig,
	resolver service.ResolutionService,
	sessions service.SessionService,
	logger *zap.Logger,
) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create Telegram bot API client: %w", err)
	}
	api.Debug = cfg.Debug

	return &Bot{
		api:       api,
		presenter: NewPresenter(api, logger),
		sessions:  sessions,
		resolver:  resolver,
		logger:    logger.Named("TelegramBot"),
		cfg:       cfg,
	}, nil
}

// Run registers the command menu and consumes updates until ctx is cancelled.
func (b *Bot) Run(ctx context.Context) error {
	commands := tgbotapi.NewSetMyCommands(
		tgbotapi.BotCommand{Command: "start", Description: "Start the bot"},
		tgbotapi.BotCommand{Command: "help", Description: "Show help information"},
		tgbotapi.BotCommand{Command: "menu", Description: "Show command menu"},
		tgbotapi.BotCommand{Command: "bubblemap", Description: "Generate a bubble map visualization"},
	)
	if _, err := b.api.Request(commands); err != nil {
		b.logger.Warn("Failed to register bot commands", zap.Error(err))
	}

	updateCfg := tgbotapi.NewUpdate(0)
	updateCfg.Timeout = b.cfg.UpdateTimeoutSeconds
	updates := b.api.GetUpdatesChan(updateCfg)

	b.logger.Info("Bot started in polling mode", zap.String("username", b.api.Self.UserName))

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			b.logger.Info("Bot update loop stopped")
			return nil
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			go b.handleUpdate(ctx, update)
		}
	}
}

func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("Panic while handling update", zap.Any("panic", r))
		}
	}()

	switch {
	case update.CallbackQuery != nil:
		b.handleCallback(ctx, update.CallbackQuery)
	case update.Message != nil && update.Message.IsCommand():
		b.handleCommand(ctx, update.Message)
	case update.Message != nil && update.Message.Text != "":
		b.handleText(ctx, update.Message)
	}
}

func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message) {
	switch msg.Command() {
	case "start":
		b.sendStart(msg.Chat.ID)
	case "help":
		b.sendHelp(msg.Chat.ID)
	case "menu":
		b.sendMenu(msg.Chat.ID)
	case "bubblemap":
		b.handleBubblemap(ctx, msg)
	}
}

// handleBubblemap either processes an inline address argument or switches the
// session into interactive mode and waits for the next text message.
func (b *Bot) handleBubblemap(ctx context.Context, msg *tgbotapi.Message) {
	args := strings.TrimSpace(msg.CommandArguments())
	if args == "" {
		if _, err := b.presenter.SendText(msg.Chat.ID, "Please enter the token contract address:"); err != nil {
			return
		}
		b.sessions.AwaitAddress(msg.Chat.ID, senderID(msg))
		return
	}
	b.processTokenAddress(ctx, msg.Chat.ID, msg.MessageID, args)
}

// handleText consumes an awaited address or nudges the user toward /bubblemap.
func (b *Bot) handleText(ctx context.Context, msg *tgbotapi.Message) {
	if b.sessions.ConsumeAwaiting(msg.Chat.ID, senderID(msg)) {
		b.processTokenAddress(ctx, msg.Chat.ID, msg.MessageID, strings.TrimSpace(msg.Text))
		return
	}

	if !strings.HasPrefix(msg.Text, "/") {
		_, _ = b.presenter.SendText(msg.Chat.ID,
			"Please use the /bubblemap command to generate a visualization.\n\n"+
				"Type /help for more information.")
	}
}

// processTokenAddress runs one full unit of work: resolve the address, fetch
// metadata and image, and deliver either an image with caption or a degraded
// text-only reply.
func (b *Bot) processTokenAddress(ctx context.Context, chatID int64, replyToMessageID int, rawAddress string) {
	if _, err := entity.ParseAddress(rawAddress); err != nil {
		_, _ = b.presenter.SendText(chatID, "Invalid token address format. Please provide a valid CA.")
		return
	}

	status, err := b.presenter.SendText(chatID, "Fetching token information...")
	if err != nil {
		return
	}

	token, err := b.resolver.Resolve(ctx, rawAddress)
	if err != nil {
		text := "Error fetching token info. Please try again later."
		if resolveErr, ok := service.AsResolveError(err); ok {
			text = resolveErr.UserMessage()
		}
		_ = b.presenter.EditText(status, text, false)
		return
	}

	_ = b.presenter.EditText(status, "Generating bubble map visualization...", false)

	image, renderErr := b.resolver.FetchMap(ctx, token)
	caption := service.ComposeTokenInfo(token)

	if renderErr != nil {
		// Degraded path: the image is lost, the resolution work is not.
		_ = b.presenter.EditText(status, service.ComposeDegradedReply(renderErr.UserMessage(), caption), true)
		return
	}

	links := []LinkButton{{
		Label: "🔍 Check on BubbleMaps",
		URL:   fmt.Sprintf("https://app.bubblemaps.io/%s/token/%s", token.Chain.InternalID(), token.Address.String()),
	}}
	if err := b.presenter.SendImage(chatID, image, caption, replyToMessageID, links); err != nil {
		_ = b.presenter.EditText(status, service.ComposeDegradedReply("Error generating bubble map.", caption), true)
		return
	}
	_ = b.presenter.Delete(status)
}

func (b *Bot) handleCallback(ctx context.Context, query *tgbotapi.CallbackQuery) {
	if _, err := b.api.Request(tgbotapi.NewCallback(query.ID, "")); err != nil {
		b.logger.Warn("Failed to answer callback query", zap.Error(err))
	}
	if query.Message == nil {
		return
	}
	chatID := query.Message.Chat.ID

	switch query.Data {
	case "show_commands":
		markup := tgbotapi.NewInlineKeyboardMarkup(
			tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData("🔍 Sample Map", "sample_bubblemap"),
				tgbotapi.NewInlineKeyboardButtonData("🔗 Supported Chains", "show_chains"),
			),
		)
		edit := tgbotapi.NewEditMessageTextAndMarkup(chatID, query.Message.MessageID,
			"Available Commands:\n\n"+
				"/start - Start the bot and show this menu\n"+
				"/help - Show help information\n"+
				"/menu - Show this command menu\n"+
				"/bubblemap - Generate a bubble map (interactive)\n\n"+
				"To generate a bubble map, simply type /bubblemap and follow the prompts.",
			markup)
		_, _ = b.api.Send(edit)

	case "sample_bubblemap":
		b.processTokenAddress(ctx, chatID, 0, sampleTokenAddress)

	case "show_chains":
		edit := tgbotapi.NewEditMessageText(chatID, query.Message.MessageID, supportedChainsText())
		_, _ = b.api.Send(edit)

	case "help":
		markup := tgbotapi.NewInlineKeyboardMarkup(
			tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData("📋 Show Commands", "show_commands"),
				tgbotapi.NewInlineKeyboardButtonData("🔗 Supported Chains", "show_chains"),
			),
		)
		edit := tgbotapi.NewEditMessageTextAndMarkup(chatID, query.Message.MessageID,
			"BubbleMap Bot Help 🌐\n\n"+
				"This bot generates visual representations of token holder distributions.\n\n"+
				"To use the bot, send the command:\n"+
				"/bubblemap\n\n"+
				"Then enter the token contract address when prompted.\n"+
				"The bot will automatically detect the chain and show token information.\n\n"+
				"You can also use the menu to see available commands and options.",
			markup)
		_, _ = b.api.Send(edit)
	}
}

func (b *Bot) sendStart(chatID int64) {
	msg := tgbotapi.NewMessage(chatID,
		"Welcome to BubbleMap Bot! 🌐\n\n"+
			"I can generate bubble map visualizations for any token.\n\n"+
			"Use the command: /bubblemap to start an interactive process.\n\n"+
			"Supported chains: "+supportedChainIDs())
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📋 Show Commands", "show_commands"),
			tgbotapi.NewInlineKeyboardButtonData("🔍 Sample Bubblemap", "sample_bubblemap"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("ℹ️ Help", "help"),
			tgbotapi.NewInlineKeyboardButtonURL("➕ Add to Group", b.addToGroupURL()),
		),
	)
	_, _ = b.api.Send(msg)
}

func (b *Bot) sendHelp(chatID int64) {
	msg := tgbotapi.NewMessage(chatID,
		"BubbleMap Bot Commands:\n\n"+
			"/start - Start the bot\n"+
			"/help - Show this help message\n"+
			"/menu - Show command menu\n"+
			"/bubblemap - Generate a bubble map visualization (interactive)\n\n"+
			"To generate a bubble map, simply type /bubblemap and follow the prompts.\n"+
			"You can also specify token directly: /bubblemap <token_address>")
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📋 Show Menu", "show_commands"),
		),
	)
	_, _ = b.api.Send(msg)
}

func (b *Bot) sendMenu(chatID int64) {
	msg := tgbotapi.NewMessage(chatID, "BubbleMap Bot Menu 📋")
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📋 Show Commands", "show_commands"),
			tgbotapi.NewInlineKeyboardButtonData("🔍 Sample Map", "sample_bubblemap"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔗 Supported Chains", "show_chains"),
			tgbotapi.NewInlineKeyboardButtonData("ℹ️ Help", "help"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonURL("➕ Add to Group", b.addToGroupURL()),
		),
	)
	_, _ = b.api.Send(msg)
}

func (b *Bot) addToGroupURL() string {
	return fmt.Sprintf("https://t.me/%s?startgroup=true", b.api.Self.UserName)
}

// senderID keys sessions by user where possible, falling back to the chat
// itself for channel posts without a sender.
func senderID(msg *tgbotapi.Message) int64 {
	if msg.From != nil {
		return msg.From.ID
	}
	return msg.Chat.ID
}

func supportedChainIDs() string {
	chains := entity.SupportedChains()
	ids := make([]string, 0, len(chains))
	for _, chain := range chains {
		ids = append(ids, chain.InternalID())
	}
	return strings.Join(ids, ", ")
}

func supportedChainsText() string {
	var sb strings.Builder
	sb.WriteString("Supported Blockchain Networks:\n\n")
	for _, chain := range entity.SupportedChains() {
		fmt.Fprintf(&sb, "• %s - %s\n", chain.InternalID(), chain.DisplayName())
	}
	return sb.String()
}
