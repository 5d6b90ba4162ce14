package telegram

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/NasaVasa/pricewatch/internal/catalog"
	"github.com/NasaVasa/pricewatch/internal/domain"
	"github.com/NasaVasa/pricewatch/internal/usecase"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

type ItemSearcher interface {
	Search(text string, limit int) []catalog.Item
}

type Handlers struct {
	api     Sender
	alertUC *usecase.AlertUsecase
	items   ItemSearcher
	logger  *zap.Logger
}

func NewHandlers(api Sender, alertUC *usecase.AlertUsecase, items ItemSearcher, logger *zap.Logger) *Handlers {
	return &Handlers{api: api, alertUC: alertUC, items: items, logger: logger}
}

func (h *Handlers) HandleUpdate(ctx context.Context, update tgbotapi.Update) {
	if update.InlineQuery != nil {
		h.handleInlineQuery(update.InlineQuery)
		return
	}
	if update.Message == nil || update.Message.From == nil {
		return
	}
	if update.Message.IsCommand() {
		h.handleCommand(ctx, update.Message)
	}
}

func (h *Handlers) handleCommand(ctx context.Context, message *tgbotapi.Message) {
	command := message.Command()
	args := message.CommandArguments()
	chatID := message.Chat.ID
	userID := strconv.FormatInt(message.From.ID, 10)

	h.logger.Info(
		"telegram command received",
		zap.Int64("chat_id", chatID),
		zap.String("user_id", userID),
		zap.String("command", command),
		zap.String("args", args),
	)

	switch command {
	case "start", "help":
		h.reply(chatID, HelpText)
	case "search":
		text, err := ParseSearchText(args)
		if err != nil {
			h.reply(chatID, "Usage: /search <text>")
			return
		}
		h.reply(chatID, formatSearchResults(text, h.items.Search(text, 10)))
	case "add":
		parsed, err := ParseAddAlertArgs(args)
		if err != nil {
			h.reply(chatID, "Usage: /add <item_id> <quality> <threshold> <higher|lower>")
			return
		}
		alert, err := h.alertUC.AddAlert(ctx, userID, parsed.ItemID, parsed.Quality, parsed.Threshold, parsed.Direction)
		if err != nil {
			h.logger.Warn("add failed", zap.String("user_id", userID), zap.Error(err))
			h.reply(chatID, h.alertErrorMessage(err, parsed.ItemID))
			return
		}
		h.logger.Info("add complete", zap.String("user_id", userID), zap.Uint("alert_id", alert.ID))
		h.reply(chatID, fmt.Sprintf("Watching for %s %s to go %s %s (alert #%d).",
			alert.Quality, alert.ItemName, directionLabel(alert.Direction), alert.Threshold.String(), alert.ID))
	case "alerts", "list":
		alerts, err := h.alertUC.ListAlerts(ctx, userID)
		if err != nil {
			h.logger.Warn("alerts list failed", zap.String("user_id", userID), zap.Error(err))
			h.reply(chatID, h.alertErrorMessage(err, ""))
			return
		}
		h.reply(chatID, formatAlertList(alerts))
	case "delete":
		alertID, err := ParseAlertID(args)
		if err != nil {
			h.reply(chatID, "Usage: /delete <alert_id> (see /alerts)")
			return
		}
		if err := h.alertUC.DeleteAlert(ctx, userID, alertID); err != nil {
			h.logger.Warn("delete failed", zap.String("user_id", userID), zap.Uint("alert_id", alertID), zap.Error(err))
			h.reply(chatID, h.alertErrorMessage(err, ""))
			return
		}
		h.logger.Info("delete complete", zap.String("user_id", userID), zap.Uint("alert_id", alertID))
		h.reply(chatID, fmt.Sprintf("Alert #%d deleted!", alertID))
	default:
		h.reply(chatID, "Unknown command.\n\n"+HelpText)
	}
}

// handleInlineQuery answers "@bot <text>" with matching catalog items.
func (h *Handlers) handleInlineQuery(query *tgbotapi.InlineQuery) {
	matches := h.items.Search(query.Query, catalog.MaxSuggestions)
	results := make([]interface{}, 0, len(matches))
	for _, item := range matches {
		article := tgbotapi.NewInlineQueryResultArticle(item.ID, item.Name, item.ID)
		article.Description = item.ID
		results = append(results, article)
	}

	answer := tgbotapi.InlineConfig{
		InlineQueryID: query.ID,
		Results:       results,
		CacheTime:     300,
	}
	if _, err := h.api.Request(answer); err != nil {
		h.logger.Warn("failed to answer inline query", zap.String("query", query.Query), zap.Error(err))
	}
}

func (h *Handlers) alertErrorMessage(err error, itemID string) string {
	switch {
	case errors.Is(err, usecase.ErrUnknownItem):
		return fmt.Sprintf("Item %s doesn't exist. Try /search <text>.", itemID)
	case errors.Is(err, domain.ErrInvalidQuality):
		return "Invalid quality. Use 1-5 or Normal, Good, Outstanding, Excellent, Masterpiece."
	case errors.Is(err, usecase.ErrInvalidThreshold):
		return "Invalid threshold. Use a positive number like 15000."
	case errors.Is(err, domain.ErrInvalidDirection):
		return "Invalid direction. Use higher or lower."
	case errors.Is(err, usecase.ErrAlertNotFound):
		return "Alert not found."
	}

	h.logger.Warn("unhandled error", zap.Error(err))
	return "Something went wrong. Please try again."
}

func directionLabel(direction domain.Direction) string {
	if direction == domain.DirectionHigher {
		return "📈 above"
	}
	return "📉 below"
}

func formatAlertList(alerts []domain.Alert) string {
	if len(alerts) == 0 {
		return "You have no active alerts!"
	}
	var builder strings.Builder
	builder.WriteString("🔔 Your active alerts\n")
	for _, alert := range alerts {
		builder.WriteString(fmt.Sprintf("#%d %s %s, if price %s %s.\n",
			alert.ID, alert.Quality, alert.ItemName, directionLabel(alert.Direction), alert.Threshold.String()))
	}
	return builder.String()
}

func formatSearchResults(text string, items []catalog.Item) string {
	if len(items) == 0 {
		return fmt.Sprintf("No items match %q.", text)
	}
	var builder strings.Builder
	builder.WriteString("Items:\n")
	for _, item := range items {
		builder.WriteString(fmt.Sprintf("%s - %s\n", item.ID, item.Name))
	}
	return builder.String()
}

func (h *Handlers) reply(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := h.api.Send(msg); err != nil {
		h.logger.Warn("failed to send message", zap.Error(err))
	}
}
