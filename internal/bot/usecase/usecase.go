package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/smartstock/smartstock-service/internal/bot"
	"github.com/smartstock/smartstock-service/internal/bot/dto"
	"github.com/smartstock/smartstock-service/internal/command"
	"github.com/smartstock/smartstock-service/internal/notification"
	"github.com/smartstock/smartstock-service/internal/stock"
	"github.com/smartstock/smartstock-service/internal/telegram"
	"github.com/smartstock/smartstock-service/pkg/logger"
)

const (
	replyNoStock        = "📦 No stock data found."
	replyStockHeader    = "📦 Current Stock:\n"
	replyDeleteUsage    = "⚠️ Usage: delete <item>"
	replyDeleteFailed   = "❌ Failed to delete item."
	replyInvalidUpdate  = "⚠️ Invalid update format. Try: `update onions: 50kg`"
	replyUpdateFailed   = "⚠️ Failed to update item."
	replyNoValidLines   = "⚠️ No valid item format found."
	restockNoticeFmt    = "✅ Good news! '%s' is now back in stock: %s%s"
	restockBroadcastFmt = "🛒 Good News from SmartStock\nThe product you were waiting for – *%s* – is now **back in stock**! 🎉\nPlease visit the store to purchase it before it runs out again.\n\nThank you for using SmartStock 💚"
)

type botUseCase struct {
	stockRepo stock.Repository
	notifRepo notification.Repository
	sender    telegram.Sender
	logger    logger.Logger
}

func NewBotUseCase(stockRepo stock.Repository, notifRepo notification.Repository, sender telegram.Sender, log logger.Logger) bot.UseCase {
	return &botUseCase{
		stockRepo: stockRepo,
		notifRepo: notifRepo,
		sender:    sender,
		logger:    log,
	}
}

func (uc *botUseCase) HandleMessage(ctx context.Context, msg *dto.IncomingMessage) {
	cmd, err := command.Classify(msg.Text)
	switch {
	case errors.Is(err, command.ErrInvalidUpdateFormat):
		uc.reply(ctx, msg.ChatID, replyInvalidUpdate)
		return
	case errors.Is(err, command.ErrMissingDeleteItem):
		uc.reply(ctx, msg.ChatID, replyDeleteUsage)
		return
	case err != nil:
		uc.logger.Error("failed to classify message", zap.Error(err))
		return
	}

	switch cmd.Kind {
	case command.KindQuery:
		uc.handleQuery(ctx, msg.ChatID)
	case command.KindDelete:
		uc.handleDelete(ctx, msg.ChatID, cmd.Item)
	case command.KindUpdate:
		uc.handleUpdate(ctx, msg.ChatID, *cmd.Entry)
	case command.KindBulkInsert:
		uc.handleBulkInsert(ctx, msg.ChatID, msg.Author, cmd.Lines)
	}
}

func (uc *botUseCase) handleQuery(ctx context.Context, chatID string) {
	items, err := uc.stockRepo.GetAll(ctx)
	if err != nil {
		uc.logger.Error("failed to read stock", zap.Error(err))
		uc.reply(ctx, chatID, replyNoStock)
		return
	}
	if len(items) == 0 {
		uc.reply(ctx, chatID, replyNoStock)
		return
	}

	lines := make([]string, 0, len(items))
	for _, it := range items {
		lines = append(lines, fmt.Sprintf("• %s: %s%s (by %s)", it.Item, it.Quantity, it.Unit, it.AddedBy))
	}
	uc.reply(ctx, chatID, replyStockHeader+strings.Join(lines, "\n"))
}

func (uc *botUseCase) handleDelete(ctx context.Context, chatID, item string) {
	if err := uc.stockRepo.Delete(ctx, item); err != nil {
		uc.logger.Error("failed to delete stock item", zap.String("item", item), zap.Error(err))
		uc.reply(ctx, chatID, replyDeleteFailed)
		return
	}
	uc.reply(ctx, chatID, fmt.Sprintf("🗑️ Deleted: %s", item))
}

// handleUpdate applies the quantity mutation and, when the item transitions
// from depleted to available, fans out to the embedded notify list exactly
// once. A failed read downgrades to "not depleted" but never blocks the
// mutation itself.
func (uc *botUseCase) handleUpdate(ctx context.Context, chatID string, entry command.Line) {
	current, err := uc.stockRepo.GetByItem(ctx, entry.Item)
	if err != nil {
		uc.logger.Warn("failed to read current stock before update",
			zap.String("item", entry.Item),
			zap.Error(err),
		)
	}
	wasDepleted := err == nil && current != nil && current.Quantity.IsZero()

	if err := uc.stockRepo.UpdateQuantity(ctx, entry.Item, entry.Quantity, entry.Unit); err != nil {
		uc.logger.Error("failed to update stock item", zap.String("item", entry.Item), zap.Error(err))
		uc.reply(ctx, chatID, replyUpdateFailed)
		return
	}

	if wasDepleted && entry.Quantity.IsPositive() && len(current.NotifyList) > 0 {
		notice := fmt.Sprintf(restockNoticeFmt, entry.Item, entry.Quantity, entry.Unit)
		for _, subscriber := range current.NotifyList {
			if err := uc.sender.SendMessage(ctx, subscriber, notice); err != nil {
				uc.logger.Error("failed to send restock notice",
					zap.String("item", entry.Item),
					zap.String("subscriber", subscriber),
					zap.Error(err),
				)
			}
		}
		if err := uc.stockRepo.SetNotifyList(ctx, entry.Item, []string{}); err != nil {
			uc.logger.Error("failed to clear notify list", zap.String("item", entry.Item), zap.Error(err))
		}
	}

	uc.reply(ctx, chatID, fmt.Sprintf("✅ Updated %s to %s%s", entry.Item, entry.Quantity, entry.Unit))
}

// handleBulkInsert upserts each parsed line independently. Every successful
// upsert checks the standalone subscription rows for that item, whatever the
// prior quantity was; this mirrors the update path's embedded-list mechanism
// but deliberately does not gate on a depleted-to-available transition.
func (uc *botUseCase) handleBulkInsert(ctx context.Context, chatID, author string, lines []command.Line) {
	var inserted []string
	for _, line := range lines {
		if err := uc.stockRepo.Upsert(ctx, line.Item, line.Quantity, line.Unit, author); err != nil {
			uc.logger.Error("failed to insert stock line",
				zap.String("item", line.Item),
				zap.Error(err),
			)
			continue
		}
		inserted = append(inserted, line.String())
		uc.notifyPendingSubscribers(ctx, line.Item)
	}

	if len(inserted) == 0 {
		uc.reply(ctx, chatID, replyNoValidLines)
		return
	}
	uc.reply(ctx, chatID, "✅ Added:\n"+strings.Join(inserted, "\n"))
}

// notifyPendingSubscribers drains the standalone subscription rows for an
// item: best-effort send to each, then delete the rows so no subscription
// fires twice.
func (uc *botUseCase) notifyPendingSubscribers(ctx context.Context, item string) {
	subs, err := uc.notifRepo.ListByItem(ctx, item)
	if err != nil {
		uc.logger.Error("failed to list subscribers", zap.String("item", item), zap.Error(err))
		return
	}
	if len(subs) == 0 {
		return
	}

	broadcast := fmt.Sprintf(restockBroadcastFmt, item)
	for _, sub := range subs {
		if err := uc.sender.SendMessage(ctx, sub.TelegramID, broadcast); err != nil {
			uc.logger.Error("failed to send restock broadcast",
				zap.String("item", item),
				zap.String("subscriber", sub.TelegramID),
				zap.Error(err),
			)
		}
	}

	if err := uc.notifRepo.DeleteByItem(ctx, item); err != nil {
		uc.logger.Error("failed to clear subscribers", zap.String("item", item), zap.Error(err))
	}
}

func (uc *botUseCase) reply(ctx context.Context, chatID, text string) {
	if err := uc.sender.SendMessage(ctx, chatID, text); err != nil {
		uc.logger.Error("failed to send reply", zap.String("chat_id", chatID), zap.Error(err))
	}
}
