package bot

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"team-planning/internal/notify"
	"team-planning/internal/service"
	"team-planning/pkg/telegram"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"
)

// Handler serves the manager chat: approval buttons and a few read-only
// commands. Messages from any other chat are ignored.
type Handler struct {
	sender   telegram.Sender
	leave    *service.LeaveService
	calendar *service.CalendarService
	chatID   int64
	logger   *logrus.Logger
	now      func() time.Time
}

func NewHandler(
	sender telegram.Sender,
	leave *service.LeaveService,
	calendar *service.CalendarService,
	managerChatID int64,
) *Handler {
	return &Handler{
		sender:   sender,
		leave:    leave,
		calendar: calendar,
		chatID:   managerChatID,
		logger:   logrus.New(),
		now:      time.Now,
	}
}

// HandleUpdates consumes updates until the channel closes or ctx is done.
func (h *Handler) HandleUpdates(ctx context.Context, updates tgbotapi.UpdatesChannel) {
	for {
		select {
		case <-ctx.Done():
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			h.handleUpdate(ctx, update)
		}
	}
}

func (h *Handler) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	if update.CallbackQuery != nil {
		h.handleCallbackQuery(ctx, update.CallbackQuery)
		return
	}
	if update.Message == nil || update.Message.Chat == nil {
		return
	}
	if update.Message.Chat.ID != h.chatID {
		h.logger.WithField("chat_id", update.Message.Chat.ID).Warn("Ignoring message from unknown chat")
		return
	}
	if update.Message.IsCommand() {
		h.handleCommand(ctx, update.Message)
	}
}

func (h *Handler) handleCallbackQuery(ctx context.Context, callback *tgbotapi.CallbackQuery) {
	if callback.Message == nil || callback.Message.Chat == nil || callback.Message.Chat.ID != h.chatID {
		h.answer(callback.ID, "⛔ Accès refusé")
		return
	}
	chatID := callback.Message.Chat.ID

	action, id, ok := telegram.ParseCallback(callback.Data)
	if !ok {
		h.answer(callback.ID, "")
		return
	}

	// The buttons are single-use.
	edit := tgbotapi.NewEditMessageReplyMarkup(chatID, callback.Message.MessageID, tgbotapi.InlineKeyboardMarkup{
		InlineKeyboard: [][]tgbotapi.InlineKeyboardButton{},
	})
	if _, err := h.sender.Request(edit); err != nil {
		h.logger.WithError(err).Warn("Failed to remove approval keyboard")
	}

	var text string
	switch action {
	case telegram.ActionApprove:
		n, err := h.leave.Approve(ctx, id)
		text = h.outcome(err, fmt.Sprintf("✅ Demande validée, %d jour(s) inscrits au planning.", n))
	case telegram.ActionReject:
		err := h.leave.Reject(ctx, id)
		text = h.outcome(err, "❌ Demande refusée.")
	}

	h.answer(callback.ID, "")
	h.send(chatID, text)
}

func (h *Handler) outcome(err error, success string) string {
	switch {
	case err == nil:
		return success
	case errors.Is(err, service.ErrRequestNotFound):
		return "⚠️ Cette demande a déjà été traitée."
	case service.IsValidationError(err):
		return "⚠️ Demande invalide : " + err.Error()
	}
	h.logger.WithError(err).Error("Failed to process leave decision")
	return "❌ Erreur : " + err.Error()
}

func (h *Handler) handleCommand(ctx context.Context, message *tgbotapi.Message) {
	user := ""
	if message.From != nil {
		user = message.From.UserName
	}
	h.logger.WithFields(logrus.Fields{
		"user":    user,
		"command": message.Command(),
	}).Info("Bot command")

	switch message.Command() {
	case "start", "help":
		h.send(message.Chat.ID, helpText)
	case "today":
		h.sendToday(ctx, message.Chat.ID)
	case "pending":
		h.sendPending(ctx, message.Chat.ID)
	default:
		h.send(message.Chat.ID, "❓ Commande inconnue. /help pour la liste.")
	}
}

const helpText = `📅 Planning équipe

/today - présence du jour
/pending - demandes en attente`

func (h *Handler) sendToday(ctx context.Context, chatID int64) {
	day, err := h.calendar.Day(ctx, h.now())
	if err != nil {
		h.send(chatID, "❌ Erreur : "+err.Error())
		return
	}

	var b strings.Builder
	b.WriteString("📅 " + day.Label + "\n\n")
	for _, cell := range day.Cells {
		b.WriteString(cell.Member + " : " + cell.Text + "\n")
	}
	switch {
	case day.Closed:
		b.WriteString("\n🔑 Bureau fermé")
	case day.LowStaff:
		b.WriteString(fmt.Sprintf("\n⚠️ Effectif : %d", day.Headcount))
	default:
		b.WriteString(fmt.Sprintf("\n👥 Effectif : %d", day.Headcount))
	}
	h.send(chatID, b.String())
}

func (h *Handler) sendPending(ctx context.Context, chatID int64) {
	pending, err := h.leave.Pending(ctx)
	if err != nil {
		h.send(chatID, "❌ Erreur : "+err.Error())
		return
	}
	if len(pending) == 0 {
		h.send(chatID, "✅ Aucune demande en attente.")
		return
	}

	for _, req := range pending {
		msg := tgbotapi.NewMessage(chatID, "📥 "+notify.LeaveSummary(req))
		msg.ReplyMarkup = telegram.ApprovalKeyboard(req.ID)
		if _, err := h.sender.Send(msg); err != nil {
			h.logger.WithError(err).Warn("Failed to send pending request")
		}
	}
}

func (h *Handler) answer(callbackID, text string) {
	if _, err := h.sender.Request(tgbotapi.NewCallback(callbackID, text)); err != nil {
		h.logger.WithError(err).Warn("Failed to answer callback")
	}
}

func (h *Handler) send(chatID int64, text string) {
	if _, err := h.sender.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		h.logger.WithError(err).Warn("Failed to send message")
	}
}
