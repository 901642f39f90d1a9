package notify

import (
	"context"
	"fmt"
	"team-planning/internal/models"
	"team-planning/pkg/telegram"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// TelegramNotifier posts new requests to the manager chat with inline
// approve/reject buttons.
type TelegramNotifier struct {
	sender telegram.Sender
	chatID int64
}

func NewTelegramNotifier(sender telegram.Sender, chatID int64) *TelegramNotifier {
	return &TelegramNotifier{sender: sender, chatID: chatID}
}

func (n *TelegramNotifier) LeaveSubmitted(_ context.Context, req models.LeaveRequest) error {
	msg := tgbotapi.NewMessage(n.chatID, "📥 "+LeaveSummary(req))
	msg.ReplyMarkup = telegram.ApprovalKeyboard(req.ID)

	if _, err := n.sender.Send(msg); err != nil {
		return fmt.Errorf("failed to send telegram message: %w", err)
	}
	return nil
}
