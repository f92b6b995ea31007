package notify

import (
	"log"
	"os"
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Notifier pushes short status messages to the admin's Telegram chat after
// uploads. It is optional: without BOT_TOKEN and ADMIN_CHAT_ID the dashboard
// runs silently and every Send is a no-op.
type Notifier struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

func NewFromEnv() *Notifier {
	token := os.Getenv("BOT_TOKEN")
	chat := os.Getenv("ADMIN_CHAT_ID")
	if token == "" || chat == "" {
		return nil
	}
	chatID, err := strconv.ParseInt(chat, 10, 64)
	if err != nil {
		log.Println("[ERROR] ADMIN_CHAT_ID is not numeric:", err)
		return nil
	}
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		log.Println("[ERROR] telegram bot init:", err)
		return nil
	}
	log.Printf("Telegram notifier authorized as @%s", bot.Self.UserName)
	return &Notifier{bot: bot, chatID: chatID}
}

// Send is safe on a nil receiver so callers never branch on configuration.
func (n *Notifier) Send(text string) {
	if n == nil {
		return
	}
	msg := tgbotapi.NewMessage(n.chatID, text)
	if _, err := n.bot.Send(msg); err != nil {
		log.Println("[ERROR] telegram send:", err)
	}
}
