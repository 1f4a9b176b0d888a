package telegram

import (
	"fmt"
	"strings"

	"price-indexer/models/constants"
	"price-indexer/pkg/observer"

	"github.com/PaulSonOfLars/gotgbot/v2"
	"github.com/rs/zerolog/log"
)

func New(token string, chatID int64) (*Impl, error) {
	if token == "" {
		return nil, ErrTokenIsMissing
	}
	if chatID == 0 {
		return nil, ErrChatIsMissing
	}

	b, err := gotgbot.NewBot(token, &gotgbot.BotOpts{DisableTokenCheck: true})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBotNotInitialized, err)
	}

	return &Impl{bot: b, chatID: chatID}, nil
}

// OnNotify forwards days that need attention to the configured chat.
func (service *Impl) OnNotify(e observer.Event) {
	text, ok := formatMessage(e)
	if !ok {
		return
	}

	_, err := service.bot.SendMessage(service.chatID, text, &gotgbot.SendMessageOpts{ParseMode: "HTML"})
	if err != nil {
		log.Error().Err(err).Str(constants.LogDay, e.Day).Msg("Cannot send telegram notification")
	}
}

func formatMessage(e observer.Event) (string, bool) {
	switch e.E {
	case observer.DayPartialEvent:
		return fmt.Sprintf("⚠️ <b>%s</b> indexed without: %s", e.Day, strings.Join(e.FailedSymbols, ", ")), true
	case observer.DayFailedEvent:
		reason := "unknown error"
		if e.Err != nil {
			reason = e.Err.Error()
		}
		return fmt.Sprintf("❌ <b>%s</b> not indexed, will retry on next run\n<code>%s</code>", e.Day, escape(reason)), true
	default:
		return "", false
	}
}

func escape(text string) string {
	return strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;").Replace(text)
}
