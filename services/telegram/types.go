package telegram

import (
	"errors"

	"github.com/PaulSonOfLars/gotgbot/v2"
)

var (
	ErrTokenIsMissing    = errors.New("telegram token is missing")
	ErrChatIsMissing     = errors.New("telegram chat is missing")
	ErrBotNotInitialized = errors.New("telegram bot is not ready yet")
)

type sender interface {
	SendMessage(chatID int64, text string, opts *gotgbot.SendMessageOpts) (*gotgbot.Message, error)
}

type Impl struct {
	bot    sender
	chatID int64
}
