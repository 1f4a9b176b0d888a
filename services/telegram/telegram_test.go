package telegram

import (
	"errors"
	"testing"

	"price-indexer/pkg/observer"

	"github.com/PaulSonOfLars/gotgbot/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBot struct {
	chatIDs []int64
	texts   []string
	err     error
}

func (f *fakeBot) SendMessage(chatID int64, text string, _ *gotgbot.SendMessageOpts) (*gotgbot.Message, error) {
	f.chatIDs = append(f.chatIDs, chatID)
	f.texts = append(f.texts, text)
	return &gotgbot.Message{}, f.err
}

func TestNewRequiresTokenAndChat(t *testing.T) {
	_, err := New("", 42)
	assert.ErrorIs(t, err, ErrTokenIsMissing)

	_, err = New("123:abc", 0)
	assert.ErrorIs(t, err, ErrChatIsMissing)

	service, err := New("123:abc", 42)
	require.NoError(t, err)
	assert.Equal(t, int64(42), service.chatID)
}

func TestFormatMessage(t *testing.T) {
	_, ok := formatMessage(observer.NewDayIndexedEvent("2024-01-01"))
	assert.False(t, ok)

	text, ok := formatMessage(observer.NewDayPartialEvent("2024-01-01", []string{"DOT", "KSM"}))
	assert.True(t, ok)
	assert.Equal(t, "⚠️ <b>2024-01-01</b> indexed without: DOT, KSM", text)

	text, ok = formatMessage(observer.NewDayFailedEvent("2024-01-01", errors.New("fiat GBP: <401>")))
	assert.True(t, ok)
	assert.Contains(t, text, "<code>fiat GBP: &lt;401&gt;</code>")
}

func TestOnNotify(t *testing.T) {
	bot := &fakeBot{}
	service := &Impl{bot: bot, chatID: 7}

	service.OnNotify(observer.NewDayIndexedEvent("2024-01-01"))
	assert.Empty(t, bot.texts)

	service.OnNotify(observer.NewDayPartialEvent("2024-01-02", []string{"DOT"}))
	require.Len(t, bot.texts, 1)
	assert.Equal(t, []int64{7}, bot.chatIDs)

	bot.err = errors.New("blocked by user")
	assert.NotPanics(t, func() { service.OnNotify(observer.NewDayFailedEvent("2024-01-03", nil)) })
	assert.Len(t, bot.texts, 2)
}
