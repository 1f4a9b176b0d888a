package observer

type EventType int

const (
	DayIndexedEvent EventType = 1
	DayPartialEvent EventType = 2
	DayFailedEvent  EventType = 3
)

type Event struct {
	E             EventType
	Day           string
	FailedSymbols []string
	Err           error
}

func NewDayIndexedEvent(day string) Event {
	return Event{E: DayIndexedEvent, Day: day}
}

func NewDayPartialEvent(day string, failedSymbols []string) Event {
	return Event{E: DayPartialEvent, Day: day, FailedSymbols: failedSymbols}
}

func NewDayFailedEvent(day string, err error) Event {
	return Event{E: DayFailedEvent, Day: day, Err: err}
}

type Observer interface {
	OnNotify(Event)
}

type Notifier interface {
	RegisterObserver(Observer)
}
