package facecache

// Event is a cache occurrence reported to an Observer.
type Event uint8

const (
	EventHit Event = iota
	EventMiss
	EventRealize
	EventEvict
	EventClear
)

var eventNames = [...]string{
	EventHit:     "hit",
	EventMiss:    "miss",
	EventRealize: "realize",
	EventEvict:   "evict",
	EventClear:   "clear",
}

func (e Event) String() string {
	if int(e) < len(eventNames) {
		return eventNames[e]
	}
	return "unknown"
}

// Observer receives cache events. Observe is called with the cache lock
// held and must not call back into the cache.
type Observer interface {
	Observe(surface string, event Event)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(surface string, event Event)

// Observe implements Observer.
func (f ObserverFunc) Observe(surface string, event Event) { f(surface, event) }
