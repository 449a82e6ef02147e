package host

import "fmt"

// Event is passed to listeners that accept one.
type Event struct {
	Type    string
	Target  *Node
	Payload any
}

// Dispatch calls the listener of n for event and reports whether there was
// one. Listeners may be func(), func(Event) or func(any); the latter
// receives payload.
func Dispatch(n *Node, event string, payload any) bool {
	handler, ok := n.Listeners[event]
	if !ok {
		return false
	}
	switch h := handler.(type) {
	case func():
		h()
	case func(Event):
		h(Event{Type: event, Target: n, Payload: payload})
	case func(any):
		h(payload)
	default:
		panic(fmt.Sprintf("host: unsupported %s listener %T", event, handler))
	}
	return true
}
