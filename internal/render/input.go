package render

// KeyEdgeEvents builds the events for one tick from polled key state, for
// backends that expose "just pressed" and "just released" queries rather than
// an event queue. A closing window or a fresh Escape press yields a quit
// first. Releases come before presses so a key pressed in the same tick
// another is released wins.
func KeyEdgeEvents(closing bool, keys []Key, justPressed, justReleased func(Key) bool) []Event {
	var events []Event

	if closing || justPressed(KeyEscape) {
		events = append(events, Event{Type: EventQuit})
	}

	for _, key := range keys {
		if justReleased(key) {
			events = append(events, Event{Type: EventKeyUp, Key: key})
		}
	}
	for _, key := range keys {
		if justPressed(key) {
			events = append(events, Event{Type: EventKeyDown, Key: key})
		}
	}

	return events
}
