package events

import "sync"

// FakeSink records published events for test assertions
type FakeSink struct {
	mu     sync.Mutex
	events []Event
}

func NewFakeSink() *FakeSink {
	return &FakeSink{}
}

func (f *FakeSink) Publish(event Event) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, event)
}

func (f *FakeSink) Events() []Event {
	f.mu.Lock()
	defer f.mu.Unlock()
	result := make([]Event, len(f.events))
	copy(result, f.events)
	return result
}

// Types returns the types of all recorded events in order
func (f *FakeSink) Types() []Type {
	var result []Type
	for _, event := range f.Events() {
		result = append(result, event.Type)
	}
	return result
}
