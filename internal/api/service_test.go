package api

import (
	"testing"
)

func TestPublishRingBuffer(t *testing.T) {
	s := New(Config{EventsBuffer: 2}, nil, nil, nil)

	s.publish("a", EventSnapshotSaved, nil)
	s.publish("a", EventTransactionAdded, nil)
	s.publish("a", EventGoalAdded, nil)

	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.events) != 2 {
		t.Fatalf("events len = %d, want 2", len(s.events))
	}
	if s.events[0].ID != 2 || s.events[1].ID != 3 {
		t.Fatalf("events ring contains IDs [%d, %d], want [2, 3]", s.events[0].ID, s.events[1].ID)
	}
}

func TestEventsForFiltersBySubject(t *testing.T) {
	s := New(Config{}, nil, nil, nil)

	s.publish("a", EventSnapshotSaved, nil)
	s.publish("b", EventSnapshotSaved, nil)
	s.publish("a", EventTransactionAdded, nil)

	got := s.eventsFor("a")
	if len(got) != 2 {
		t.Fatalf("eventsFor(a) len = %d, want 2", len(got))
	}
	if got[0].Type != EventSnapshotSaved || got[1].Type != EventTransactionAdded {
		t.Errorf("eventsFor(a) types = [%s, %s]", got[0].Type, got[1].Type)
	}
	if n := len(s.eventsFor("nobody")); n != 0 {
		t.Errorf("eventsFor(nobody) len = %d, want 0", n)
	}
}

func TestPublishFanOut(t *testing.T) {
	s := New(Config{}, nil, nil, nil)

	mine := make(chan Event, 1)
	theirs := make(chan Event, 1)
	full := make(chan Event) // unbuffered, never read
	s.addSubscriber("a", mine)
	s.addSubscriber("b", theirs)
	id := s.addSubscriber("a", full)

	s.publish("a", EventGoalAdded, nil)

	select {
	case ev := <-mine:
		if ev.Type != EventGoalAdded {
			t.Errorf("event type = %q, want %q", ev.Type, EventGoalAdded)
		}
	default:
		t.Fatal("subscriber for a did not receive the event")
	}
	select {
	case ev := <-theirs:
		t.Fatalf("subscriber for b received %+v", ev)
	default:
	}

	s.removeSubscriber(id)
	if st := s.status(); st.SubscriberCount != 2 || st.EventCount != 1 {
		t.Errorf("status = %+v, want 2 subscribers and 1 event", st)
	}
}
