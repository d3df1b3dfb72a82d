package events

import "testing"

func TestPublishRunsHandlersInPriorityOrder(t *testing.T) {
	b := NewBus()

	var order []string
	b.Subscribe("test", 10, func(Event) { order = append(order, "late") })
	b.Subscribe("test", 0, func(Event) { order = append(order, "early") })
	b.Subscribe("test", 5, func(Event) { order = append(order, "middle") })

	b.Publish(Event{Name: "test"})

	want := []string{"early", "middle", "late"}
	if len(order) != len(want) {
		t.Fatalf("Expected %d handler calls, got %d", len(want), len(order))
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("Handler %d: expected %q, got %q", i, want[i], order[i])
		}
	}
}

func TestEqualPrioritiesKeepSubscriptionOrder(t *testing.T) {
	b := NewBus()

	var order []int
	for i := 0; i < 5; i++ {
		i := i
		b.Subscribe("test", 1, func(Event) { order = append(order, i) })
	}

	b.Publish(Event{Name: "test"})
	for i, got := range order {
		if got != i {
			t.Fatalf("Expected stable order for equal priorities, got %v", order)
		}
	}
}

func TestUnsubscribeByID(t *testing.T) {
	b := NewBus()

	calls := 0
	id := b.Subscribe("test", 0, func(Event) { calls++ })
	keep := 0
	b.Subscribe("test", 1, func(Event) { keep++ })

	b.Publish(Event{Name: "test"})
	b.Unsubscribe(id)
	b.Publish(Event{Name: "test"})

	if calls != 1 {
		t.Errorf("Removed handler should not run again, got %d calls", calls)
	}
	if keep != 2 {
		t.Errorf("Other handlers must survive removal, got %d calls", keep)
	}
}

func TestNameFiltering(t *testing.T) {
	b := NewBus()

	var chaffCalls, anyCalls int
	b.Subscribe(ChaffDeployed, 0, func(Event) { chaffCalls++ })
	b.Subscribe("", 0, func(Event) { anyCalls++ })

	b.Publish(Event{Name: ChaffDeployed})
	b.Publish(Event{Name: IFFResponse})

	if chaffCalls != 1 {
		t.Errorf("Named subscriber should see only its event, got %d", chaffCalls)
	}
	if anyCalls != 2 {
		t.Errorf("Wildcard subscriber should see every event, got %d", anyCalls)
	}
}

func TestHandlerMayUnsubscribeDuringDelivery(t *testing.T) {
	b := NewBus()

	var id SubscriptionID
	calls := 0
	id = b.Subscribe("test", 0, func(Event) {
		calls++
		b.Unsubscribe(id)
	})

	b.Publish(Event{Name: "test"})
	b.Publish(Event{Name: "test"})

	if calls != 1 {
		t.Errorf("Self-removing handler should run once, got %d", calls)
	}
}
