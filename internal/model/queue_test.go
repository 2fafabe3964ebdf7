package model

import "testing"

func TestQueuePairsLongestWaiting(t *testing.T) {
	q := NewQueue()

	if _, _, ok := q.NextPair(); ok {
		t.Fatal("empty queue must not produce a pair")
	}

	for _, id := range []string{"a", "b", "c"} {
		if err := q.Add(Player{ID: id}); err != nil {
			t.Fatalf("add %s: %v", id, err)
		}
	}
	if err := q.Add(Player{ID: "a"}); err == nil {
		t.Fatal("duplicate enqueue must fail")
	}

	p1, p2, ok := q.NextPair()
	if !ok || p1.ID != "a" || p2.ID != "b" {
		t.Fatalf("got pair (%s,%s,%v), want (a,b,true)", p1.ID, p2.ID, ok)
	}
	if q.Size() != 1 {
		t.Fatalf("size = %d, want 1", q.Size())
	}
	if _, _, ok := q.NextPair(); ok {
		t.Fatal("single waiting player must not be paired")
	}
}

func TestQueueCancel(t *testing.T) {
	q := NewQueue()
	if err := q.Add(Player{ID: "a"}); err != nil {
		t.Fatalf("add: %v", err)
	}

	if !q.Remove("a") {
		t.Fatal("cancel of waiting player must succeed")
	}
	if q.Remove("a") {
		t.Fatal("second cancel must report not found")
	}
	if q.Size() != 0 {
		t.Fatalf("size = %d, want 0", q.Size())
	}

	// Cancelled player can re-enter.
	if err := q.Add(Player{ID: "a"}); err != nil {
		t.Fatalf("re-add after cancel: %v", err)
	}
}
