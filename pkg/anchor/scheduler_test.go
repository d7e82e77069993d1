package anchor

import "testing"

// TestQueueDefersNestedSchedules verifies callbacks queued during a drain wait
// for the next one.
func TestQueueDefersNestedSchedules(t *testing.T) {
	q := &Queue{}
	var order []int
	q.Schedule(func() {
		order = append(order, 1)
		q.Schedule(func() { order = append(order, 2) })
	})
	if q.Drain() != 1 || len(order) != 1 {
		t.Fatalf("expected one callback, got %v", order)
	}
	if q.Len() != 1 {
		t.Errorf("expected the nested callback to wait, got %d pending", q.Len())
	}
	q.Drain()
	if len(order) != 2 || order[1] != 2 {
		t.Errorf("expected [1 2], got %v", order)
	}
}
