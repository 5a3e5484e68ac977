package notify_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"truthguard-bot/api/internal/notify"
)

func texts(ns []notify.Notice) []string {
	out := make([]string, 0, len(ns))
	for _, n := range ns {
		out = append(out, n.Text)
	}
	return out
}

func TestPushAndActive(t *testing.T) {
	var q notify.Queue
	q.Push("first", 0, 2)
	q.Push("second", 0, 0) // one-shot: active at tick 0 only

	require.Equal(t, []string{"first", "second"}, texts(q.Active(0)))
	require.Equal(t, []string{"first"}, texts(q.Active(1)))
	require.Empty(t, q.Active(3))
}

func TestExpireDropsOldNotices(t *testing.T) {
	var q notify.Queue
	q.Push("short", 0, 1)
	q.Push("long", 0, 5)

	q.Expire(3)
	require.Equal(t, []string{"long"}, texts(q.Active(3)))

	q.Expire(6)
	require.Empty(t, q.Active(6))
}

func TestDrainClearsQueue(t *testing.T) {
	var q notify.Queue
	q.Push("stale", 0, 0)
	q.Push("fresh", 2, 3)

	got := q.Drain(2)
	require.Equal(t, []string{"fresh"}, texts(got), "drain returns only still-active notices")
	require.Empty(t, q.Active(2), "drain removes everything")
}

func TestInsertionOrderPreserved(t *testing.T) {
	var q notify.Queue
	for _, s := range []string{"a", "b", "c"} {
		q.Push(s, 0, 10)
	}
	require.Equal(t, []string{"a", "b", "c"}, texts(q.Active(5)))
}
