package containers_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spaghettifunk/viewgeom/engine/containers"
)

func TestRingQueue(t *testing.T) {
	q := containers.NewRingQueue[int](3)
	assert.True(t, q.IsEmpty())

	_, err := q.Dequeue()
	assert.ErrorIs(t, err, containers.ErrQueueEmpty)
	_, err = q.Peek()
	assert.ErrorIs(t, err, containers.ErrQueueEmpty)

	for i := 1; i <= 3; i++ {
		require.NoError(t, q.Enqueue(i))
	}
	assert.True(t, q.IsFull())
	assert.ErrorIs(t, q.Enqueue(4), containers.ErrQueueFull)

	head, err := q.Peek()
	require.NoError(t, err)
	assert.Equal(t, 1, head)

	v, err := q.Dequeue()
	require.NoError(t, err)
	assert.Equal(t, 1, v)
	assert.Equal(t, []int{2, 3}, q.Items())

	// Wraps around the backing slice.
	require.NoError(t, q.Enqueue(4))
	assert.Equal(t, []int{2, 3, 4}, q.Items())

	q.Push(5)
	assert.Equal(t, []int{3, 4, 5}, q.Items())
	assert.Equal(t, 3, q.Len())
}

func TestRingQueueMinimumSize(t *testing.T) {
	q := containers.NewRingQueue[string](0)
	q.Push("a")
	q.Push("b")
	assert.Equal(t, []string{"b"}, q.Items())
}
