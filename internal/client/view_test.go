package client

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestViewRefreshFailureKeepsItems(t *testing.T) {
	fail := false
	v := NewView("numbers", 0, func(context.Context) ([]int, error) {
		if fail {
			return nil, errors.New("connection reset")
		}
		return []int{1, 2, 3}, nil
	})

	assert.True(t, v.Stale())
	require.NoError(t, v.Refresh(context.Background()))
	assert.Equal(t, []int{1, 2, 3}, v.Items())
	assert.False(t, v.Stale())

	fail = true
	assert.Error(t, v.Refresh(context.Background()))
	assert.Equal(t, []int{1, 2, 3}, v.Items())
	assert.Error(t, v.Err())
}

func TestViewGetRefreshesWhenStale(t *testing.T) {
	loads := 0
	v := NewView("numbers", 20*time.Millisecond, func(context.Context) ([]int, error) {
		loads++
		return []int{loads}, nil
	})

	assert.Equal(t, []int{1}, v.Get(context.Background()))
	assert.Equal(t, []int{1}, v.Get(context.Background()))

	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, []int{2}, v.Get(context.Background()))
}

func TestViewAppend(t *testing.T) {
	v := NewView("numbers", 0, func(context.Context) ([]int, error) { return []int{1}, nil })
	require.NoError(t, v.Refresh(context.Background()))

	v.Append(2)
	assert.Equal(t, []int{1, 2}, v.Items())

	items := v.Items()
	items[0] = 99
	assert.Equal(t, []int{1, 2}, v.Items())
}
