package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecutor_ForwardsInOrder(t *testing.T) {
	msgs := make(chan tea.Msg, 8)
	e := NewExecutor(nil)
	e.setSender(func(msg tea.Msg) { msgs <- msg })
	require.NoError(t, e.Start())

	var ran []int
	for i := 1; i <= 3; i++ {
		n := i
		require.NoError(t, e.Post(func() { ran = append(ran, n) }))
	}
	require.NoError(t, e.Stop())

	for i := 0; i < 3; i++ {
		select {
		case msg := <-msgs:
			exec, ok := msg.(execMsg)
			require.True(t, ok)
			exec.fn()
		case <-time.After(2 * time.Second):
			t.Fatal("message not forwarded")
		}
	}
	assert.Equal(t, []int{1, 2, 3}, ran)
}

func TestExecutor_DropsBeforeAttach(t *testing.T) {
	e := NewExecutor(nil)
	require.NoError(t, e.Start())

	ran := false
	require.NoError(t, e.Post(func() { ran = true }))
	require.NoError(t, e.Stop())

	assert.False(t, ran)
}

func TestExecutor_RejectsAfterStop(t *testing.T) {
	e := NewExecutor(nil)
	require.NoError(t, e.Start())
	require.NoError(t, e.Stop())

	assert.Error(t, e.Post(func() {}))
}
