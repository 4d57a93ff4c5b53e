package userstate

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStateLifecycle(t *testing.T) {
	const chat = int64(42)

	require.Equal(t, None, Current(chat))

	SetState(chat, EnterSellerAddr)
	SetValue(chat, "seller", "EQ")
	require.Equal(t, EnterSellerAddr, Current(chat))

	v, ok := Value(chat, "seller")
	require.True(t, ok)
	require.Equal(t, "EQ", v)

	ResetState(chat)
	require.Equal(t, None, Current(chat))
	_, ok = Value(chat, "seller")
	require.False(t, ok)
}
