package command

import (
	"telemora/internal/tonbot/buttons"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestArgs(t *testing.T) {
	assert.Equal(t, []string{"EQabc", "1.5"}, args("/pay EQabc   1.5"))
	assert.Empty(t, args("/pay"))
	assert.Nil(t, args(buttons.Pay))
	assert.Nil(t, args(buttons.ConnectWallet))
	assert.Nil(t, args("   "))
}
