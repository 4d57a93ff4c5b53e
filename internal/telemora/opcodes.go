package telemora

import (
	"fmt"
	"strings"

	"github.com/xssnick/tonutils-go/ton/wallet"
)

// Opcode is the 32-bit tag a Telemora message body starts with.
type Opcode uint32

const (
	OpAdminWithdraw Opcode = 0x4cdd6f51
	OpPayment       Opcode = 0x1b40800
)

func (o Opcode) String() string {
	switch o {
	case OpAdminWithdraw:
		return "admin_withdraw"
	case OpPayment:
		return "payment"
	default:
		return fmt.Sprintf("unknown(0x%x)", uint32(o))
	}
}

// SendMode is the flag set passed to the wallet together with an outbound message.
type SendMode uint8

const (
	// SendModePayGasSeparately pays forwarding fees from the wallet balance
	// instead of deducting them from the message value.
	SendModePayGasSeparately SendMode = wallet.PayGasSeparately
	// SendModeIgnoreErrors keeps the sending transaction alive when the
	// message cannot be delivered.
	SendModeIgnoreErrors SendMode = wallet.IgnoreErrors
)

// Modes used by the contract calls.
const (
	deployMode = SendModePayGasSeparately
	callMode   = SendModePayGasSeparately | SendModeIgnoreErrors
)

func (m SendMode) Has(flag SendMode) bool {
	return m&flag == flag
}

func (m SendMode) String() string {
	if m == 0 {
		return "ordinary"
	}

	var parts []string
	if m.Has(SendModePayGasSeparately) {
		parts = append(parts, "pay_gas_separately")
	}
	if m.Has(SendModeIgnoreErrors) {
		parts = append(parts, "ignore_errors")
	}
	if rest := m &^ (SendModePayGasSeparately | SendModeIgnoreErrors); rest != 0 {
		parts = append(parts, fmt.Sprintf("0x%x", uint8(rest)))
	}
	return strings.Join(parts, "|")
}
