package telemora

import (
	"fmt"

	"github.com/xssnick/tonutils-go/address"
	"github.com/xssnick/tonutils-go/tlb"
	"github.com/xssnick/tonutils-go/tvm/cell"
)

// AdminWithdraw asks the contract to send WithdrawAmount to SenderAddress.
type AdminWithdraw struct {
	_              tlb.Magic        `tlb:"#4cdd6f51"`
	SenderAddress  *address.Address `tlb:"addr"`
	WithdrawAmount tlb.Coins        `tlb:"."`
}

// Payment forwards the attached value to SellerAddress minus the commission.
type Payment struct {
	_             tlb.Magic        `tlb:"#01b40800"`
	SellerAddress *address.Address `tlb:"addr"`
}

func DeployBody() *cell.Cell {
	return cell.BeginCell().EndCell()
}

func WithdrawBody(senderAddress *address.Address, amount tlb.Coins) (*cell.Cell, error) {
	c, err := tlb.ToCell(AdminWithdraw{
		SenderAddress:  senderAddress,
		WithdrawAmount: amount,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build %s body: %w", OpAdminWithdraw, err)
	}
	return c, nil
}

func PaymentBody(sellerAddress *address.Address) (*cell.Cell, error) {
	c, err := tlb.ToCell(Payment{
		SellerAddress: sellerAddress,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build %s body: %w", OpPayment, err)
	}
	return c, nil
}

// ParseOpcode reads the leading opcode of a message body without consuming it.
func ParseOpcode(body *cell.Cell) (Opcode, error) {
	op, err := body.BeginParse().PreloadUInt(32)
	if err != nil {
		return 0, fmt.Errorf("failed to read opcode: %w", err)
	}
	return Opcode(op), nil
}

func ParseWithdraw(body *cell.Cell) (*AdminWithdraw, error) {
	var msg AdminWithdraw
	if err := tlb.LoadFromCell(&msg, body.BeginParse()); err != nil {
		return nil, fmt.Errorf("failed to parse %s body: %w", OpAdminWithdraw, err)
	}
	return &msg, nil
}

func ParsePayment(body *cell.Cell) (*Payment, error) {
	var msg Payment
	if err := tlb.LoadFromCell(&msg, body.BeginParse()); err != nil {
		return nil, fmt.Errorf("failed to parse %s body: %w", OpPayment, err)
	}
	return &msg, nil
}
