package telemora

import (
	"context"
	"fmt"
	"math/big"

	"github.com/xssnick/tonutils-go/address"
	"github.com/xssnick/tonutils-go/tlb"
	"github.com/xssnick/tonutils-go/ton"
	"github.com/xssnick/tonutils-go/ton/wallet"
	"github.com/xssnick/tonutils-go/tvm/cell"
)

// Sender signs and submits an outbound message. *wallet.Wallet satisfies it.
type Sender interface {
	Send(ctx context.Context, message *wallet.Message, waitConfirmation ...bool) error
}

// InternalArgs describes an internal message to the contract.
type InternalArgs struct {
	Value    tlb.Coins
	SendMode SendMode
	Body     *cell.Cell
}

// Stack is the part of a get-method result the binding reads.
// *ton.ExecutionResult satisfies it.
type Stack interface {
	IsNil(index uint) (bool, error)
	Int(index uint) (*big.Int, error)
	Slice(index uint) (*cell.Slice, error)
	Cell(index uint) (*cell.Cell, error)
	Builder(index uint) (*cell.Builder, error)
}

// Provider gives access to one contract account.
type Provider interface {
	GetState(ctx context.Context) (*tlb.Account, error)
	Get(ctx context.Context, method string, params ...any) (Stack, error)
	Internal(ctx context.Context, via Sender, args InternalArgs) error
}

// LiteProvider is a Provider backed by a liteserver connection.
type LiteProvider struct {
	api  ton.APIClientWrapped
	addr *address.Address
	init *tlb.StateInit
}

// NewLiteProvider binds api to addr. When init is not nil it is attached to
// outgoing messages until the account becomes active.
func NewLiteProvider(api ton.APIClientWrapped, addr *address.Address, init *tlb.StateInit) *LiteProvider {
	return &LiteProvider{
		api:  api,
		addr: addr,
		init: init,
	}
}

func (p *LiteProvider) Address() *address.Address {
	return p.addr
}

func (p *LiteProvider) GetState(ctx context.Context) (*tlb.Account, error) {
	block, err := p.api.CurrentMasterchainInfo(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get masterchain info: %w", err)
	}

	acc, err := p.api.WaitForBlock(block.SeqNo).GetAccount(ctx, block, p.addr)
	if err != nil {
		return nil, fmt.Errorf("failed to get account %s: %w", p.addr.String(), err)
	}
	return acc, nil
}

func (p *LiteProvider) Get(ctx context.Context, method string, params ...any) (Stack, error) {
	block, err := p.api.CurrentMasterchainInfo(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get masterchain info: %w", err)
	}

	res, err := p.api.WaitForBlock(block.SeqNo).RunGetMethod(ctx, block, p.addr, method, params...)
	if err != nil {
		return nil, fmt.Errorf("failed to run get method %s: %w", method, err)
	}
	return res, nil
}

func (p *LiteProvider) Internal(ctx context.Context, via Sender, args InternalArgs) error {
	var init *tlb.StateInit
	if p.init != nil {
		acc, err := p.GetState(ctx)
		if err != nil {
			return err
		}
		if !acc.IsActive {
			init = p.init
		}
	}

	body := args.Body
	if body == nil {
		body = cell.BeginCell().EndCell()
	}

	return via.Send(ctx, &wallet.Message{
		Mode: uint8(args.SendMode),
		InternalMessage: &tlb.InternalMessage{
			IHRDisabled: true,
			Bounce:      init == nil,
			DstAddr:     p.addr,
			Amount:      args.Value,
			Body:        body,
			StateInit:   init,
		},
	})
}
