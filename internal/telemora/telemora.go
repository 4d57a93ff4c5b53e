package telemora

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/xssnick/tonutils-go/address"
	"github.com/xssnick/tonutils-go/tlb"
	"github.com/xssnick/tonutils-go/ton"
	"github.com/xssnick/tonutils-go/tvm/cell"
)

const (
	MethodGetAdminAddress      = "get_admin_address"
	MethodGetCommissionPercent = "get_commission_percent"
)

var (
	ErrCommissionNotInt64  = errors.New("commission does not fit int64")
	ErrWorkchainOutOfRange = errors.New("workchain out of int8 range")
)

// Telemora is a handle to one payment contract. Init is set only for
// instances derived from a Config, i.e. not yet known to be deployed.
type Telemora struct {
	Address *address.Address
	Init    *tlb.StateInit
}

type WithdrawOptions struct {
	Value          tlb.Coins
	SenderAddress  *address.Address
	WithdrawAmount tlb.Coins
	// QueryID is kept with the operation record only; the contract body has no slot for it.
	QueryID uint64
}

type PaymentOptions struct {
	Value         tlb.Coins
	SellerAddress *address.Address
	// QueryID is kept with the operation record only; the contract body has no slot for it.
	QueryID uint64
}

// AdminAddress is the result of get_admin_address. Set is false when the
// contract reports no admin.
type AdminAddress struct {
	Addr *address.Address
	Set  bool
}

func (a AdminAddress) String() string {
	if !a.Set {
		return ""
	}
	return a.Addr.String()
}

func CreateFromAddress(addr *address.Address) *Telemora {
	return &Telemora{Address: addr}
}

// CreateFromConfig derives the contract address from code and the data built
// from cfg. Workchain defaults to 0.
func CreateFromConfig(cfg Config, code *cell.Cell, workchain ...int) (*Telemora, error) {
	wc := 0
	if len(workchain) > 0 {
		wc = workchain[0]
	}
	if wc < math.MinInt8 || wc > math.MaxInt8 {
		return nil, fmt.Errorf("%w: %d", ErrWorkchainOutOfRange, wc)
	}

	data, err := ConfigToCell(cfg)
	if err != nil {
		return nil, err
	}

	init := &tlb.StateInit{
		Code: code,
		Data: data,
	}
	addr, err := contractAddress(wc, init)
	if err != nil {
		return nil, err
	}

	return &Telemora{
		Address: addr,
		Init:    init,
	}, nil
}

func contractAddress(workchain int, init *tlb.StateInit) (*address.Address, error) {
	stateCell, err := tlb.ToCell(init)
	if err != nil {
		return nil, fmt.Errorf("failed to build state init: %w", err)
	}
	return address.NewAddress(0, byte(workchain), stateCell.Hash()), nil
}

// Provider returns a liteserver provider bound to this contract.
func (t *Telemora) Provider(api ton.APIClientWrapped) *LiteProvider {
	return NewLiteProvider(api, t.Address, t.Init)
}

func (t *Telemora) SendDeploy(ctx context.Context, p Provider, via Sender, value tlb.Coins) error {
	if err := p.Internal(ctx, via, InternalArgs{
		Value:    value,
		SendMode: deployMode,
		Body:     DeployBody(),
	}); err != nil {
		return fmt.Errorf("failed to send deploy: %w", err)
	}
	return nil
}

// GetBalance returns the contract balance in nanotons without narrowing.
func (t *Telemora) GetBalance(ctx context.Context, p Provider) (tlb.Coins, error) {
	acc, err := p.GetState(ctx)
	if err != nil {
		return tlb.Coins{}, err
	}
	if acc.State == nil {
		return tlb.FromNanoTONU(0), nil
	}
	return acc.State.Balance, nil
}

func (t *Telemora) SendWithdraw(ctx context.Context, p Provider, via Sender, opts WithdrawOptions) error {
	body, err := WithdrawBody(opts.SenderAddress, opts.WithdrawAmount)
	if err != nil {
		return err
	}

	if err = p.Internal(ctx, via, InternalArgs{
		Value:    opts.Value,
		SendMode: callMode,
		Body:     body,
	}); err != nil {
		return fmt.Errorf("failed to send %s: %w", OpAdminWithdraw, err)
	}
	return nil
}

func (t *Telemora) SendPayment(ctx context.Context, p Provider, via Sender, opts PaymentOptions) error {
	body, err := PaymentBody(opts.SellerAddress)
	if err != nil {
		return err
	}

	if err = p.Internal(ctx, via, InternalArgs{
		Value:    opts.Value,
		SendMode: callMode,
		Body:     body,
	}); err != nil {
		return fmt.Errorf("failed to send %s: %w", OpPayment, err)
	}
	return nil
}

func (t *Telemora) GetAdminAddress(ctx context.Context, p Provider) (AdminAddress, error) {
	res, err := p.Get(ctx, MethodGetAdminAddress)
	if err != nil {
		return AdminAddress{}, err
	}

	isNil, err := res.IsNil(0)
	if err != nil {
		return AdminAddress{}, fmt.Errorf("failed to read %s result: %w", MethodGetAdminAddress, err)
	}
	if isNil {
		return AdminAddress{}, nil
	}

	slice, err := sliceAt(res, 0)
	if err != nil {
		return AdminAddress{}, fmt.Errorf("failed to read %s result: %w", MethodGetAdminAddress, err)
	}

	addr, err := slice.LoadAddr()
	if err != nil {
		return AdminAddress{}, fmt.Errorf("failed to parse admin address: %w", err)
	}
	if addr.IsAddrNone() {
		return AdminAddress{}, nil
	}
	return AdminAddress{Addr: addr, Set: true}, nil
}

// sliceAt reads a cell, slice or builder slot as a slice.
func sliceAt(res Stack, index uint) (*cell.Slice, error) {
	if s, err := res.Slice(index); err == nil {
		return s, nil
	}
	if c, err := res.Cell(index); err == nil {
		return c.BeginParse(), nil
	}
	b, err := res.Builder(index)
	if err != nil {
		return nil, fmt.Errorf("slot %d is not a cell, slice or builder: %w", index, err)
	}
	return b.EndCell().BeginParse(), nil
}

func (t *Telemora) GetCommissionPercent(ctx context.Context, p Provider) (int64, error) {
	res, err := p.Get(ctx, MethodGetCommissionPercent)
	if err != nil {
		return 0, err
	}

	val, err := res.Int(0)
	if err != nil {
		return 0, fmt.Errorf("failed to read %s result: %w", MethodGetCommissionPercent, err)
	}
	if !val.IsInt64() {
		return 0, fmt.Errorf("%w: %s", ErrCommissionNotInt64, val.String())
	}
	return val.Int64(), nil
}
