package telemora

import (
	"bytes"
	"context"
	"errors"
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xssnick/tonutils-go/address"
	"github.com/xssnick/tonutils-go/tlb"
	"github.com/xssnick/tonutils-go/ton/wallet"
	"github.com/xssnick/tonutils-go/tvm/cell"
)

func testAddr(b byte) *address.Address {
	return address.NewAddress(0, 0, bytes.Repeat([]byte{b}, 32))
}

func requireSameAddr(t *testing.T, expected, actual *address.Address) {
	t.Helper()
	require.NotNil(t, actual)
	require.Equal(t, expected.Workchain(), actual.Workchain(), "workchain mismatch")
	require.Equal(t, expected.Data(), actual.Data(), "hash part mismatch")
}

func testCode() *cell.Cell {
	return cell.BeginCell().MustStoreUInt(0xdeadbeef, 32).EndCell()
}

type sentMessage struct {
	msg  *wallet.Message
	wait []bool
}

type fakeSender struct {
	sent []sentMessage
	err  error
}

func (s *fakeSender) Send(_ context.Context, message *wallet.Message, waitConfirmation ...bool) error {
	s.sent = append(s.sent, sentMessage{msg: message, wait: waitConfirmation})
	return s.err
}

type fakeStack []any

func (s fakeStack) IsNil(index uint) (bool, error) {
	if int(index) >= len(s) {
		return false, errors.New("index out of range")
	}
	return s[index] == nil, nil
}

func (s fakeStack) Int(index uint) (*big.Int, error) {
	if int(index) >= len(s) {
		return nil, errors.New("index out of range")
	}
	v, ok := s[index].(*big.Int)
	if !ok {
		return nil, errors.New("not an int")
	}
	return v, nil
}

func (s fakeStack) Slice(index uint) (*cell.Slice, error) {
	if int(index) >= len(s) {
		return nil, errors.New("index out of range")
	}
	v, ok := s[index].(*cell.Slice)
	if !ok {
		return nil, errors.New("not a slice")
	}
	return v, nil
}

func (s fakeStack) Cell(index uint) (*cell.Cell, error) {
	if int(index) >= len(s) {
		return nil, errors.New("index out of range")
	}
	v, ok := s[index].(*cell.Cell)
	if !ok {
		return nil, errors.New("not a cell")
	}
	return v, nil
}

func (s fakeStack) Builder(index uint) (*cell.Builder, error) {
	if int(index) >= len(s) {
		return nil, errors.New("index out of range")
	}
	v, ok := s[index].(*cell.Builder)
	if !ok {
		return nil, errors.New("not a builder")
	}
	return v, nil
}

type fakeProvider struct {
	account  *tlb.Account
	stacks   map[string]fakeStack
	err      error
	internal []InternalArgs
	methods  []string
}

func (p *fakeProvider) GetState(context.Context) (*tlb.Account, error) {
	if p.err != nil {
		return nil, p.err
	}
	return p.account, nil
}

func (p *fakeProvider) Get(_ context.Context, method string, _ ...any) (Stack, error) {
	p.methods = append(p.methods, method)
	if p.err != nil {
		return nil, p.err
	}
	return p.stacks[method], nil
}

func (p *fakeProvider) Internal(ctx context.Context, via Sender, args InternalArgs) error {
	p.internal = append(p.internal, args)
	if p.err != nil {
		return p.err
	}
	return via.Send(ctx, &wallet.Message{Mode: uint8(args.SendMode)})
}

func TestConfigToCell_RoundTrip(t *testing.T) {
	admin := testAddr(0xA1)
	for _, bps := range []int16{MinCommissionBps, -1, 0, 1, 250, MaxCommissionBps} {
		c, err := ConfigToCell(Config{AdminAddress: admin, CommissionBps: bps})
		require.NoError(t, err)

		decoded, err := ConfigFromCell(c)
		require.NoError(t, err)
		requireSameAddr(t, admin, decoded.AdminAddress)
		require.Equal(t, bps, decoded.CommissionBps)
	}
}

func TestConfigToCell_Layout(t *testing.T) {
	admin := testAddr(0x42)
	c, err := ConfigToCell(Config{AdminAddress: admin, CommissionBps: -7})
	require.NoError(t, err)

	s := c.BeginParse()
	addr, err := s.LoadAddr()
	require.NoError(t, err)
	requireSameAddr(t, admin, addr)

	bps, err := s.LoadInt(11)
	require.NoError(t, err)
	require.Equal(t, int64(-7), bps)
	require.Zero(t, s.BitsLeft(), "data cell must hold exactly address and 11-bit commission")
}

func TestConfigToCell_OutOfRange(t *testing.T) {
	for _, bps := range []int16{MinCommissionBps - 1, MaxCommissionBps + 1, 10000} {
		c, err := ConfigToCell(Config{AdminAddress: testAddr(1), CommissionBps: bps})
		require.ErrorIs(t, err, ErrCommissionOutOfRange)
		require.Nil(t, c)
	}

	_, err := CreateFromConfig(Config{AdminAddress: testAddr(1), CommissionBps: 2048}, testCode())
	require.ErrorIs(t, err, ErrCommissionOutOfRange)
}

func TestCreateFromConfig_Deterministic(t *testing.T) {
	cfg := Config{AdminAddress: testAddr(0xA1), CommissionBps: 250}

	first, err := CreateFromConfig(cfg, testCode(), 0)
	require.NoError(t, err)
	second, err := CreateFromConfig(cfg, testCode(), 0)
	require.NoError(t, err)
	requireSameAddr(t, first.Address, second.Address)

	require.NotNil(t, first.Init)
	require.Equal(t, testCode().Hash(), first.Init.Code.Hash())

	decoded, err := ConfigFromCell(first.Init.Data)
	require.NoError(t, err)
	requireSameAddr(t, cfg.AdminAddress, decoded.AdminAddress)
	require.Equal(t, int16(250), decoded.CommissionBps)

	stateCell, err := tlb.ToCell(first.Init)
	require.NoError(t, err)
	require.Equal(t, stateCell.Hash(), first.Address.Data())
}

func TestCreateFromConfig_DefaultsAndWorkchain(t *testing.T) {
	cfg := Config{AdminAddress: testAddr(0xA1), CommissionBps: 250}

	def, err := CreateFromConfig(cfg, testCode())
	require.NoError(t, err)
	base, err := CreateFromConfig(cfg, testCode(), 0)
	require.NoError(t, err)
	requireSameAddr(t, base.Address, def.Address)

	master, err := CreateFromConfig(cfg, testCode(), -1)
	require.NoError(t, err)
	require.Equal(t, base.Address.Data(), master.Address.Data())
	require.NotEqual(t, base.Address.Workchain(), master.Address.Workchain())

	other, err := CreateFromConfig(Config{AdminAddress: cfg.AdminAddress, CommissionBps: 251}, testCode())
	require.NoError(t, err)
	require.NotEqual(t, base.Address.Data(), other.Address.Data())
}

func TestCreateFromConfig_WorkchainOutOfRange(t *testing.T) {
	cfg := Config{AdminAddress: testAddr(0xA1), CommissionBps: 250}

	for _, wc := range []int{256, 128, -129, -1000} {
		tm, err := CreateFromConfig(cfg, testCode(), wc)
		require.ErrorIs(t, err, ErrWorkchainOutOfRange, "workchain %d", wc)
		require.Nil(t, tm)
	}

	for _, wc := range []int{-128, 127} {
		tm, err := CreateFromConfig(cfg, testCode(), wc)
		require.NoError(t, err, "workchain %d", wc)
		require.Equal(t, int8(wc), int8(tm.Address.Workchain()))
	}
}

func TestGetAdminAddress_WrongSlotType(t *testing.T) {
	p := &fakeProvider{stacks: map[string]fakeStack{MethodGetAdminAddress: {big.NewInt(1)}}}

	_, err := CreateFromAddress(testAddr(9)).GetAdminAddress(context.Background(), p)
	require.Error(t, err)
}

func TestCreateFromAddress(t *testing.T) {
	addr := testAddr(7)
	tm := CreateFromAddress(addr)
	require.Same(t, addr, tm.Address)
	require.Nil(t, tm.Init)
}

func TestWithdrawBody(t *testing.T) {
	sender := testAddr(0x11)
	amount := tlb.MustFromTON("1.5")

	body, err := WithdrawBody(sender, amount)
	require.NoError(t, err)
	require.Equal(t, []byte{0x4C, 0xDD, 0x6F, 0x51}, body.BeginParse().MustLoadSlice(32))

	op, err := ParseOpcode(body)
	require.NoError(t, err)
	require.Equal(t, OpAdminWithdraw, op)

	s := body.BeginParse()
	s.MustLoadUInt(32)
	requireSameAddr(t, sender, s.MustLoadAddr())
	require.Equal(t, "1500000000", s.MustLoadBigCoins().String())
	require.Zero(t, s.BitsLeft())

	parsed, err := ParseWithdraw(body)
	require.NoError(t, err)
	requireSameAddr(t, sender, parsed.SenderAddress)
	require.Equal(t, amount.Nano().String(), parsed.WithdrawAmount.Nano().String())
}

func TestPaymentBody(t *testing.T) {
	seller := testAddr(0x22)

	body, err := PaymentBody(seller)
	require.NoError(t, err)
	require.Equal(t, []byte{0x01, 0xB4, 0x08, 0x00}, body.BeginParse().MustLoadSlice(32))
	require.Equal(t, uint64(0x1b40800), body.BeginParse().MustLoadUInt(32))

	s := body.BeginParse()
	s.MustLoadUInt(32)
	requireSameAddr(t, seller, s.MustLoadAddr())
	require.Zero(t, s.BitsLeft())

	parsed, err := ParsePayment(body)
	require.NoError(t, err)
	requireSameAddr(t, seller, parsed.SellerAddress)

	_, err = ParseWithdraw(body)
	require.Error(t, err, "payment body must not parse as withdraw")
}

func TestSendDeploy(t *testing.T) {
	tm, err := CreateFromConfig(Config{AdminAddress: testAddr(1), CommissionBps: 100}, testCode())
	require.NoError(t, err)

	p := &fakeProvider{}
	via := &fakeSender{}
	require.NoError(t, tm.SendDeploy(context.Background(), p, via, tlb.MustFromTON("0.05")))

	require.Len(t, p.internal, 1)
	args := p.internal[0]
	require.Equal(t, SendModePayGasSeparately, args.SendMode)
	require.False(t, args.SendMode.Has(SendModeIgnoreErrors))
	require.Zero(t, args.Body.BitsSize())
	require.Equal(t, "50000000", args.Value.Nano().String())
	require.Len(t, via.sent, 1)
}

func TestSendWithdraw(t *testing.T) {
	tm := CreateFromAddress(testAddr(9))
	p := &fakeProvider{}
	via := &fakeSender{}

	err := tm.SendWithdraw(context.Background(), p, via, WithdrawOptions{
		Value:          tlb.MustFromTON("0.05"),
		SenderAddress:  testAddr(0x11),
		WithdrawAmount: tlb.MustFromTON("3"),
		QueryID:        77,
	})
	require.NoError(t, err)

	require.Len(t, p.internal, 1)
	args := p.internal[0]
	require.Equal(t, SendModePayGasSeparately|SendModeIgnoreErrors, args.SendMode)
	require.Equal(t, uint8(3), uint8(args.SendMode))

	op, err := ParseOpcode(args.Body)
	require.NoError(t, err)
	require.Equal(t, OpAdminWithdraw, op)
}

func TestSendPayment(t *testing.T) {
	tm := CreateFromAddress(testAddr(9))
	p := &fakeProvider{}
	via := &fakeSender{}

	err := tm.SendPayment(context.Background(), p, via, PaymentOptions{
		Value:         tlb.MustFromTON("2"),
		SellerAddress: testAddr(0x22),
	})
	require.NoError(t, err)

	args := p.internal[0]
	require.Equal(t, callMode, args.SendMode)
	op, err := ParseOpcode(args.Body)
	require.NoError(t, err)
	require.Equal(t, OpPayment, op)
	require.Equal(t, "2000000000", args.Value.Nano().String())
}

func TestSend_PropagatesErrors(t *testing.T) {
	boom := errors.New("liteserver down")
	tm := CreateFromAddress(testAddr(9))
	p := &fakeProvider{}
	via := &fakeSender{err: boom}

	err := tm.SendPayment(context.Background(), p, via, PaymentOptions{
		Value:         tlb.MustFromTON("1"),
		SellerAddress: testAddr(0x22),
	})
	require.ErrorIs(t, err, boom)

	p.err = boom
	_, err = tm.GetBalance(context.Background(), p)
	require.ErrorIs(t, err, boom)
	_, err = tm.GetCommissionPercent(context.Background(), p)
	require.ErrorIs(t, err, boom)
	_, err = tm.GetAdminAddress(context.Background(), p)
	require.ErrorIs(t, err, boom)
}

func TestGetBalance_KeepsPrecision(t *testing.T) {
	nano, ok := new(big.Int).SetString("123456789012345678901234567", 10)
	require.True(t, ok)

	p := &fakeProvider{account: &tlb.Account{
		IsActive: true,
		State: &tlb.AccountState{
			IsValid:        true,
			AccountStorage: tlb.AccountStorage{Balance: tlb.FromNanoTON(nano)},
		},
	}}

	balance, err := CreateFromAddress(testAddr(9)).GetBalance(context.Background(), p)
	require.NoError(t, err)
	require.Equal(t, nano.String(), balance.Nano().String())
}

func TestGetBalance_NotDeployed(t *testing.T) {
	p := &fakeProvider{account: &tlb.Account{}}

	balance, err := CreateFromAddress(testAddr(9)).GetBalance(context.Background(), p)
	require.NoError(t, err)
	require.Zero(t, balance.Nano().Sign())
}

func TestGetAdminAddress(t *testing.T) {
	admin := testAddr(0xA1)
	tm := CreateFromAddress(testAddr(9))

	cases := []struct {
		name  string
		stack fakeStack
		set   bool
	}{
		{"null", fakeStack{nil}, false},
		{"addr_none", fakeStack{cell.BeginCell().MustStoreAddr(nil).EndCell().BeginParse()}, false},
		{"address", fakeStack{cell.BeginCell().MustStoreAddr(admin).EndCell().BeginParse()}, true},
		{"address_cell", fakeStack{cell.BeginCell().MustStoreAddr(admin).EndCell()}, true},
		{"address_builder", fakeStack{cell.BeginCell().MustStoreAddr(admin)}, true},
		{"none_cell", fakeStack{cell.BeginCell().MustStoreAddr(nil).EndCell()}, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := &fakeProvider{stacks: map[string]fakeStack{MethodGetAdminAddress: tc.stack}}

			res, err := tm.GetAdminAddress(context.Background(), p)
			require.NoError(t, err)
			require.Equal(t, tc.set, res.Set)
			require.Equal(t, []string{MethodGetAdminAddress}, p.methods)
			if tc.set {
				requireSameAddr(t, admin, res.Addr)
				require.NotEmpty(t, res.String())
			} else {
				require.Nil(t, res.Addr)
				require.Empty(t, res.String())
			}
		})
	}
}

func TestGetCommissionPercent(t *testing.T) {
	tm := CreateFromAddress(testAddr(9))

	p := &fakeProvider{stacks: map[string]fakeStack{
		MethodGetCommissionPercent: {big.NewInt(250)},
	}}
	val, err := tm.GetCommissionPercent(context.Background(), p)
	require.NoError(t, err)
	require.Equal(t, int64(250), val)
	require.Equal(t, []string{MethodGetCommissionPercent}, p.methods)

	huge := new(big.Int).Lsh(big.NewInt(1), 80)
	p.stacks[MethodGetCommissionPercent] = fakeStack{huge}
	_, err = tm.GetCommissionPercent(context.Background(), p)
	require.ErrorIs(t, err, ErrCommissionNotInt64)
}

func TestSendModeString(t *testing.T) {
	require.Equal(t, "ordinary", SendMode(0).String())
	require.Equal(t, "pay_gas_separately", SendModePayGasSeparately.String())
	require.Equal(t, "pay_gas_separately|ignore_errors", callMode.String())
	require.Equal(t, "pay_gas_separately|0x80", (SendModePayGasSeparately | 128).String())
	require.Equal(t, "admin_withdraw", OpAdminWithdraw.String())
	require.Equal(t, "payment", OpPayment.String())
}
