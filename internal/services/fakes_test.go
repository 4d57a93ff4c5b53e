package services

import (
	"bytes"
	"context"
	"errors"
	"math/big"
	"telemora/internal/models"
	"telemora/internal/telemora"

	"github.com/xssnick/tonutils-go/address"
	"github.com/xssnick/tonutils-go/tlb"
	"github.com/xssnick/tonutils-go/ton/wallet"
	"github.com/xssnick/tonutils-go/tvm/cell"
)

func testAddr(b byte) *address.Address {
	return address.NewAddress(0, 0, bytes.Repeat([]byte{b}, 32))
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
	account    *tlb.Account
	stateErr   error
	admin      *address.Address
	commission int64
	getCalls   map[string]int
	internals  []telemora.InternalArgs
}

func newFakeProvider(active bool, balance tlb.Coins, admin *address.Address, commission int64) *fakeProvider {
	acc := &tlb.Account{IsActive: active}
	if active {
		acc.State = &tlb.AccountState{IsValid: true}
		acc.State.Balance = balance
	}

	return &fakeProvider{
		account:    acc,
		admin:      admin,
		commission: commission,
		getCalls:   map[string]int{},
	}
}

func (p *fakeProvider) GetState(context.Context) (*tlb.Account, error) {
	if p.stateErr != nil {
		return nil, p.stateErr
	}
	return p.account, nil
}

func (p *fakeProvider) Get(_ context.Context, method string, _ ...any) (telemora.Stack, error) {
	p.getCalls[method]++
	switch method {
	case telemora.MethodGetAdminAddress:
		return fakeStack{cell.BeginCell().MustStoreAddr(p.admin).EndCell().BeginParse()}, nil
	case telemora.MethodGetCommissionPercent:
		return fakeStack{big.NewInt(p.commission)}, nil
	}
	return nil, errors.New("no such method")
}

func (p *fakeProvider) Internal(ctx context.Context, via telemora.Sender, args telemora.InternalArgs) error {
	p.internals = append(p.internals, args)
	return via.Send(ctx, &wallet.Message{
		Mode: uint8(args.SendMode),
		InternalMessage: &tlb.InternalMessage{
			Bounce:  true,
			DstAddr: testAddr(0xCC),
			Amount:  args.Value,
			Body:    args.Body,
		},
	})
}

type fakeSender struct {
	sent []*wallet.Message
	err  error
}

func (s *fakeSender) Send(_ context.Context, msg *wallet.Message, _ ...bool) error {
	s.sent = append(s.sent, msg)
	return s.err
}

type fakeOperationStore struct {
	saved   []models.Operation
	saveErr error
}

func (s *fakeOperationStore) Save(op *models.Operation) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	op.Id.Int64 = int64(len(s.saved) + 1)
	op.Id.Valid = true
	s.saved = append(s.saved, *op)
	return nil
}

func (s *fakeOperationStore) FindById(id int64) (*models.Operation, error) {
	for i := range s.saved {
		if s.saved[i].Id.Int64 == id {
			return &s.saved[i], nil
		}
	}
	return nil, errors.New("not found")
}

func (s *fakeOperationStore) FindByContractLimit(contract string, offset, limit int) ([]models.Operation, error) {
	var res []models.Operation
	for _, op := range s.saved {
		if op.Contract == contract {
			res = append(res, op)
		}
	}
	if offset >= len(res) {
		return nil, nil
	}
	res = res[offset:]
	if len(res) > limit {
		res = res[:limit]
	}
	return res, nil
}

func (s *fakeOperationStore) CountByContract(contract string) int {
	n := 0
	for _, op := range s.saved {
		if op.Contract == contract {
			n++
		}
	}
	return n
}

type fakeSnapshotStore struct {
	saved []models.ContractSnapshot
}

func (s *fakeSnapshotStore) Save(snap *models.ContractSnapshot) error {
	snap.Id.Int64 = int64(len(s.saved) + 1)
	snap.Id.Valid = true
	s.saved = append(s.saved, *snap)
	return nil
}

func (s *fakeSnapshotStore) FindLatest(contract string) (*models.ContractSnapshot, error) {
	for i := len(s.saved) - 1; i >= 0; i-- {
		if s.saved[i].Contract == contract {
			return &s.saved[i], nil
		}
	}
	return nil, errors.New("not found")
}
