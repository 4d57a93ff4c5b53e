package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"telemora/internal/models"
	"telemora/internal/telemora"
	"telemora/internal/util"
	"time"

	"github.com/xssnick/tonutils-go/address"
	"github.com/xssnick/tonutils-go/tlb"
)

var (
	ErrNoOperatorWallet = errors.New("operator wallet is not configured")
	ErrNoStateInit      = errors.New("contract code is not configured, set TELEMORA_CODE_BOC")
)

type SnapshotStore interface {
	Save(s *models.ContractSnapshot) error
	FindLatest(contract string) (*models.ContractSnapshot, error)
}

// ContractInfo is the current on-chain state of the contract.
type ContractInfo struct {
	Address       *address.Address
	Deployed      bool
	Balance       tlb.Coins
	Admin         telemora.AdminAddress
	CommissionBps int64
}

type ContractService struct {
	contract  *telemora.Telemora
	provider  telemora.Provider
	wallet    telemora.Sender
	opS       *OperationService
	snapshots SnapshotStore
	cache     *GetterCache
}

// NewContractService wires the contract binding to storage. wallet and cache may be nil.
func NewContractService(contract *telemora.Telemora, provider telemora.Provider, wallet telemora.Sender,
	opS *OperationService, snapshots SnapshotStore, cache *GetterCache) *ContractService {
	return &ContractService{
		contract:  contract,
		provider:  provider,
		wallet:    wallet,
		opS:       opS,
		snapshots: snapshots,
		cache:     cache,
	}
}

func (s *ContractService) Address() *address.Address {
	return s.contract.Address
}

func (s *ContractService) IsDeployed(ctx context.Context) (bool, error) {
	acc, err := s.provider.GetState(ctx)
	if err != nil {
		return false, err
	}
	return acc.IsActive, nil
}

func (s *ContractService) Deploy(ctx context.Context, telegramId int64, value tlb.Coins) (*models.Operation, error) {
	if s.wallet == nil {
		return nil, ErrNoOperatorWallet
	}
	if s.contract.Init == nil {
		return nil, ErrNoStateInit
	}

	sendErr := s.contract.SendDeploy(ctx, s.provider, s.wallet, value)
	return s.record(OperationInput{
		Kind:       models.OP_DEPLOY,
		Contract:   s.contract.Address,
		Value:      value,
		TelegramId: telegramId,
		SendErr:    sendErr,
	})
}

// Withdraw sends admin_withdraw from the operator wallet.
func (s *ContractService) Withdraw(ctx context.Context, telegramId int64, value tlb.Coins, to *address.Address, amount tlb.Coins) (*models.Operation, error) {
	if s.wallet == nil {
		return nil, ErrNoOperatorWallet
	}

	queryId := newQueryId()
	sendErr := s.contract.SendWithdraw(ctx, s.provider, s.wallet, telemora.WithdrawOptions{
		Value:          value,
		SenderAddress:  to,
		WithdrawAmount: amount,
		QueryID:        queryId,
	})

	return s.record(OperationInput{
		Kind:       models.OP_WITHDRAW,
		Contract:   s.contract.Address,
		Target:     to,
		Amount:     amount,
		Value:      value,
		QueryId:    queryId,
		TelegramId: telegramId,
		SendErr:    sendErr,
	})
}

// Pay sends a payment for seller through via, which is usually the buyer's TonConnect wallet.
func (s *ContractService) Pay(ctx context.Context, via telemora.Sender, telegramId int64, value tlb.Coins, seller *address.Address) (*models.Operation, error) {
	if via == nil {
		via = s.wallet
	}
	if via == nil {
		return nil, ErrNoOperatorWallet
	}

	queryId := newQueryId()
	sendErr := s.contract.SendPayment(ctx, s.provider, via, telemora.PaymentOptions{
		Value:         value,
		SellerAddress: seller,
		QueryID:       queryId,
	})

	return s.record(OperationInput{
		Kind:       models.OP_PAYMENT,
		Contract:   s.contract.Address,
		Target:     seller,
		Amount:     value,
		Value:      value,
		QueryId:    queryId,
		TelegramId: telegramId,
		SendErr:    sendErr,
	})
}

func (s *ContractService) Balance(ctx context.Context) (tlb.Coins, error) {
	return s.contract.GetBalance(ctx, s.provider)
}

func (s *ContractService) AdminAddress(ctx context.Context) (telemora.AdminAddress, error) {
	if cached, ok := s.cached(ctx, telemora.MethodGetAdminAddress); ok {
		if cached == "" {
			return telemora.AdminAddress{}, nil
		}
		if addr, err := address.ParseAddr(cached); err == nil {
			return telemora.AdminAddress{Addr: addr, Set: true}, nil
		}
	}

	admin, err := s.contract.GetAdminAddress(ctx, s.provider)
	if err != nil {
		return telemora.AdminAddress{}, err
	}

	s.store(ctx, telemora.MethodGetAdminAddress, admin.String())
	return admin, nil
}

func (s *ContractService) CommissionBps(ctx context.Context) (int64, error) {
	if cached, ok := s.cached(ctx, telemora.MethodGetCommissionPercent); ok {
		if v, err := strconv.ParseInt(cached, 10, 64); err == nil {
			return v, nil
		}
	}

	v, err := s.contract.GetCommissionPercent(ctx, s.provider)
	if err != nil {
		return 0, err
	}

	s.store(ctx, telemora.MethodGetCommissionPercent, strconv.FormatInt(v, 10))
	return v, nil
}

// Info reads balance and getters. Getters are skipped for an undeployed contract.
func (s *ContractService) Info(ctx context.Context) (*ContractInfo, error) {
	acc, err := s.provider.GetState(ctx)
	if err != nil {
		return nil, err
	}

	info := &ContractInfo{
		Address:  s.contract.Address,
		Deployed: acc.IsActive,
		Balance:  tlb.ZeroCoins,
	}
	if acc.State != nil {
		info.Balance = acc.State.Balance
	}
	if !acc.IsActive {
		return info, nil
	}

	if info.Admin, err = s.AdminAddress(ctx); err != nil {
		return nil, err
	}
	if info.CommissionBps, err = s.CommissionBps(ctx); err != nil {
		return nil, err
	}

	return info, nil
}

// Snapshot stores the current contract state.
func (s *ContractService) Snapshot(ctx context.Context) (*models.ContractSnapshot, error) {
	info, err := s.Info(ctx)
	if err != nil {
		return nil, err
	}
	if !info.Deployed {
		return nil, fmt.Errorf("contract %s is not deployed", info.Address.String())
	}

	snap := &models.ContractSnapshot{
		Contract:      info.Address.String(),
		BalanceNano:   util.NanoDecimal(info.Balance),
		CommissionBps: info.CommissionBps,
	}
	if info.Admin.Set {
		snap.AdminAddress = sql.NullString{String: info.Admin.String(), Valid: true}
	}

	if err := s.snapshots.Save(snap); err != nil {
		return nil, err
	}
	return snap, nil
}

func (s *ContractService) LatestSnapshot() (*models.ContractSnapshot, error) {
	return s.snapshots.FindLatest(s.contract.Address.String())
}

func (s *ContractService) History(offset, limit int) ([]models.Operation, error) {
	return s.opS.GetByContractLimit(s.contract.Address, offset, limit)
}

func (s *ContractService) CountHistory() int {
	return s.opS.CountByContract(s.contract.Address)
}

func (s *ContractService) Operation(id int64) (*models.Operation, error) {
	return s.opS.GetById(id)
}

// record stores the operation and returns the send error if there was one.
func (s *ContractService) record(in OperationInput) (*models.Operation, error) {
	op, err := s.opS.Create(in)
	if err != nil {
		log.Error("Failed to save operation: ", err)
	}

	if in.SendErr != nil {
		log.Errorf("%s to %s failed: %v", in.Kind, in.Contract.String(), in.SendErr)
		return op, in.SendErr
	}
	if err != nil {
		return nil, fmt.Errorf("save operation: %w", err)
	}

	log.Infof("%s sent to %s", in.Kind, in.Contract.String())
	return op, nil
}

func (s *ContractService) cached(ctx context.Context, method string) (string, bool) {
	if s.cache == nil {
		return "", false
	}
	v, ok, err := s.cache.Get(ctx, s.contract.Address.String(), method)
	if err != nil {
		return "", false
	}
	return v, ok
}

func (s *ContractService) store(ctx context.Context, method, value string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, s.contract.Address.String(), method, value); err != nil {
		log.Error("Failed to cache getter result: ", err)
	}
}

func newQueryId() uint64 {
	return uint64(time.Now().UnixNano())
}
