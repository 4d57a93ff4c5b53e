package services

import (
	"database/sql"
	"math/big"
	"telemora/internal/models"
	"telemora/internal/util"

	"github.com/shopspring/decimal"
	"github.com/xssnick/tonutils-go/address"
	"github.com/xssnick/tonutils-go/tlb"
)

type OperationStore interface {
	Save(op *models.Operation) error
	FindById(id int64) (*models.Operation, error)
	FindByContractLimit(contract string, offset, limit int) ([]models.Operation, error)
	CountByContract(contract string) int
}

type OperationService struct {
	rep OperationStore
}

func NewOperationService(rep OperationStore) *OperationService {
	return &OperationService{rep}
}

// OperationInput describes a message sent to the contract.
type OperationInput struct {
	Kind       string
	Contract   *address.Address
	Target     *address.Address
	Amount     tlb.Coins
	Value      tlb.Coins
	QueryId    uint64
	TelegramId int64
	// SendErr is the error returned by the send, nil when it was accepted.
	SendErr error
}

func (s *OperationService) Create(in OperationInput) (*models.Operation, error) {
	op := models.Operation{
		Kind:       in.Kind,
		Contract:   in.Contract.String(),
		AmountNano: util.NanoDecimal(in.Amount),
		ValueNano:  util.NanoDecimal(in.Value),
		QueryId:    decimal.NewFromBigInt(new(big.Int).SetUint64(in.QueryId), 0),
		Status:     models.STATUS_SENT,
	}

	if in.Target != nil {
		op.Target = sql.NullString{String: in.Target.String(), Valid: true}
	}
	if in.TelegramId != 0 {
		op.TelegramId = sql.NullInt64{Int64: in.TelegramId, Valid: true}
	}
	if in.SendErr != nil {
		op.Status = models.STATUS_FAILED
		op.Error = sql.NullString{String: in.SendErr.Error(), Valid: true}
	}

	if err := s.rep.Save(&op); err != nil {
		return nil, err
	}
	return &op, nil
}

func (s *OperationService) GetById(id int64) (*models.Operation, error) {
	return s.rep.FindById(id)
}

func (s *OperationService) GetByContractLimit(contract *address.Address, offset, limit int) ([]models.Operation, error) {
	return s.rep.FindByContractLimit(contract.String(), offset, limit)
}

func (s *OperationService) CountByContract(contract *address.Address) int {
	return s.rep.CountByContract(contract.String())
}

func OperationName(kind string) string {
	switch kind {
	case models.OP_DEPLOY:
		return "Deploy"
	case models.OP_WITHDRAW:
		return "Withdraw"
	case models.OP_PAYMENT:
		return "Payment"
	default:
		return "Unknown operation"
	}
}
