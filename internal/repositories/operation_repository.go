package repositories

import (
	"context"
	"telemora/internal/models"
	"time"

	"github.com/jmoiron/sqlx"
)

type OperationRepository struct {
	Db *sqlx.DB
}

func NewOperationRepository(db *sqlx.DB) *OperationRepository {
	return &OperationRepository{
		Db: db,
	}
}

func (r *OperationRepository) Save(op *models.Operation) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if op.CreatedAt.IsZero() {
		op.CreatedAt = time.Now()
	}

	tx, err := r.Db.Beginx()
	if err != nil {
		log.Error("Error starting transaction: ", err)
		return err
	}

	query, args, err := tx.BindNamed(
		`insert into operation(kind, contract, target, amount_nano, value_nano, query_id, telegram_id, status, error, created_at)
		values (:kind, :contract, :target, :amount_nano, :value_nano, :query_id, :telegram_id, :status, :error, :created_at) returning id`,
		op,
	)
	if err != nil {
		log.Error("Error creating query: ", err)
		_ = tx.Rollback()
		return err
	}
	if err := tx.QueryRowxContext(ctx, query, args...).Scan(&op.Id); err != nil {
		log.Error("Error saving operation: ", err)
		_ = tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		log.Error("Error committing query: ", err)
		if err := tx.Rollback(); err != nil {
			log.Error("Error rolling back: ", err)
			return err
		}
		return err
	}

	return nil
}

func (r *OperationRepository) FindById(id int64) (*models.Operation, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var op models.Operation
	err := r.Db.GetContext(ctx, &op, "select * from operation where id=$1", id)
	if err != nil {
		return nil, err
	}
	return &op, nil
}

func (r *OperationRepository) FindByContractLimit(contract string, offset, limit int) ([]models.Operation, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var ops []models.Operation
	if err := r.Db.SelectContext(
		ctx,
		&ops,
		"select * from operation where contract=$1 order by created_at desc, id desc limit $2 offset $3",
		contract, limit, offset,
	); err != nil {
		return nil, err
	}

	return ops, nil
}

func (r *OperationRepository) CountByContract(contract string) int {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var count int
	if err := r.Db.QueryRowxContext(ctx, "select count(*) from operation where contract=$1", contract).Scan(&count); err != nil {
		return 0
	}
	return count
}
