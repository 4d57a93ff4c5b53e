package repositories

import (
	"context"
	"telemora/internal/models"
	"time"

	"github.com/jmoiron/sqlx"
)

type SnapshotRepository struct {
	Db *sqlx.DB
}

func NewSnapshotRepository(db *sqlx.DB) *SnapshotRepository {
	return &SnapshotRepository{
		Db: db,
	}
}

func (r *SnapshotRepository) Save(s *models.ContractSnapshot) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if s.CreatedAt.IsZero() {
		s.CreatedAt = time.Now()
	}

	query, args, err := r.Db.BindNamed(
		`insert into contract_snapshot(contract, balance_nano, admin_address, commission_bps, created_at)
		values (:contract, :balance_nano, :admin_address, :commission_bps, :created_at) returning id`,
		s,
	)
	if err != nil {
		log.Error("Error creating query: ", err)
		return err
	}

	if err := r.Db.QueryRowxContext(ctx, query, args...).Scan(&s.Id); err != nil {
		log.Error("Error saving snapshot: ", err)
		return err
	}

	return nil
}

func (r *SnapshotRepository) FindLatest(contract string) (*models.ContractSnapshot, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var s models.ContractSnapshot
	if err := r.Db.GetContext(
		ctx,
		&s,
		"select * from contract_snapshot where contract=$1 order by created_at desc, id desc limit 1",
		contract,
	); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SnapshotRepository) FindByContractLimit(contract string, offset, limit int) ([]models.ContractSnapshot, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var list []models.ContractSnapshot
	if err := r.Db.SelectContext(
		ctx,
		&list,
		"select * from contract_snapshot where contract=$1 order by created_at desc, id desc limit $2 offset $3",
		contract, limit, offset,
	); err != nil {
		return nil, err
	}
	return list, nil
}
