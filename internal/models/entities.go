package models

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

type Operation struct {
	Id         sql.NullInt64   `db:"id" json:"id"`
	Kind       string          `db:"kind" json:"kind"`
	Contract   string          `db:"contract" json:"contract"`
	Target     sql.NullString  `db:"target" json:"target"`
	AmountNano decimal.Decimal `db:"amount_nano" json:"amount_nano"`
	ValueNano  decimal.Decimal `db:"value_nano" json:"value_nano"`
	QueryId    decimal.Decimal `db:"query_id" json:"query_id"`
	TelegramId sql.NullInt64   `db:"telegram_id" json:"telegram_id"`
	Status     string          `db:"status" json:"status"`
	Error      sql.NullString  `db:"error" json:"error"`
	CreatedAt  time.Time       `db:"created_at" json:"created_at"`
}

type ContractSnapshot struct {
	Id            sql.NullInt64   `db:"id" json:"id"`
	Contract      string          `db:"contract" json:"contract"`
	BalanceNano   decimal.Decimal `db:"balance_nano" json:"balance_nano"`
	AdminAddress  sql.NullString  `db:"admin_address" json:"admin_address"`
	CommissionBps int64           `db:"commission_bps" json:"commission_bps"`
	CreatedAt     time.Time       `db:"created_at" json:"created_at"`
}
