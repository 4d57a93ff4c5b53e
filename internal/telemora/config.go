package telemora

import (
	"errors"
	"fmt"

	"github.com/xssnick/tonutils-go/address"
	"github.com/xssnick/tonutils-go/tlb"
	"github.com/xssnick/tonutils-go/tvm/cell"
)

const (
	commissionBits = 11

	MinCommissionBps = -1 << (commissionBits - 1)
	MaxCommissionBps = 1<<(commissionBits-1) - 1
)

var ErrCommissionOutOfRange = errors.New("commission bps out of 11-bit signed range")

// Config is the initial data of a Telemora contract.
type Config struct {
	AdminAddress  *address.Address
	CommissionBps int16
}

// contractData mirrors the data cell layout: admin address, then an 11-bit signed commission.
type contractData struct {
	AdminAddress  *address.Address `tlb:"addr"`
	CommissionBps int16            `tlb:"## 11"`
}

func (c Config) Validate() error {
	if c.CommissionBps < MinCommissionBps || c.CommissionBps > MaxCommissionBps {
		return fmt.Errorf("%w: %d not in [%d, %d]", ErrCommissionOutOfRange, c.CommissionBps, MinCommissionBps, MaxCommissionBps)
	}
	return nil
}

// ConfigToCell serializes cfg into the contract data cell.
func ConfigToCell(cfg Config) (*cell.Cell, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c, err := tlb.ToCell(contractData{
		AdminAddress:  cfg.AdminAddress,
		CommissionBps: cfg.CommissionBps,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build data cell: %w", err)
	}
	return c, nil
}

// ConfigFromCell is the inverse of ConfigToCell.
func ConfigFromCell(c *cell.Cell) (Config, error) {
	var data contractData
	if err := tlb.LoadFromCell(&data, c.BeginParse()); err != nil {
		return Config{}, fmt.Errorf("failed to parse data cell: %w", err)
	}
	return Config{
		AdminAddress:  data.AdminAddress,
		CommissionBps: data.CommissionBps,
	}, nil
}
