package util

import (
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/xssnick/tonutils-go/tlb"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const tonDecimals = 9

var ErrInvalidAmount = errors.New("invalid TON amount")

// NanoDecimal returns the exact nanoton value of c.
func NanoDecimal(c tlb.Coins) decimal.Decimal {
	return decimal.NewFromBigInt(c.Nano(), 0)
}

// FormatUsd renders the value of c at usdPerTon, rounded to cents.
func FormatUsd(c tlb.Coins, usdPerTon decimal.Decimal) string {
	return NanoDecimal(c).Shift(-tonDecimals).Mul(usdPerTon).StringFixed(2)
}

// FormatTON renders c in TON with grouped thousands, e.g. "1,234.5".
func FormatTON(c tlb.Coins) string {
	return FormatNano(NanoDecimal(c))
}

func FormatNano(nano decimal.Decimal) string {
	ton := nano.Shift(-tonDecimals).String()

	intPart, frac, hasFrac := strings.Cut(ton, ".")

	grouped := intPart
	if whole := nano.Shift(-tonDecimals).Truncate(0); whole.Abs().LessThan(decimal.New(1, 18)) {
		printer := message.NewPrinter(language.English)
		grouped = printer.Sprintf("%d", whole.IntPart())
		if strings.HasPrefix(intPart, "-") && !strings.HasPrefix(grouped, "-") {
			grouped = "-" + grouped
		}
	}

	if hasFrac {
		return grouped + "." + frac
	}
	return grouped
}

// ParseTON parses a user supplied TON amount such as "1.5" without going through float64.
func ParseTON(s string) (tlb.Coins, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return tlb.Coins{}, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}

	nano := d.Shift(tonDecimals)
	if nano.IsNegative() || !nano.IsInteger() {
		return tlb.Coins{}, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}

	return tlb.FromNanoTON(nano.BigInt()), nil
}

// ParseNano parses an integer nanoton amount.
func ParseNano(s string) (tlb.Coins, error) {
	n, ok := new(big.Int).SetString(strings.TrimSpace(s), 10)
	if !ok || n.Sign() < 0 {
		return tlb.Coins{}, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	return tlb.FromNanoTON(n), nil
}
