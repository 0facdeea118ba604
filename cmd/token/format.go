package main

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/nspcc-dev/token-contract/ledger"
)

// maxFormatDecimals is the greatest number of decimals formatAmount renders.
// Any 256-bit integer has fewer digits.
const maxFormatDecimals = 78

// formatAmount prints raw amount along with its decimal representation. Raw
// amount only is printed for tokens with more than maxFormatDecimals decimals.
func formatAmount(v *big.Int, meta ledger.Metadata) string {
	if meta.Decimals > maxFormatDecimals {
		return v.String()
	}

	return fmt.Sprintf("%s (%s %s)", v, decimalString(v, int(meta.Decimals)), meta.Symbol)
}

// decimalString formats v shifted right by the given number of decimal
// digits, trailing zeros of the fraction are omitted.
func decimalString(v *big.Int, decimals int) string {
	if decimals == 0 {
		return v.String()
	}

	unit := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(decimals)), nil)
	ip, fp := new(big.Int).QuoRem(new(big.Int).Abs(v), unit, new(big.Int))

	var sb strings.Builder
	if v.Sign() < 0 {
		sb.WriteByte('-')
	}

	sb.WriteString(ip.String())

	if fp.Sign() != 0 {
		frac := fp.String()
		sb.WriteByte('.')
		sb.WriteString(strings.Repeat("0", decimals-len(frac)))
		sb.WriteString(strings.TrimRight(frac, "0"))
	}

	return sb.String()
}
