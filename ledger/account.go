package ledger

import (
	"fmt"
	"strings"

	"github.com/nspcc-dev/neo-go/pkg/encoding/address"
	"github.com/nspcc-dev/neo-go/pkg/util"
)

// ParseAccount decodes account identity from either Neo address or
// little-endian hex script hash with optional 0x prefix.
func ParseAccount(s string) (util.Uint160, error) {
	if u, err := address.StringToUint160(s); err == nil {
		return u, nil
	}

	u, err := util.Uint160DecodeStringLE(strings.TrimPrefix(s, "0x"))
	if err != nil {
		return util.Uint160{}, fmt.Errorf("%w: %q is neither address nor script hash", ErrInvalidAccount, s)
	}

	return u, nil
}
