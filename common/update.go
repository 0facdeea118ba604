package common

import (
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
)

// HasUpdateAccess reports whether the transaction is signed by the committee
// multisignature account, the only party allowed to replace token code.
func HasUpdateAccess() bool {
	return runtime.CheckWitness(CommitteeAddress())
}
