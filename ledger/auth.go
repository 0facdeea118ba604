package ledger

import (
	"fmt"
	"math/big"

	"github.com/nspcc-dev/neo-go/pkg/crypto/hash"
	"github.com/nspcc-dev/neo-go/pkg/crypto/keys"
	"github.com/nspcc-dev/neo-go/pkg/encoding/bigint"
	"github.com/nspcc-dev/neo-go/pkg/io"
	"github.com/nspcc-dev/neo-go/pkg/util"
)

// Authenticator confirms that the current call is authorized to act as the
// given account.
type Authenticator interface {
	Verify(account util.Uint160) bool
}

// AuthenticatorFunc is an adapter to use ordinary functions as Authenticator.
type AuthenticatorFunc func(account util.Uint160) bool

// Verify implements Authenticator.
func (f AuthenticatorFunc) Verify(account util.Uint160) bool {
	return f(account)
}

// Witnesses is a set of accounts the call has already proven control over,
// like signers of a transaction.
type Witnesses []util.Uint160

// Verify implements Authenticator.
func (w Witnesses) Verify(account util.Uint160) bool {
	for i := range w {
		if w[i].Equals(account) {
			return true
		}
	}

	return false
}

// Signature is a signature of the call message made by the account key.
type Signature struct {
	PublicKey *keys.PublicKey
	Value     []byte
}

// Sign signs msg with the key.
func Sign(key *keys.PrivateKey, msg []byte) Signature {
	return Signature{
		PublicKey: key.PublicKey(),
		Value:     key.Sign(msg),
	}
}

// VerifySignatures checks all signatures of msg and returns standard
// single-signature accounts of the signing keys. Any invalid signature fails
// the whole set with ErrUnauthorized.
func VerifySignatures(msg []byte, sigs ...Signature) (Witnesses, error) {
	digest := hash.Sha256(msg).BytesBE()

	res := make(Witnesses, 0, len(sigs))
	for i := range sigs {
		if sigs[i].PublicKey == nil || !sigs[i].PublicKey.Verify(sigs[i].Value, digest) {
			return nil, fmt.Errorf("%w: invalid signature #%d", ErrUnauthorized, i)
		}

		res = append(res, sigs[i].PublicKey.GetScriptHash())
	}

	return res, nil
}

// TransferMessage returns the message the sender signs to authorize transfer.
// Equal transfers produce equal messages, see package docs on replays.
func TransferMessage(from, to util.Uint160, amount *big.Int) []byte {
	w := io.NewBufBinWriter()
	w.WriteString("transfer")
	w.WriteBytes(from.BytesBE())
	w.WriteBytes(to.BytesBE())
	w.WriteVarBytes(bigint.ToBytes(amount))

	return w.Bytes()
}
