/*
Package ledger implements the token state machine for hosts executing calls
outside of NeoVM.

The ledger keeps exactly the same storage layout as the token contract (see
contracts/token), so a ledger database and the contract storage are
interchangeable byte for byte.

State is the explicit ledger state: every operation reads and writes through
it. Ledger wraps State into a transaction-serial host: calls run one at a
time, each inside a storage.MemCachedStore layered over the backing
storage.Store. A successful call persists the layer, a failed one drops it, so
no partial writes are ever observable.

Authorization is not implemented by the ledger itself. Transfer takes an
Authenticator supplied by the caller, see Witnesses and VerifySignatures for
the provided implementations.

TransferMessage carries neither nonce nor ledger identity, so the same
signature verifies every time it is presented to any Ledger. Witnesses returned
by VerifySignatures are therefore single-use: the host must authorize exactly
one Transfer with them and reject repeated signatures itself, like a chain
rejects a transaction it has already included.
*/
package ledger
