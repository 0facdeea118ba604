/*
Package token implements a minimal fungible token contract.

The contract keeps token metadata (name, symbol and decimals), total supply
and account balances in its storage. Supply is issued once by Initialize and
then only moves between accounts with Transfer; there is no minting, burning
or allowances. Initialize is not guarded, every call resets metadata, total
supply and the owner balance without touching other balances.

Every failed check panics, so the transaction FAULTs and all storage changes
made by the call are discarded by the chain.

# Contract storage scheme

	| Key                         | Value                                      |
	|-----------------------------|--------------------------------------------|
	| "META"                      | serialized struct [name, symbol, decimals] |
	| "TOTAL"                     | integer, total supply                      |
	| "BAL" + account script hash | integer, account balance                   |

Balances fit signed 128-bit range; a transfer that would overflow the
receiver's balance faults.

# Contract notifications

Token contract does not produce notifications to process.
*/
package token
