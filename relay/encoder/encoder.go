// Copyright 2021 Optakt Labs OÜ
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not
// use this file except in compliance with the License. You may obtain a copy of
// the License at
//
//     https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS, WITHOUT
// WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the
// License for the specific language governing permissions and limitations under
// the License.

// Package encoder serializes authorization parameters into the fixed-layout
// byte sequences the ledger program verifies signatures against. The layout
// is a frozen contract: every field has a fixed width and position per action
// kind, and any change invalidates all signatures issued against the old
// layout.
package encoder

import (
	"math/big"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/numaan0/proof-mint-blockchain/relay/failure"
)

// borrowTag binds a borrow authorization to its action kind, so that a
// signature over a borrow message can never double as one over another
// action with coincidentally identical numeric parameters.
const borrowTag = "BORROW"

const wordSize = 32

// BorrowMessage packs the parameters of a borrow authorization into their
// canonical byte layout: subject address, per-subject nonce, deadline and
// the action tag, tightly packed.
func BorrowMessage(subject common.Address, nonce *big.Int, deadline *big.Int) ([]byte, error) {

	packedNonce, err := uint256(nonce)
	if err != nil {
		return nil, failure.InvalidAuthorization{
			Description: failure.NewDescription("could not pack nonce",
				failure.WithErr(err)),
		}
	}
	packedDeadline, err := uint256(deadline)
	if err != nil {
		return nil, failure.InvalidAuthorization{
			Description: failure.NewDescription("could not pack deadline",
				failure.WithErr(err)),
		}
	}

	message := make([]byte, 0, common.AddressLength+2*wordSize+len(borrowTag))
	message = append(message, subject.Bytes()...)
	message = append(message, packedNonce...)
	message = append(message, packedDeadline...)
	message = append(message, borrowTag...)

	return message, nil
}

// BorrowDigest returns the digest a subject signs to authorize a borrow. The
// packed message is hashed and wrapped in the signed-message envelope the
// ledger program expects from wallet signatures.
func BorrowDigest(subject common.Address, nonce *big.Int, deadline *big.Int) (common.Hash, error) {

	message, err := BorrowMessage(subject, nonce, deadline)
	if err != nil {
		return common.Hash{}, err
	}

	return envelope(message), nil
}

// SyncMessage packs the parameters of a profile sync into their canonical
// byte layout: subject address, scaled earnings, score and tenure, tightly
// packed.
func SyncMessage(subject common.Address, earnings *big.Int, score *big.Int, tenure *big.Int) ([]byte, error) {

	packed := make([]byte, 0, common.AddressLength+3*wordSize)
	packed = append(packed, subject.Bytes()...)

	for _, param := range []struct {
		name string
		val  *big.Int
	}{
		{"earnings", earnings},
		{"score", score},
		{"tenure", tenure},
	} {
		word, err := uint256(param.val)
		if err != nil {
			return nil, failure.InvalidAuthorization{
				Description: failure.NewDescription("could not pack parameter",
					failure.WithString("parameter", param.name),
					failure.WithErr(err)),
			}
		}
		packed = append(packed, word...)
	}

	return packed, nil
}

// SyncDigest returns the digest the relay operator signs to attest to a
// subject's reputation record.
func SyncDigest(subject common.Address, earnings *big.Int, score *big.Int, tenure *big.Int) (common.Hash, error) {

	message, err := SyncMessage(subject, earnings, score, tenure)
	if err != nil {
		return common.Hash{}, err
	}

	return envelope(message), nil
}

// envelope hashes the packed message and wraps the result the way wallets
// sign plain messages, which is also how the ledger program recovers the
// signer.
func envelope(message []byte) common.Hash {
	inner := crypto.Keccak256(message)
	return common.BytesToHash(accounts.TextHash(inner))
}

// uint256 packs an unsigned integer into a 32-byte big-endian word.
func uint256(val *big.Int) ([]byte, error) {
	if val == nil {
		return nil, errNil
	}
	if val.Sign() < 0 {
		return nil, errNegative
	}
	if val.BitLen() > 8*wordSize {
		return nil, errOverflow
	}

	word := make([]byte, wordSize)
	val.FillBytes(word)

	return word, nil
}
