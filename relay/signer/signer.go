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

package signer

import (
	"crypto/ecdsa"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/numaan0/proof-mint-blockchain/relay/failure"
)

// sigLength is the length of a recoverable signature: 32 bytes r, 32 bytes s
// and one recovery byte.
const sigLength = 65

// Signer asks the holder of a private signing key to produce a signature
// over a given digest. The relay operator's key implements it directly;
// user wallets implement the same contract on the other side of the wire.
type Signer interface {
	Address() common.Address
	Sign(digest common.Hash) ([]byte, error)
}

// KeySigner signs digests with an in-process secp256k1 private key.
type KeySigner struct {
	key     *ecdsa.PrivateKey
	address common.Address
}

// FromKey creates a signer around an existing private key.
func FromKey(key *ecdsa.PrivateKey) *KeySigner {

	s := KeySigner{
		key:     key,
		address: crypto.PubkeyToAddress(key.PublicKey),
	}

	return &s
}

// FromHex creates a signer from a hex-encoded private key.
func FromHex(hexkey string) (*KeySigner, error) {

	key, err := crypto.HexToECDSA(hexkey)
	if err != nil {
		return nil, fmt.Errorf("could not parse private key: %w", err)
	}

	return FromKey(key), nil
}

// Address returns the address corresponding to the signing key.
func (s *KeySigner) Address() common.Address {
	return s.address
}

// Sign produces a recoverable signature over the given digest. The recovery
// byte is shifted to the 27/28 convention wallets use, so signatures from
// the operator and from user wallets verify identically.
func (s *KeySigner) Sign(digest common.Hash) ([]byte, error) {

	sig, err := crypto.Sign(digest.Bytes(), s.key)
	if err != nil {
		return nil, fmt.Errorf("could not sign digest: %w", err)
	}
	sig[sigLength-1] += 27

	return sig, nil
}

// Verify recovers the signer of the given digest and checks it against the
// expected address. Both recovery byte conventions are accepted.
func Verify(digest common.Hash, signature []byte, want common.Address) error {

	if len(signature) != sigLength {
		return failure.InvalidAuthorization{
			Description: failure.NewDescription("invalid signature length",
				failure.WithInt("have_length", len(signature)),
				failure.WithInt("want_length", sigLength)),
		}
	}

	normalized := make([]byte, sigLength)
	copy(normalized, signature)
	if normalized[sigLength-1] >= 27 {
		normalized[sigLength-1] -= 27
	}

	pub, err := crypto.SigToPub(digest.Bytes(), normalized)
	if err != nil {
		return failure.InvalidAuthorization{
			Description: failure.NewDescription("could not recover signer",
				failure.WithErr(err)),
		}
	}

	have := crypto.PubkeyToAddress(*pub)
	if have != want {
		return failure.InvalidAuthorization{
			Description: failure.NewDescription("signature does not match subject",
				failure.WithAddress("have_signer", have),
				failure.WithAddress("want_signer", want)),
		}
	}

	return nil
}
