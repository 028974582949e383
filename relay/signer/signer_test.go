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

package signer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/numaan0/proof-mint-blockchain/relay/failure"
	"github.com/numaan0/proof-mint-blockchain/relay/signer"
	"github.com/numaan0/proof-mint-blockchain/testing/mocks"
)

// Well-known development key; its address is mocks.GenericOperator.
const testKey = "ac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80"

func TestFromHex(t *testing.T) {
	t.Parallel()

	t.Run("nominal case", func(t *testing.T) {
		t.Parallel()

		sign, err := signer.FromHex(testKey)
		require.NoError(t, err)
		assert.Equal(t, mocks.GenericOperator, sign.Address())
	})

	t.Run("handles invalid key", func(t *testing.T) {
		t.Parallel()

		_, err := signer.FromHex("not a key")
		assert.Error(t, err)
	})
}

func TestKeySigner_Sign(t *testing.T) {
	t.Parallel()

	sign, err := signer.FromHex(testKey)
	require.NoError(t, err)

	sig, err := sign.Sign(mocks.GenericHash)
	require.NoError(t, err)

	require.Len(t, sig, 65)
	assert.Contains(t, []byte{27, 28}, sig[64])

	// Signing is deterministic, so identical digests give identical
	// signatures.
	same, err := sign.Sign(mocks.GenericHash)
	require.NoError(t, err)
	assert.Equal(t, sig, same)
}

func TestVerify(t *testing.T) {
	t.Parallel()

	sign, err := signer.FromHex(testKey)
	require.NoError(t, err)

	sig, err := sign.Sign(mocks.GenericHash)
	require.NoError(t, err)

	t.Run("nominal case", func(t *testing.T) {
		t.Parallel()

		err := signer.Verify(mocks.GenericHash, sig, sign.Address())
		assert.NoError(t, err)
	})

	t.Run("accepts raw recovery byte convention", func(t *testing.T) {
		t.Parallel()

		raw := make([]byte, len(sig))
		copy(raw, sig)
		raw[64] -= 27

		err := signer.Verify(mocks.GenericHash, raw, sign.Address())
		assert.NoError(t, err)
	})

	t.Run("rejects wrong signer", func(t *testing.T) {
		t.Parallel()

		err := signer.Verify(mocks.GenericHash, sig, mocks.GenericSubject)
		require.Error(t, err)
		assert.ErrorAs(t, err, &failure.InvalidAuthorization{})
	})

	t.Run("rejects wrong digest", func(t *testing.T) {
		t.Parallel()

		err := signer.Verify(mocks.GenericSubject.Hash(), sig, sign.Address())
		require.Error(t, err)
		assert.ErrorAs(t, err, &failure.InvalidAuthorization{})
	})

	t.Run("rejects truncated signature", func(t *testing.T) {
		t.Parallel()

		err := signer.Verify(mocks.GenericHash, sig[:64], sign.Address())
		require.Error(t, err)
		assert.ErrorAs(t, err, &failure.InvalidAuthorization{})
	})
}
