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

package operator_test

import (
	"context"
	"math/big"
	"sync"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/numaan0/proof-mint-blockchain/relay/operator"
	"github.com/numaan0/proof-mint-blockchain/testing/mocks"
)

func TestAccount_Open(t *testing.T) {
	t.Parallel()

	t.Run("nominal case", func(t *testing.T) {
		t.Parallel()

		key, err := crypto.GenerateKey()
		require.NoError(t, err)

		account := operator.New(mocks.NoopLogger, key)
		err = account.Open(context.Background(), mocks.BaselineSequenceReader(t))
		require.NoError(t, err)

		assert.Equal(t, mocks.GenericSequence, account.Sequence())
	})

	t.Run("handles sequence read failure", func(t *testing.T) {
		t.Parallel()

		key, err := crypto.GenerateKey()
		require.NoError(t, err)

		seq := mocks.BaselineSequenceReader(t)
		seq.PendingNonceAtFunc = func(context.Context, common.Address) (uint64, error) {
			return 0, mocks.GenericError
		}

		account := operator.New(mocks.NoopLogger, key)
		err = account.Open(context.Background(), seq)
		assert.Error(t, err)
	})

	t.Run("opening twice fails", func(t *testing.T) {
		t.Parallel()

		key, err := crypto.GenerateKey()
		require.NoError(t, err)

		account := operator.New(mocks.NoopLogger, key)
		require.NoError(t, account.Open(context.Background(), mocks.BaselineSequenceReader(t)))

		err = account.Open(context.Background(), mocks.BaselineSequenceReader(t))
		assert.Error(t, err)
	})
}

func TestAccount_Submit(t *testing.T) {
	t.Parallel()

	t.Run("advances sequence on success", func(t *testing.T) {
		t.Parallel()

		account := openAccount(t)

		sequence, err := account.Submit(func(sequence uint64) error {
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, mocks.GenericSequence, sequence)
		assert.Equal(t, mocks.GenericSequence+1, account.Sequence())
	})

	t.Run("keeps sequence on broadcast failure", func(t *testing.T) {
		t.Parallel()

		account := openAccount(t)

		_, err := account.Submit(func(sequence uint64) error {
			return mocks.GenericError
		})
		require.Error(t, err)
		assert.Equal(t, mocks.GenericSequence, account.Sequence())
	})

	t.Run("fails when account not open", func(t *testing.T) {
		t.Parallel()

		key, err := crypto.GenerateKey()
		require.NoError(t, err)

		account := operator.New(mocks.NoopLogger, key)
		_, err = account.Submit(func(uint64) error { return nil })
		assert.Error(t, err)
	})

	t.Run("fails after close", func(t *testing.T) {
		t.Parallel()

		account := openAccount(t)
		account.Close()

		_, err := account.Submit(func(uint64) error { return nil })
		assert.Error(t, err)
	})

	t.Run("concurrent submissions get unique sequence values", func(t *testing.T) {
		t.Parallel()

		account := openAccount(t)

		var mu sync.Mutex
		seen := make(map[uint64]struct{})

		var eg errgroup.Group
		for i := 0; i < 64; i++ {
			eg.Go(func() error {
				_, err := account.Submit(func(sequence uint64) error {
					mu.Lock()
					defer mu.Unlock()
					_, ok := seen[sequence]
					if ok {
						return mocks.GenericError
					}
					seen[sequence] = struct{}{}
					return nil
				})
				return err
			})
		}
		require.NoError(t, eg.Wait())

		assert.Len(t, seen, 64)
		assert.Equal(t, mocks.GenericSequence+64, account.Sequence())
	})
}

func TestAccount_SignTx(t *testing.T) {
	t.Parallel()

	t.Run("nominal case", func(t *testing.T) {
		t.Parallel()

		account := openAccount(t)

		unsigned := types.NewTransaction(0, mocks.GenericSubject, big.NewInt(0), 21_000, big.NewInt(1), nil)
		signed, err := account.SignTx(unsigned)
		require.NoError(t, err)

		sender, err := types.Sender(types.LatestSignerForChainID(big.NewInt(114)), signed)
		require.NoError(t, err)
		assert.Equal(t, account.Address(), sender)
	})

	t.Run("fails when account not open", func(t *testing.T) {
		t.Parallel()

		key, err := crypto.GenerateKey()
		require.NoError(t, err)

		account := operator.New(mocks.NoopLogger, key)
		unsigned := types.NewTransaction(0, mocks.GenericSubject, big.NewInt(0), 21_000, big.NewInt(1), nil)
		_, err = account.SignTx(unsigned)
		assert.Error(t, err)
	})
}

func openAccount(t *testing.T) *operator.Account {
	t.Helper()

	key, err := crypto.GenerateKey()
	require.NoError(t, err)

	account := operator.New(mocks.NoopLogger, key)
	require.NoError(t, account.Open(context.Background(), mocks.BaselineSequenceReader(t)))

	return account
}
