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

package ledger

import (
	"context"
	"math/big"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/numaan0/proof-mint-blockchain/models/proofmint"
	"github.com/numaan0/proof-mint-blockchain/relay/failure"
	"github.com/numaan0/proof-mint-blockchain/relay/operator"
	"github.com/numaan0/proof-mint-blockchain/testing/mocks"
)

func TestClient_BorrowWithSignature(t *testing.T) {
	t.Parallel()

	t.Run("nominal case", func(t *testing.T) {
		t.Parallel()

		backend := mocks.BaselineBackend(t)

		var sent *types.Transaction
		backend.SendTransactionFunc = func(_ context.Context, tx *types.Transaction) error {
			sent = tx
			return nil
		}

		client := testClient(t, backend)

		confirmation, err := client.BorrowWithSignature(context.Background(), mocks.GenericSubject, mocks.GenericDeadline, mocks.GenericSignature)
		require.NoError(t, err)

		require.NotNil(t, sent)
		assert.Equal(t, sent.Hash(), confirmation.Hash)
		assert.Equal(t, mocks.GenericSequence, confirmation.Sequence)
		assert.Equal(t, mocks.GenericSequence, sent.Nonce())

		// The calldata must target the gasless borrow entry point.
		program, err := abi.JSON(strings.NewReader(programABI))
		require.NoError(t, err)
		assert.Equal(t, program.Methods[methodBorrow].ID, sent.Data()[:4])
	})

	t.Run("broadcast failure does not consume sequence", func(t *testing.T) {
		t.Parallel()

		backend := mocks.BaselineBackend(t)
		backend.SendTransactionFunc = func(context.Context, *types.Transaction) error {
			return mocks.GenericError
		}

		account := testAccount(t)
		client, err := New(mocks.NoopLogger, backend, account, mocks.GenericSubject)
		require.NoError(t, err)

		_, err = client.BorrowWithSignature(context.Background(), mocks.GenericSubject, mocks.GenericDeadline, mocks.GenericSignature)
		require.Error(t, err)
		assert.Equal(t, mocks.GenericSequence, account.Sequence())
	})

	t.Run("bounded wait maps to ledger timeout", func(t *testing.T) {
		t.Parallel()

		backend := mocks.BaselineBackend(t)
		backend.TransactionReceiptFunc = func(context.Context, common.Hash) (*types.Receipt, error) {
			return nil, ethereum.NotFound
		}

		client := testClient(t, backend, WithWaitTimeout(50*time.Millisecond))

		_, err := client.BorrowWithSignature(context.Background(), mocks.GenericSubject, mocks.GenericDeadline, mocks.GenericSignature)
		require.Error(t, err)

		var timeout failure.LedgerTimeout
		require.ErrorAs(t, err, &timeout)
		assert.Equal(t, 50*time.Millisecond, timeout.Wait)
	})

	t.Run("reverted transaction maps to ledger rejection with verbatim reason", func(t *testing.T) {
		t.Parallel()

		backend := mocks.BaselineBackend(t)
		backend.TransactionReceiptFunc = func(context.Context, common.Hash) (*types.Receipt, error) {
			receipt := types.Receipt{
				Status:      types.ReceiptStatusFailed,
				BlockNumber: big.NewInt(7),
			}
			return &receipt, nil
		}
		backend.CallContractFunc = func(_ context.Context, _ ethereum.CallMsg, block *big.Int) ([]byte, error) {
			require.Equal(t, big.NewInt(7), block)
			return revertData(t, "Loan already active"), nil
		}

		client := testClient(t, backend)

		_, err := client.BorrowWithSignature(context.Background(), mocks.GenericSubject, mocks.GenericDeadline, mocks.GenericSignature)
		require.Error(t, err)

		var rejected failure.LedgerRejected
		require.ErrorAs(t, err, &rejected)
		assert.Equal(t, "Loan already active", rejected.Reason)
	})
}

func TestClient_ConcurrentSubmissions(t *testing.T) {
	t.Parallel()

	// Two simultaneous borrows must serialize through the operator account,
	// so each broadcast transaction carries its own sequence value.
	backend := mocks.BaselineBackend(t)

	var mu sync.Mutex
	var broadcast []uint64
	backend.SendTransactionFunc = func(_ context.Context, tx *types.Transaction) error {
		mu.Lock()
		defer mu.Unlock()
		broadcast = append(broadcast, tx.Nonce())
		return nil
	}

	client := testClient(t, backend)

	confirmations := make([]proofmint.Confirmation, 2)
	var eg errgroup.Group
	for i := 0; i < 2; i++ {
		i := i
		eg.Go(func() error {
			confirmation, err := client.BorrowWithSignature(context.Background(), mocks.GenericSubject, mocks.GenericDeadline, mocks.GenericSignature)
			if err != nil {
				return err
			}
			confirmations[i] = confirmation
			return nil
		})
	}
	require.NoError(t, eg.Wait())

	assert.NotEqual(t, confirmations[0].Hash, confirmations[1].Hash)
	assert.NotEqual(t, confirmations[0].Sequence, confirmations[1].Sequence)
	assert.ElementsMatch(t,
		[]uint64{mocks.GenericSequence, mocks.GenericSequence + 1},
		[]uint64{confirmations[0].Sequence, confirmations[1].Sequence},
	)

	mu.Lock()
	defer mu.Unlock()
	assert.ElementsMatch(t, []uint64{mocks.GenericSequence, mocks.GenericSequence + 1}, broadcast)
}

func TestClient_Reads(t *testing.T) {
	t.Parallel()

	program, err := abi.JSON(strings.NewReader(programABI))
	require.NoError(t, err)

	t.Run("profile", func(t *testing.T) {
		t.Parallel()

		output, err := program.Methods[methodProfile].Outputs.Pack(
			mocks.GenericProfile.Earnings,
			mocks.GenericProfile.Score,
			mocks.GenericProfile.Tenure,
			mocks.GenericProfile.Verified,
			mocks.GenericProfile.HasLoan,
			mocks.GenericProfile.LoanAmount,
		)
		require.NoError(t, err)

		backend := mocks.BaselineBackend(t)
		backend.CallContractFunc = func(context.Context, ethereum.CallMsg, *big.Int) ([]byte, error) {
			return output, nil
		}

		client := testClient(t, backend)

		profile, err := client.Profile(context.Background(), mocks.GenericSubject)
		require.NoError(t, err)
		assert.Equal(t, mocks.GenericProfile, profile)
	})

	t.Run("subject nonce", func(t *testing.T) {
		t.Parallel()

		output, err := program.Methods[methodNonce].Outputs.Pack(mocks.GenericNonce)
		require.NoError(t, err)

		backend := mocks.BaselineBackend(t)
		backend.CallContractFunc = func(context.Context, ethereum.CallMsg, *big.Int) ([]byte, error) {
			return output, nil
		}

		client := testClient(t, backend)

		nonce, err := client.SubjectNonce(context.Background(), mocks.GenericSubject)
		require.NoError(t, err)
		assert.Equal(t, mocks.GenericNonce, nonce)
	})

	t.Run("credit terms", func(t *testing.T) {
		t.Parallel()

		output, err := program.Methods[methodCreditTerms].Outputs.Pack(
			mocks.GenericTerms.Price,
			mocks.GenericTerms.Eligibility,
			mocks.GenericTerms.Cap,
		)
		require.NoError(t, err)

		backend := mocks.BaselineBackend(t)
		backend.CallContractFunc = func(context.Context, ethereum.CallMsg, *big.Int) ([]byte, error) {
			return output, nil
		}

		client := testClient(t, backend)

		terms, err := client.CreditTerms(context.Background(), mocks.GenericSubject)
		require.NoError(t, err)
		assert.Equal(t, mocks.GenericTerms, terms)
	})

	t.Run("read failure", func(t *testing.T) {
		t.Parallel()

		backend := mocks.BaselineBackend(t)
		backend.CallContractFunc = func(context.Context, ethereum.CallMsg, *big.Int) ([]byte, error) {
			return nil, mocks.GenericError
		}

		client := testClient(t, backend)

		_, err := client.SubjectNonce(context.Background(), mocks.GenericSubject)
		assert.Error(t, err)
	})
}

type rpcError struct {
	data string
}

func (e rpcError) Error() string {
	return "execution reverted: " + e.data
}

func (e rpcError) ErrorData() interface{} {
	return e.data
}

func TestUnpackCallError(t *testing.T) {
	t.Parallel()

	t.Run("extracts reason from error data", func(t *testing.T) {
		t.Parallel()

		encoded := hexutil.Encode(revertData(t, "Signature expired"))
		reason := unpackCallError(rpcError{data: encoded})
		assert.Equal(t, "Signature expired", reason)
	})

	t.Run("strips node formatting from plain errors", func(t *testing.T) {
		t.Parallel()

		reason := unpackCallError(rpcError{data: "not hex data"})
		assert.Equal(t, "not hex data", reason)
	})
}

func testClient(t *testing.T, backend Backend, options ...Option) *Client {
	t.Helper()

	client, err := New(mocks.NoopLogger, backend, testAccount(t), mocks.GenericSubject, options...)
	require.NoError(t, err)

	return client
}

func testAccount(t *testing.T) *operator.Account {
	t.Helper()

	key, err := crypto.GenerateKey()
	require.NoError(t, err)

	account := operator.New(mocks.NoopLogger, key)
	require.NoError(t, account.Open(context.Background(), mocks.BaselineSequenceReader(t)))

	return account
}

func revertData(t *testing.T, reason string) []byte {
	t.Helper()

	stringType, err := abi.NewType("string", "", nil)
	require.NoError(t, err)

	packed, err := abi.Arguments{{Type: stringType}}.Pack(reason)
	require.NoError(t, err)

	selector := crypto.Keccak256([]byte("Error(string)"))[:4]

	return append(selector, packed...)
}
