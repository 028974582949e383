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

package mocks

import (
	"context"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"

	"github.com/numaan0/proof-mint-blockchain/models/proofmint"
)

type Ledger struct {
	BorrowWithSignatureFunc      func(ctx context.Context, subject common.Address, deadline *big.Int, sig []byte) (proofmint.Confirmation, error)
	SyncProfileWithSignatureFunc func(ctx context.Context, subject common.Address, earnings *big.Int, score *big.Int, tenure *big.Int, sig []byte) (proofmint.Confirmation, error)
	SubjectNonceFunc             func(ctx context.Context, subject common.Address) (*big.Int, error)
}

func BaselineLedger(t *testing.T) *Ledger {
	t.Helper()

	l := Ledger{
		BorrowWithSignatureFunc: func(context.Context, common.Address, *big.Int, []byte) (proofmint.Confirmation, error) {
			return GenericConfirmation, nil
		},
		SyncProfileWithSignatureFunc: func(context.Context, common.Address, *big.Int, *big.Int, *big.Int, []byte) (proofmint.Confirmation, error) {
			return GenericConfirmation, nil
		},
		SubjectNonceFunc: func(context.Context, common.Address) (*big.Int, error) {
			return GenericNonce, nil
		},
	}

	return &l
}

func (l *Ledger) BorrowWithSignature(ctx context.Context, subject common.Address, deadline *big.Int, sig []byte) (proofmint.Confirmation, error) {
	return l.BorrowWithSignatureFunc(ctx, subject, deadline, sig)
}

func (l *Ledger) SyncProfileWithSignature(ctx context.Context, subject common.Address, earnings *big.Int, score *big.Int, tenure *big.Int, sig []byte) (proofmint.Confirmation, error) {
	return l.SyncProfileWithSignatureFunc(ctx, subject, earnings, score, tenure, sig)
}

func (l *Ledger) SubjectNonce(ctx context.Context, subject common.Address) (*big.Int, error) {
	return l.SubjectNonceFunc(ctx, subject)
}
