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

type Reader struct {
	ProfileFunc      func(ctx context.Context, subject common.Address) (proofmint.Profile, error)
	SubjectNonceFunc func(ctx context.Context, subject common.Address) (*big.Int, error)
	CreditTermsFunc  func(ctx context.Context, subject common.Address) (proofmint.CreditTerms, error)
}

func BaselineReader(t *testing.T) *Reader {
	t.Helper()

	r := Reader{
		ProfileFunc: func(context.Context, common.Address) (proofmint.Profile, error) {
			return GenericProfile, nil
		},
		SubjectNonceFunc: func(context.Context, common.Address) (*big.Int, error) {
			return GenericNonce, nil
		},
		CreditTermsFunc: func(context.Context, common.Address) (proofmint.CreditTerms, error) {
			return GenericTerms, nil
		},
	}

	return &r
}

func (r *Reader) Profile(ctx context.Context, subject common.Address) (proofmint.Profile, error) {
	return r.ProfileFunc(ctx, subject)
}

func (r *Reader) SubjectNonce(ctx context.Context, subject common.Address) (*big.Int, error) {
	return r.SubjectNonceFunc(ctx, subject)
}

func (r *Reader) CreditTerms(ctx context.Context, subject common.Address) (proofmint.CreditTerms, error) {
	return r.CreditTermsFunc(ctx, subject)
}
