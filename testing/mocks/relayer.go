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
	"testing"

	"github.com/ethereum/go-ethereum/common"

	"github.com/numaan0/proof-mint-blockchain/models/proofmint"
	"github.com/numaan0/proof-mint-blockchain/relay/synchronizer"
)

type Relayer struct {
	RelayBorrowFunc func(ctx context.Context, auth proofmint.Authorization) (common.Hash, error)
}

func BaselineRelayer(t *testing.T) *Relayer {
	t.Helper()

	r := Relayer{
		RelayBorrowFunc: func(context.Context, proofmint.Authorization) (common.Hash, error) {
			return GenericHash, nil
		},
	}

	return &r
}

func (r *Relayer) RelayBorrow(ctx context.Context, auth proofmint.Authorization) (common.Hash, error) {
	return r.RelayBorrowFunc(ctx, auth)
}

type Synchronizer struct {
	SyncFunc func(ctx context.Context, address string) (synchronizer.Result, error)
}

func BaselineSynchronizer(t *testing.T) *Synchronizer {
	t.Helper()

	s := Synchronizer{
		SyncFunc: func(context.Context, string) (synchronizer.Result, error) {
			result := synchronizer.Result{
				Hash:     GenericHash,
				Earnings: GenericProfile.Earnings,
				Score:    GenericRecord.Score,
				Tenure:   GenericRecord.Tenure,
			}
			return result, nil
		},
	}

	return &s
}

func (s *Synchronizer) Sync(ctx context.Context, address string) (synchronizer.Result, error) {
	return s.SyncFunc(ctx, address)
}
