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
)

type SequenceReader struct {
	PendingNonceAtFunc func(ctx context.Context, account common.Address) (uint64, error)
	ChainIDFunc        func(ctx context.Context) (*big.Int, error)
}

func BaselineSequenceReader(t *testing.T) *SequenceReader {
	t.Helper()

	s := SequenceReader{
		PendingNonceAtFunc: func(context.Context, common.Address) (uint64, error) {
			return GenericSequence, nil
		},
		ChainIDFunc: func(context.Context) (*big.Int, error) {
			return big.NewInt(114), nil
		},
	}

	return &s
}

func (s *SequenceReader) PendingNonceAt(ctx context.Context, account common.Address) (uint64, error) {
	return s.PendingNonceAtFunc(ctx, account)
}

func (s *SequenceReader) ChainID(ctx context.Context) (*big.Int, error) {
	return s.ChainIDFunc(ctx)
}
