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

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

type Backend struct {
	SuggestGasPriceFunc    func(ctx context.Context) (*big.Int, error)
	SendTransactionFunc    func(ctx context.Context, tx *types.Transaction) error
	TransactionReceiptFunc func(ctx context.Context, hash common.Hash) (*types.Receipt, error)
	CodeAtFunc             func(ctx context.Context, contract common.Address, blockNumber *big.Int) ([]byte, error)
	CallContractFunc       func(ctx context.Context, call ethereum.CallMsg, blockNumber *big.Int) ([]byte, error)
}

func BaselineBackend(t *testing.T) *Backend {
	t.Helper()

	b := Backend{
		SuggestGasPriceFunc: func(context.Context) (*big.Int, error) {
			return big.NewInt(25_000_000_000), nil
		},
		SendTransactionFunc: func(context.Context, *types.Transaction) error {
			return nil
		},
		TransactionReceiptFunc: func(context.Context, common.Hash) (*types.Receipt, error) {
			receipt := types.Receipt{
				Status:      types.ReceiptStatusSuccessful,
				BlockNumber: big.NewInt(1),
			}
			return &receipt, nil
		},
		CodeAtFunc: func(context.Context, common.Address, *big.Int) ([]byte, error) {
			return []byte{0x60}, nil
		},
		CallContractFunc: func(context.Context, ethereum.CallMsg, *big.Int) ([]byte, error) {
			return nil, nil
		},
	}

	return &b
}

func (b *Backend) SuggestGasPrice(ctx context.Context) (*big.Int, error) {
	return b.SuggestGasPriceFunc(ctx)
}

func (b *Backend) SendTransaction(ctx context.Context, tx *types.Transaction) error {
	return b.SendTransactionFunc(ctx, tx)
}

func (b *Backend) TransactionReceipt(ctx context.Context, hash common.Hash) (*types.Receipt, error) {
	return b.TransactionReceiptFunc(ctx, hash)
}

func (b *Backend) CodeAt(ctx context.Context, contract common.Address, blockNumber *big.Int) ([]byte, error) {
	return b.CodeAtFunc(ctx, contract, blockNumber)
}

func (b *Backend) CallContract(ctx context.Context, call ethereum.CallMsg, blockNumber *big.Int) ([]byte, error) {
	return b.CallContractFunc(ctx, call, blockNumber)
}
