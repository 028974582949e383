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

// Package ledger calls into the on-ledger lending program. The program
// itself is an external collaborator: it owns balance and share accounting,
// interest computation and the final signature and nonce checks. This
// package only encodes calls against its entry points and decodes their
// results.
package ledger

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// Entry points of the lending program.
const (
	methodBorrow      = "borrowGasless"
	methodSync        = "syncPlatformDataGasless"
	methodProfile     = "profiles"
	methodNonce       = "nonces"
	methodCreditTerms = "getCreditDetails"
)

// programABI describes the lending program's call interface. The layout is
// part of the frozen authorization contract; widths and order never change.
const programABI = `[
	{"type":"function","name":"borrowGasless","stateMutability":"nonpayable","inputs":[{"name":"subject","type":"address"},{"name":"deadline","type":"uint256"},{"name":"signature","type":"bytes"}],"outputs":[]},
	{"type":"function","name":"syncPlatformDataGasless","stateMutability":"nonpayable","inputs":[{"name":"subject","type":"address"},{"name":"earnings","type":"uint256"},{"name":"score","type":"uint256"},{"name":"tenure","type":"uint256"},{"name":"signature","type":"bytes"}],"outputs":[]},
	{"type":"function","name":"profiles","stateMutability":"view","inputs":[{"name":"subject","type":"address"}],"outputs":[{"name":"earnings","type":"uint256"},{"name":"score","type":"uint256"},{"name":"tenure","type":"uint256"},{"name":"verified","type":"bool"},{"name":"hasLoan","type":"bool"},{"name":"loanAmount","type":"uint256"}]},
	{"type":"function","name":"nonces","stateMutability":"view","inputs":[{"name":"subject","type":"address"}],"outputs":[{"name":"nonce","type":"uint256"}]},
	{"type":"function","name":"getCreditDetails","stateMutability":"view","inputs":[{"name":"subject","type":"address"}],"outputs":[{"name":"price","type":"uint256"},{"name":"eligibility","type":"uint256"},{"name":"cap","type":"uint256"}]}
]`

// Backend is the subset of the chain node API the client needs. It is
// implemented by an Ethereum RPC client in production and by mocks in tests.
type Backend interface {
	SuggestGasPrice(ctx context.Context) (*big.Int, error)
	SendTransaction(ctx context.Context, tx *types.Transaction) error
	TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error)
	CodeAt(ctx context.Context, account common.Address, blockNumber *big.Int) ([]byte, error)
	CallContract(ctx context.Context, call ethereum.CallMsg, blockNumber *big.Int) ([]byte, error)
}
