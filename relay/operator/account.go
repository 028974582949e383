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

// Package operator owns the relay's single ledger identity: its signing key
// and its account sequence. The account is constructed explicitly and
// injected into the components that need it, opened once at service start
// and closed at shutdown.
package operator

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/rs/zerolog"
)

// SequenceReader reads the chain parameters the account needs to come
// online: its pending sequence value and the chain identifier transactions
// must be signed against.
type SequenceReader interface {
	PendingNonceAt(ctx context.Context, account common.Address) (uint64, error)
	ChainID(ctx context.Context) (*big.Int, error)
}

// Account is the relay operator's ledger account. Its sequence counter is
// the only mutable state shared between concurrent relay requests, so every
// submission goes through the Submit critical section: the next sequence
// value is handed out and consumed without ever being visible to another
// request in an indeterminate state.
type Account struct {
	log     zerolog.Logger
	key     *ecdsa.PrivateKey
	address common.Address
	chainID *big.Int

	mu   sync.Mutex
	next uint64
	open bool
}

// New creates an account around the operator's private key. The account must
// be opened before it can submit.
func New(log zerolog.Logger, key *ecdsa.PrivateKey) *Account {

	address := crypto.PubkeyToAddress(key.PublicKey)
	a := Account{
		log:     log.With().Str("component", "operator_account").Str("address", address.Hex()).Logger(),
		key:     key,
		address: address,
	}

	return &a
}

// Address returns the operator's ledger address.
func (a *Account) Address() common.Address {
	return a.address
}

// Open initializes the account's sequence counter from the ledger's pending
// view and pins the chain ID used for signing.
func (a *Account) Open(ctx context.Context, seq SequenceReader) error {

	a.mu.Lock()
	defer a.mu.Unlock()

	if a.open {
		return fmt.Errorf("operator account already open")
	}

	next, err := seq.PendingNonceAt(ctx, a.address)
	if err != nil {
		return fmt.Errorf("could not read pending sequence: %w", err)
	}
	chainID, err := seq.ChainID(ctx)
	if err != nil {
		return fmt.Errorf("could not read chain ID: %w", err)
	}

	a.next = next
	a.chainID = chainID
	a.open = true

	a.log.Info().Uint64("sequence", next).Msg("operator account open")

	return nil
}

// Close takes the account out of service; subsequent submissions fail.
func (a *Account) Close() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.open = false
	a.log.Info().Uint64("sequence", a.next).Msg("operator account closed")
}

// Submit reserves the next sequence value and runs the given broadcast
// function with it, all inside a single critical section. The counter only
// advances when the broadcast succeeds, so a submission that never reached
// the network does not burn its sequence value. Confirmation waiting belongs
// outside this critical section; only the reserve-and-broadcast step is
// serialized.
func (a *Account) Submit(broadcast func(sequence uint64) error) (uint64, error) {

	a.mu.Lock()
	defer a.mu.Unlock()

	if !a.open {
		return 0, fmt.Errorf("operator account not open")
	}

	sequence := a.next
	err := broadcast(sequence)
	if err != nil {
		return 0, err
	}
	a.next++

	return sequence, nil
}

// SignTx signs a transaction with the operator key against the pinned chain
// ID.
func (a *Account) SignTx(tx *types.Transaction) (*types.Transaction, error) {

	if a.chainID == nil {
		return nil, fmt.Errorf("operator account not open")
	}

	signed, err := types.SignTx(tx, types.LatestSignerForChainID(a.chainID), a.key)
	if err != nil {
		return nil, fmt.Errorf("could not sign transaction: %w", err)
	}

	return signed, nil
}

// Sequence returns the next unreserved sequence value.
func (a *Account) Sequence() uint64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.next
}
