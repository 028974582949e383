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
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/rs/zerolog"

	"github.com/numaan0/proof-mint-blockchain/models/proofmint"
	"github.com/numaan0/proof-mint-blockchain/relay/failure"
	"github.com/numaan0/proof-mint-blockchain/relay/operator"
)

// Client submits transactions to and reads state from the lending program.
// All writes are paid for by the operator account and go through its
// submission critical section, so no two transactions are ever in flight
// with an indeterminate sequence value.
type Client struct {
	log      zerolog.Logger
	backend  Backend
	account  *operator.Account
	contract common.Address
	program  abi.ABI
	wait     time.Duration
	gasLimit uint64
}

// New creates a client for the lending program at the given contract
// address.
func New(log zerolog.Logger, backend Backend, account *operator.Account, contract common.Address, options ...Option) (*Client, error) {

	cfg := DefaultConfig
	for _, option := range options {
		option(&cfg)
	}

	program, err := abi.JSON(strings.NewReader(programABI))
	if err != nil {
		return nil, fmt.Errorf("could not parse program ABI: %w", err)
	}

	c := Client{
		log:      log.With().Str("component", "ledger_client").Logger(),
		backend:  backend,
		account:  account,
		contract: contract,
		program:  program,
		wait:     cfg.WaitTimeout,
		gasLimit: cfg.GasLimit,
	}

	return &c, nil
}

// BorrowWithSignature submits a gasless borrow on behalf of the subject,
// forwarding the subject's own authorization signature unchanged, and blocks
// until the transaction is observed as included.
func (c *Client) BorrowWithSignature(ctx context.Context, subject common.Address, deadline *big.Int, sig []byte) (proofmint.Confirmation, error) {

	data, err := c.program.Pack(methodBorrow, subject, deadline, sig)
	if err != nil {
		return proofmint.Confirmation{}, fmt.Errorf("could not pack borrow call: %w", err)
	}

	return c.submit(ctx, data)
}

// SyncProfileWithSignature submits a profile sync attested by the relay
// operator's signature and blocks until the transaction is observed as
// included.
func (c *Client) SyncProfileWithSignature(ctx context.Context, subject common.Address, earnings *big.Int, score *big.Int, tenure *big.Int, sig []byte) (proofmint.Confirmation, error) {

	data, err := c.program.Pack(methodSync, subject, earnings, score, tenure, sig)
	if err != nil {
		return proofmint.Confirmation{}, fmt.Errorf("could not pack sync call: %w", err)
	}

	return c.submit(ctx, data)
}

// submit broadcasts a single transaction against the lending program and
// waits for its inclusion. The sequence value is reserved, consumed and made
// durable inside the operator account's critical section; only the
// confirmation wait happens outside it, so the next submission can proceed
// as soon as this one is broadcast.
func (c *Client) submit(ctx context.Context, data []byte) (proofmint.Confirmation, error) {

	gasPrice, err := c.backend.SuggestGasPrice(ctx)
	if err != nil {
		return proofmint.Confirmation{}, fmt.Errorf("could not suggest gas price: %w", err)
	}

	var tx *types.Transaction
	sequence, err := c.account.Submit(func(sequence uint64) error {
		unsigned := types.NewTransaction(sequence, c.contract, big.NewInt(0), c.gasLimit, gasPrice, data)
		signed, err := c.account.SignTx(unsigned)
		if err != nil {
			return err
		}
		tx = signed
		return c.backend.SendTransaction(ctx, signed)
	})
	if err != nil {
		return proofmint.Confirmation{}, fmt.Errorf("could not broadcast transaction: %w", err)
	}

	c.log.Debug().
		Str("hash", tx.Hash().Hex()).
		Uint64("sequence", sequence).
		Msg("transaction broadcast")

	waitCtx, cancel := context.WithTimeout(ctx, c.wait)
	defer cancel()

	receipt, err := bind.WaitMined(waitCtx, c.backend, tx)
	if err != nil {
		return proofmint.Confirmation{}, failure.LedgerTimeout{
			Description: failure.NewDescription("inclusion not observed within bounded wait",
				failure.WithHash("transaction", tx.Hash()),
				failure.WithErr(err)),
			Hash: tx.Hash(),
			Wait: c.wait,
		}
	}

	if receipt.Status == types.ReceiptStatusFailed {
		reason := c.revertReason(ctx, data, receipt.BlockNumber)
		return proofmint.Confirmation{}, failure.LedgerRejected{
			Description: failure.NewDescription("ledger program reverted transaction",
				failure.WithHash("transaction", tx.Hash()),
				failure.WithString("reason", reason)),
			Reason: reason,
			Hash:   tx.Hash(),
		}
	}

	confirmation := proofmint.Confirmation{
		Hash:     tx.Hash(),
		Sequence: sequence,
	}

	return confirmation, nil
}

// Profile reads a subject's on-ledger profile.
func (c *Client) Profile(ctx context.Context, subject common.Address) (proofmint.Profile, error) {

	values, err := c.call(ctx, methodProfile, subject)
	if err != nil {
		return proofmint.Profile{}, fmt.Errorf("could not read profile: %w", err)
	}
	if len(values) != 6 {
		return proofmint.Profile{}, fmt.Errorf("unexpected profile output length (have: %d, want: %d)", len(values), 6)
	}

	earnings, ok1 := values[0].(*big.Int)
	score, ok2 := values[1].(*big.Int)
	tenure, ok3 := values[2].(*big.Int)
	verified, ok4 := values[3].(bool)
	hasLoan, ok5 := values[4].(bool)
	loanAmount, ok6 := values[5].(*big.Int)
	if !ok1 || !ok2 || !ok3 || !ok4 || !ok5 || !ok6 {
		return proofmint.Profile{}, fmt.Errorf("unexpected profile output types")
	}

	profile := proofmint.Profile{
		Earnings:   earnings,
		Score:      score,
		Tenure:     tenure,
		Verified:   verified,
		HasLoan:    hasLoan,
		LoanAmount: loanAmount,
	}

	return profile, nil
}

// SubjectNonce reads a subject's anti-replay nonce. This is the counter
// embedded in borrow authorizations, distinct from the operator account
// sequence.
func (c *Client) SubjectNonce(ctx context.Context, subject common.Address) (*big.Int, error) {

	values, err := c.call(ctx, methodNonce, subject)
	if err != nil {
		return nil, fmt.Errorf("could not read subject nonce: %w", err)
	}
	if len(values) != 1 {
		return nil, fmt.Errorf("unexpected nonce output length (have: %d, want: %d)", len(values), 1)
	}

	nonce, ok := values[0].(*big.Int)
	if !ok {
		return nil, fmt.Errorf("unexpected nonce output type")
	}

	return nonce, nil
}

// CreditTerms reads the oracle-priced loan conditions for a subject.
func (c *Client) CreditTerms(ctx context.Context, subject common.Address) (proofmint.CreditTerms, error) {

	values, err := c.call(ctx, methodCreditTerms, subject)
	if err != nil {
		return proofmint.CreditTerms{}, fmt.Errorf("could not read credit terms: %w", err)
	}
	if len(values) != 3 {
		return proofmint.CreditTerms{}, fmt.Errorf("unexpected credit terms output length (have: %d, want: %d)", len(values), 3)
	}

	price, ok1 := values[0].(*big.Int)
	eligibility, ok2 := values[1].(*big.Int)
	cap, ok3 := values[2].(*big.Int)
	if !ok1 || !ok2 || !ok3 {
		return proofmint.CreditTerms{}, fmt.Errorf("unexpected credit terms output types")
	}

	terms := proofmint.CreditTerms{
		Price:       price,
		Eligibility: eligibility,
		Cap:         cap,
	}

	return terms, nil
}

// call executes a read-only call against the lending program and decodes its
// outputs.
func (c *Client) call(ctx context.Context, method string, args ...interface{}) ([]interface{}, error) {

	data, err := c.program.Pack(method, args...)
	if err != nil {
		return nil, fmt.Errorf("could not pack call: %w", err)
	}

	msg := ethereum.CallMsg{
		From: c.account.Address(),
		To:   &c.contract,
		Data: data,
	}
	output, err := c.backend.CallContract(ctx, msg, nil)
	if err != nil {
		return nil, fmt.Errorf("could not execute call: %w", err)
	}

	values, err := c.program.Unpack(method, output)
	if err != nil {
		return nil, fmt.Errorf("could not unpack call output: %w", err)
	}

	return values, nil
}

// revertReason re-executes the reverted call at its inclusion block to
// recover the ledger program's revert reason. When the node does not
// cooperate, a generic reason is returned rather than failing the error
// path.
func (c *Client) revertReason(ctx context.Context, data []byte, block *big.Int) string {

	msg := ethereum.CallMsg{
		From: c.account.Address(),
		To:   &c.contract,
		Gas:  c.gasLimit,
		Data: data,
	}

	result, err := c.backend.CallContract(ctx, msg, block)
	if err != nil {
		return unpackCallError(err)
	}

	reason, err := abi.UnpackRevert(result)
	if err != nil {
		return "execution reverted"
	}

	return reason
}

// dataError is the part of the RPC error carrying the raw revert data, as
// returned by Ethereum nodes.
type dataError interface {
	Error() string
	ErrorData() interface{}
}

// unpackCallError extracts the ledger program's revert reason from a failed
// call, stripping the node's formatting noise but leaving the reason itself
// verbatim.
func unpackCallError(err error) string {

	var de dataError
	if errors.As(err, &de) {
		encoded, ok := de.ErrorData().(string)
		if ok {
			data := common.FromHex(encoded)
			reason, uerr := abi.UnpackRevert(data)
			if uerr == nil {
				return reason
			}
		}
	}

	reason := err.Error()
	reason = strings.TrimPrefix(reason, "execution reverted: ")

	return reason
}
