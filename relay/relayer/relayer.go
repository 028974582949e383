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

// Package relayer turns verified off-chain authorizations into on-ledger
// transactions paid for by the relay operator. Request handling is
// concurrent; transaction submission serializes through the operator
// account further down the stack.
package relayer

import (
	"context"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/rs/zerolog"

	"github.com/numaan0/proof-mint-blockchain/models/proofmint"
	"github.com/numaan0/proof-mint-blockchain/relay/encoder"
	"github.com/numaan0/proof-mint-blockchain/relay/failure"
	"github.com/numaan0/proof-mint-blockchain/relay/signer"
)

// Ledger is the part of the lending program the relayer submits to and
// revalidates against.
type Ledger interface {
	BorrowWithSignature(ctx context.Context, subject common.Address, deadline *big.Int, sig []byte) (proofmint.Confirmation, error)
	SyncProfileWithSignature(ctx context.Context, subject common.Address, earnings *big.Int, score *big.Int, tenure *big.Int, sig []byte) (proofmint.Confirmation, error)
	SubjectNonce(ctx context.Context, subject common.Address) (*big.Int, error)
}

// Journal records every transaction the relay broadcast. Journal failures
// never fail a relay; the ledger is the system of record.
type Journal interface {
	Save(submission proofmint.Submission) error
}

// Relayer is the relay service core.
type Relayer struct {
	log     zerolog.Logger
	ledger  Ledger
	journal Journal
	now     func() time.Time
}

// New creates a relayer on top of the given ledger and journal.
func New(log zerolog.Logger, ledger Ledger, journal Journal, options ...Option) *Relayer {

	cfg := DefaultConfig
	for _, option := range options {
		option(&cfg)
	}

	r := Relayer{
		log:     log.With().Str("component", "relayer").Logger(),
		ledger:  ledger,
		journal: journal,
		now:     cfg.Now,
	}

	return &r
}

// RelayBorrow revalidates a borrow authorization and submits it as a single
// ledger transaction, returning the transaction hash once inclusion is
// observed. The subject's signature is forwarded unchanged; the relay never
// signs on the subject's behalf for borrows.
func (r *Relayer) RelayBorrow(ctx context.Context, auth proofmint.Authorization) (common.Hash, error) {

	if auth.Kind != proofmint.ActionBorrow {
		return common.Hash{}, failure.InvalidAuthorization{
			Description: failure.NewDescription("authorization is not a borrow",
				failure.WithString("kind", auth.Kind.String())),
		}
	}
	if auth.Deadline == nil {
		return common.Hash{}, failure.InvalidAuthorization{
			Description: failure.NewDescription("authorization has no deadline"),
		}
	}

	if !auth.Deadline.IsUint64() {
		return common.Hash{}, failure.InvalidAuthorization{
			Description: failure.NewDescription("authorization deadline is out of range",
				failure.WithString("deadline", auth.Deadline.String())),
		}
	}

	// A stale authorization is rejected outright, even if the signature
	// would otherwise verify.
	now := uint64(r.now().Unix())
	if auth.Deadline.Uint64() < now {
		return common.Hash{}, failure.ExpiredDeadline{
			Description: failure.NewDescription("authorization deadline has elapsed",
				failure.WithString("deadline", auth.Deadline.String()),
				failure.WithUint64("now", now)),
			Deadline: auth.Deadline.Uint64(),
			Now:      now,
		}
	}

	// The signature is verified against the subject's current anti-replay
	// nonce as the ledger sees it. A signature issued for an already
	// consumed nonce can never verify again, because the ledger nonce has
	// advanced past it.
	nonce, err := r.ledger.SubjectNonce(ctx, auth.Subject)
	if err != nil {
		return common.Hash{}, err
	}
	if auth.Nonce != nil && auth.Nonce.Cmp(nonce) != 0 {
		return common.Hash{}, failure.InvalidAuthorization{
			Description: failure.NewDescription("authorization nonce does not match ledger nonce",
				failure.WithString("have_nonce", auth.Nonce.String()),
				failure.WithString("want_nonce", nonce.String())),
		}
	}

	digest, err := encoder.BorrowDigest(auth.Subject, nonce, auth.Deadline)
	if err != nil {
		return common.Hash{}, err
	}
	err = signer.Verify(digest, auth.Signature, auth.Subject)
	if err != nil {
		return common.Hash{}, err
	}

	confirmation, err := r.ledger.BorrowWithSignature(ctx, auth.Subject, auth.Deadline, auth.Signature)
	if err != nil {
		return common.Hash{}, err
	}

	r.record(proofmint.ActionBorrow, auth.Subject, confirmation)

	return confirmation.Hash, nil
}

// SubmitSync submits an operator-attested profile sync as a single ledger
// transaction, returning the transaction hash once inclusion is observed.
// The synchronizer prepares and attests the record; this is the shared
// submission path.
func (r *Relayer) SubmitSync(ctx context.Context, subject common.Address, earnings *big.Int, score *big.Int, tenure *big.Int, attestation []byte) (common.Hash, error) {

	confirmation, err := r.ledger.SyncProfileWithSignature(ctx, subject, earnings, score, tenure, attestation)
	if err != nil {
		return common.Hash{}, err
	}

	r.record(proofmint.ActionSyncProfile, subject, confirmation)

	return confirmation.Hash, nil
}

func (r *Relayer) record(kind proofmint.ActionKind, subject common.Address, confirmation proofmint.Confirmation) {

	submission := proofmint.Submission{
		Hash:      confirmation.Hash,
		Subject:   subject,
		Kind:      kind,
		Sequence:  confirmation.Sequence,
		CreatedAt: r.now(),
	}
	err := r.journal.Save(submission)
	if err != nil {
		r.log.Warn().Err(err).Str("hash", confirmation.Hash.Hex()).Msg("could not journal submission")
	}

	r.log.Info().
		Str("action", kind.String()).
		Str("subject", subject.Hex()).
		Str("hash", confirmation.Hash.Hex()).
		Uint64("sequence", confirmation.Sequence).
		Msg("transaction confirmed")
}
