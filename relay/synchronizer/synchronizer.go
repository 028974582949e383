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

// Package synchronizer pushes a subject's off-ledger reputation record onto
// the ledger. The relay acts as an oracle here: it looks the record up,
// attests to it with the operator key and forwards it through the relay
// service. Submitting identical data twice produces byte-identical payloads,
// so resubmission is safe as long as the ledger program deduplicates.
package synchronizer

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/rs/zerolog"

	"github.com/numaan0/proof-mint-blockchain/models/proofmint"
	"github.com/numaan0/proof-mint-blockchain/relay/encoder"
	"github.com/numaan0/proof-mint-blockchain/relay/signer"
)

// Registry looks up reputation records by subject address.
type Registry interface {
	Lookup(address string) (proofmint.ReputationRecord, error)
}

// Relay is the shared submission path of the relay service.
type Relay interface {
	SubmitSync(ctx context.Context, subject common.Address, earnings *big.Int, score *big.Int, tenure *big.Int, attestation []byte) (common.Hash, error)
}

// Result describes a confirmed profile sync: the transaction hash and the
// record as written, with earnings in ledger-native fixed-point scale.
type Result struct {
	Hash     common.Hash
	Earnings *big.Int
	Score    uint64
	Tenure   uint64
}

// Synchronizer wraps the relay service for the profile sync action.
type Synchronizer struct {
	log      zerolog.Logger
	registry Registry
	sign     signer.Signer
	relay    Relay
}

// New creates a synchronizer that attests records with the given signer,
// which must hold the relay operator's key.
func New(log zerolog.Logger, registry Registry, sign signer.Signer, relay Relay) *Synchronizer {

	s := Synchronizer{
		log:      log.With().Str("component", "synchronizer").Logger(),
		registry: registry,
		sign:     sign,
		relay:    relay,
	}

	return &s
}

// Sync looks up the subject's reputation record, attests to it and submits
// it through the relay service. A subject without a record fails before any
// ledger interaction: no fee is spent and no sequence value is consumed.
func (s *Synchronizer) Sync(ctx context.Context, address string) (Result, error) {

	record, err := s.registry.Lookup(address)
	if err != nil {
		return Result{}, err
	}

	subject := common.HexToAddress(address)
	earnings := record.ScaledEarnings()
	score := new(big.Int).SetUint64(record.Score)
	tenure := new(big.Int).SetUint64(record.Tenure)

	digest, err := encoder.SyncDigest(subject, earnings, score, tenure)
	if err != nil {
		return Result{}, err
	}
	attestation, err := s.sign.Sign(digest)
	if err != nil {
		return Result{}, fmt.Errorf("could not attest record: %w", err)
	}

	hash, err := s.relay.SubmitSync(ctx, subject, earnings, score, tenure, attestation)
	if err != nil {
		return Result{}, err
	}

	s.log.Info().
		Str("subject", subject.Hex()).
		Str("hash", hash.Hex()).
		Uint64("score", record.Score).
		Msg("profile synced")

	result := Result{
		Hash:     hash,
		Earnings: earnings,
		Score:    record.Score,
		Tenure:   record.Tenure,
	}

	return result, nil
}
