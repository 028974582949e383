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

package reconciler

import (
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/rs/zerolog"

	"github.com/numaan0/proof-mint-blockchain/models/proofmint"
	"github.com/numaan0/proof-mint-blockchain/relay/failure"
)

// SubmitFunc submits the relayed transaction and returns its hash. The relay
// responds only once inclusion is observed, so a returned hash doubles as
// the confirmation signal.
type SubmitFunc func() (common.Hash, error)

// ReadFunc reads the subject's authoritative profile from the relay.
type ReadFunc func() (proofmint.Profile, error)

// CheckFunc reports whether the authoritative profile reflects the effect
// the session is waiting for.
type CheckFunc func(profile proofmint.Profile) bool

// Transitions is what applies transitions to the state of a reconciliation
// session.
type Transitions struct {
	cfg    Config
	log    zerolog.Logger
	submit SubmitFunc
	read   ReadFunc
	check  CheckFunc
}

// NewTransitions returns a Transitions component for one session, using the
// given submit, read and check callbacks.
func NewTransitions(log zerolog.Logger, submit SubmitFunc, read ReadFunc, check CheckFunc, options ...Option) *Transitions {

	cfg := DefaultConfig
	for _, option := range options {
		option(&cfg)
	}

	t := Transitions{
		cfg:    cfg,
		log:    log.With().Str("component", "reconciler_transitions").Logger(),
		submit: submit,
		read:   read,
		check:  check,
	}

	return &t
}

// InitializeSession moves the session out of its idle state. The caller has
// already applied the provisional update locally; from here on the session
// only ever converges that update against authoritative state, it never
// resubmits.
func (t *Transitions) InitializeSession(s *State) error {
	if s.status != StatusIdle {
		return fmt.Errorf("invalid status for initializing session (%s)", s.status)
	}

	t.log.Debug().
		Str("subject", s.subject.Hex()).
		Str("action", s.action.String()).
		Msg("session initialized with provisional state")

	s.status = StatusSubmitting
	s.notify(t.cfg)

	return nil
}

// SubmitAction invokes the submission callback exactly once. Any failure is
// terminal for the session; retrying is the caller's decision, through a
// fresh session.
func (t *Transitions) SubmitAction(s *State) error {
	if s.status != StatusSubmitting {
		return fmt.Errorf("invalid status for submitting action (%s)", s.status)
	}

	hash, err := t.submit()
	if err != nil {
		s.outcome = err
		s.status = StatusFailed
		s.notify(t.cfg)
		return nil
	}

	s.hash = hash
	s.status = StatusAwaitingConfirmation
	s.notify(t.cfg)

	return nil
}

// AwaitConfirmation acknowledges inclusion of the transaction. The relay
// holds its response until inclusion, so having the hash already means the
// transaction is in the ledger; what remains unknown is whether state reads
// reflect it yet.
func (t *Transitions) AwaitConfirmation(s *State) error {
	if s.status != StatusAwaitingConfirmation {
		return fmt.Errorf("invalid status for awaiting confirmation (%s)", s.status)
	}

	t.log.Info().
		Str("subject", s.subject.Hex()).
		Str("hash", s.hash.Hex()).
		Msg("transaction included, reconciling state")

	s.status = StatusReconciling
	s.notify(t.cfg)

	return nil
}

// ReconcileState performs one poll of the authoritative profile. When the
// expected effect is visible the session converges; when the attempt budget
// is exhausted, one last read decides between late convergence and a stall.
func (t *Transitions) ReconcileState(s *State) error {
	if s.status != StatusReconciling {
		return fmt.Errorf("invalid status for reconciling state (%s)", s.status)
	}

	if s.attempts >= t.cfg.PollAttempts {
		profile, err := t.read()
		if err == nil && t.check(profile) {
			s.status = StatusConfirmed
			s.notify(t.cfg)
			return nil
		}
		s.outcome = failure.ReconciliationStalled{
			Description: failure.NewDescription("authoritative state did not converge",
				failure.WithAddress("subject", s.subject),
				failure.WithHash("hash", s.hash)),
			Subject:  s.subject,
			Attempts: s.attempts,
			Interval: t.cfg.PollInterval,
		}
		s.status = StatusTimedOut
		s.notify(t.cfg)
		return nil
	}

	// Waiting before the read gives the ledger's read path a chance to catch
	// up with the inclusion we already observed.
	wait := time.NewTimer(t.cfg.PollInterval)
	select {
	case <-s.halt:
		wait.Stop()
		return nil
	case <-wait.C:
	}

	s.attempts++
	profile, err := t.read()
	if err != nil {
		t.log.Warn().Err(err).Uint("attempts", s.attempts).Msg("could not read profile")
		return nil
	}
	if !t.check(profile) {
		return nil
	}

	s.status = StatusConfirmed
	s.notify(t.cfg)

	return nil
}

// FinalizeSession winds the session down once a terminal status is reached.
func (t *Transitions) FinalizeSession(s *State) error {
	if !s.status.Terminal() {
		return fmt.Errorf("invalid status for finalizing session (%s)", s.status)
	}

	log := t.log.With().
		Str("subject", s.subject.Hex()).
		Str("status", s.status.String()).
		Logger()
	if s.outcome != nil {
		log.Warn().Err(s.outcome).Msg("session finished without converging")
	} else {
		log.Info().Str("hash", s.hash.Hex()).Msg("session converged")
	}

	s.close()

	return nil
}

func (s *State) notify(cfg Config) {
	if cfg.OnStatus != nil {
		cfg.OnStatus(s.status)
	}
}
