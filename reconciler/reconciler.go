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

// Package reconciler drives client-side state reconciliation after a relayed
// transaction. A session applies a provisional update, submits once and then
// polls authoritative state until it reflects the transaction or the attempt
// budget runs out. Sessions never resubmit; a stall leaves the decision with
// the caller.
package reconciler

import (
	"context"
	"errors"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/rs/zerolog"

	"github.com/numaan0/proof-mint-blockchain/models/proofmint"
)

// ErrSuperseded is the outcome of a session that was replaced by a newer
// session for the same subject before reaching a terminal status.
var ErrSuperseded = errors.New("session superseded")

// ErrStopped is the outcome of a session that was aborted through Stop
// before reaching a terminal status.
var ErrStopped = errors.New("session stopped")

// Session is a handle on one running reconciliation session.
type Session struct {
	state *State
	fsm   *FSM
}

// Reconciler manages reconciliation sessions, at most one per subject. A
// new session for a subject supersedes the previous one.
type Reconciler struct {
	log      zerolog.Logger
	options  []Option
	mu       sync.Mutex
	sessions map[common.Address]*Session
}

// New creates a reconciler. The given options apply to every session it
// starts.
func New(log zerolog.Logger, options ...Option) *Reconciler {

	r := Reconciler{
		log:      log.With().Str("component", "reconciler").Logger(),
		options:  options,
		sessions: make(map[common.Address]*Session),
	}

	return &r
}

// Start begins a reconciliation session for the subject, superseding any
// session already running for it. The submit callback is invoked exactly
// once; the check callback decides when authoritative state has converged.
func (r *Reconciler) Start(subject common.Address, action proofmint.ActionKind, submit SubmitFunc, read ReadFunc, check CheckFunc) *Session {

	r.mu.Lock()
	previous, ok := r.sessions[subject]
	if ok {
		previous.fsm.Stop(ErrSuperseded)
		r.log.Debug().Str("subject", subject.Hex()).Msg("superseded running session")
	}

	state := NewState(subject, action)
	transitions := NewTransitions(r.log, submit, read, check, r.options...)
	fsm := NewFSM(state,
		WithTransition(StatusIdle, transitions.InitializeSession),
		WithTransition(StatusSubmitting, transitions.SubmitAction),
		WithTransition(StatusAwaitingConfirmation, transitions.AwaitConfirmation),
		WithTransition(StatusReconciling, transitions.ReconcileState),
		WithTransition(StatusConfirmed, transitions.FinalizeSession),
		WithTransition(StatusFailed, transitions.FinalizeSession),
		WithTransition(StatusTimedOut, transitions.FinalizeSession),
	)

	session := Session{
		state: state,
		fsm:   fsm,
	}
	r.sessions[subject] = &session
	r.mu.Unlock()

	go func() {
		err := fsm.Run()
		if err != nil {
			r.log.Error().Err(err).Str("subject", subject.Hex()).Msg("session aborted")
		}
	}()

	return &session
}

// Stop aborts the session running for the subject, if any. The aborted
// session's outcome is ErrStopped.
func (r *Reconciler) Stop(subject common.Address) {
	r.mu.Lock()
	session, ok := r.sessions[subject]
	if ok {
		delete(r.sessions, subject)
	}
	r.mu.Unlock()
	if ok {
		session.fsm.Stop(ErrStopped)
	}
}

// Wait blocks until the session reaches a terminal status or the context is
// cancelled, and returns the session's outcome. A converged session returns
// nil; a superseded one returns ErrSuperseded and an aborted one ErrStopped.
func (s *Session) Wait(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-s.state.done:
	}
	return s.state.outcome
}

// Status returns the status the session finished in. It is only meaningful
// after Wait has returned.
func (s *Session) Status() Status {
	select {
	case <-s.state.done:
		return s.state.status
	default:
		return StatusIdle
	}
}

// Hash returns the transaction hash of the session's submission. It is only
// meaningful after Wait has returned.
func (s *Session) Hash() common.Hash {
	select {
	case <-s.state.done:
		return s.state.hash
	default:
		return common.Hash{}
	}
}
