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
	"sync"

	"github.com/ethereum/go-ethereum/common"

	"github.com/numaan0/proof-mint-blockchain/models/proofmint"
)

// State is the reconciliation session's state. It is only ever mutated by
// the session's own goroutine, which is also the only closer of the done
// channel; other goroutines observe the state after done is closed and
// request shutdown through interrupt, never by touching the state directly.
type State struct {
	subject  common.Address
	action   proofmint.ActionKind
	status   Status
	hash     common.Hash
	attempts uint
	outcome  error
	once     *sync.Once
	done     chan struct{}
	stop     *sync.Once
	halt     chan struct{}
	reason   error
}

// NewState returns the initial state of a reconciliation session for the
// given subject and action.
func NewState(subject common.Address, action proofmint.ActionKind) *State {

	s := State{
		subject: subject,
		action:  action,
		status:  StatusIdle,
		once:    &sync.Once{},
		done:    make(chan struct{}),
		stop:    &sync.Once{},
		halt:    make(chan struct{}),
	}

	return &s
}

func (s *State) close() {
	s.once.Do(func() {
		close(s.done)
	})
}

// interrupt asks the session goroutine to wind down with the given reason.
// The reason is written before the halt channel closes, so the session
// goroutine can safely adopt it as the outcome.
func (s *State) interrupt(reason error) {
	s.stop.Do(func() {
		s.reason = reason
		close(s.halt)
	})
}
