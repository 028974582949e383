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
	"sync"
)

// TransitionFunc is a function that is applied onto the session's state.
type TransitionFunc func(*State) error

// FSM is the finite state machine that drives one reconciliation session
// from submission to a terminal status. Run must be called exactly once.
type FSM struct {
	state       *State
	transitions map[Status]TransitionFunc
	wg          *sync.WaitGroup
}

// NewFSM creates a state machine on the given state, with one transition
// registered per status.
func NewFSM(state *State, options ...func(*FSM)) *FSM {

	f := &FSM{
		state:       state,
		transitions: make(map[Status]TransitionFunc),
		wg:          &sync.WaitGroup{},
	}

	for _, option := range options {
		option(f)
	}

	// Registered here rather than in Run, so that a Stop racing the launch
	// of the Run goroutine still waits for it.
	f.wg.Add(1)

	return f
}

// WithTransition registers the transition to apply when the session is in
// the given status.
func WithTransition(status Status, transition TransitionFunc) func(*FSM) {
	return func(f *FSM) {
		f.transitions[status] = transition
	}
}

// Run applies transitions to the state until the session reaches a terminal
// status or is stopped. The Run goroutine is the only writer of the state
// and the only closer of its done channel.
func (f *FSM) Run() error {
	defer f.wg.Done()
	defer f.state.close()
	for {
		select {
		case <-f.state.done:
			return nil
		default:
			// continue
		}
		select {
		case <-f.state.halt:
			f.state.outcome = f.state.reason
			return nil
		default:
			// continue
		}
		transition, ok := f.transitions[f.state.status]
		if !ok {
			return fmt.Errorf("could not find transition for status (%s)", f.state.status)
		}
		err := transition(f.state)
		if err != nil {
			return fmt.Errorf("could not apply transition to state: %w", err)
		}
	}
}

// Stop aborts the session with the given reason and waits for its goroutine
// to wind down, so the state is settled when Stop returns.
func (f *FSM) Stop(reason error) {
	f.state.interrupt(reason)
	f.wg.Wait()
}
