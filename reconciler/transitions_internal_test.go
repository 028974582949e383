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
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/numaan0/proof-mint-blockchain/models/proofmint"
	"github.com/numaan0/proof-mint-blockchain/relay/failure"
	"github.com/numaan0/proof-mint-blockchain/testing/mocks"
)

func TestTransitions_InitializeSession(t *testing.T) {
	t.Parallel()

	t.Run("nominal case", func(t *testing.T) {
		t.Parallel()

		tr, st := baselineFSM(t, StatusIdle)

		err := tr.InitializeSession(st)
		require.NoError(t, err)
		assert.Equal(t, StatusSubmitting, st.status)
	})

	t.Run("handles invalid status", func(t *testing.T) {
		t.Parallel()

		tr, st := baselineFSM(t, StatusReconciling)

		err := tr.InitializeSession(st)
		assert.Error(t, err)
	})
}

func TestTransitions_SubmitAction(t *testing.T) {
	t.Parallel()

	t.Run("nominal case", func(t *testing.T) {
		t.Parallel()

		tr, st := baselineFSM(t, StatusSubmitting)

		err := tr.SubmitAction(st)
		require.NoError(t, err)
		assert.Equal(t, StatusAwaitingConfirmation, st.status)
		assert.Equal(t, mocks.GenericHash, st.hash)
	})

	t.Run("submission failure is terminal", func(t *testing.T) {
		t.Parallel()

		tr, st := baselineFSM(t, StatusSubmitting)
		tr.submit = func() (common.Hash, error) {
			return common.Hash{}, mocks.GenericError
		}

		err := tr.SubmitAction(st)
		require.NoError(t, err)
		assert.Equal(t, StatusFailed, st.status)
		assert.ErrorIs(t, st.outcome, mocks.GenericError)
	})

	t.Run("handles invalid status", func(t *testing.T) {
		t.Parallel()

		tr, st := baselineFSM(t, StatusIdle)

		err := tr.SubmitAction(st)
		assert.Error(t, err)
	})
}

func TestTransitions_AwaitConfirmation(t *testing.T) {
	t.Parallel()

	tr, st := baselineFSM(t, StatusAwaitingConfirmation)
	st.hash = mocks.GenericHash

	err := tr.AwaitConfirmation(st)
	require.NoError(t, err)
	assert.Equal(t, StatusReconciling, st.status)
}

func TestTransitions_ReconcileState(t *testing.T) {
	t.Parallel()

	t.Run("converges when the effect is visible", func(t *testing.T) {
		t.Parallel()

		tr, st := baselineFSM(t, StatusReconciling)
		tr.check = func(profile proofmint.Profile) bool {
			return profile.Verified
		}

		err := tr.ReconcileState(st)
		require.NoError(t, err)
		assert.Equal(t, StatusConfirmed, st.status)
		assert.Equal(t, uint(1), st.attempts)
	})

	t.Run("keeps polling while the effect is not visible", func(t *testing.T) {
		t.Parallel()

		tr, st := baselineFSM(t, StatusReconciling)
		tr.check = func(proofmint.Profile) bool {
			return false
		}

		err := tr.ReconcileState(st)
		require.NoError(t, err)
		assert.Equal(t, StatusReconciling, st.status)
		assert.Equal(t, uint(1), st.attempts)
	})

	t.Run("read failures consume the attempt budget", func(t *testing.T) {
		t.Parallel()

		tr, st := baselineFSM(t, StatusReconciling)
		tr.read = func() (proofmint.Profile, error) {
			return proofmint.Profile{}, mocks.GenericError
		}

		err := tr.ReconcileState(st)
		require.NoError(t, err)
		assert.Equal(t, StatusReconciling, st.status)
		assert.Equal(t, uint(1), st.attempts)
	})

	t.Run("exhausted budget with converged final read confirms", func(t *testing.T) {
		t.Parallel()

		tr, st := baselineFSM(t, StatusReconciling)
		st.attempts = tr.cfg.PollAttempts
		tr.check = func(proofmint.Profile) bool {
			return true
		}

		err := tr.ReconcileState(st)
		require.NoError(t, err)
		assert.Equal(t, StatusConfirmed, st.status)
	})

	t.Run("exhausted budget without convergence stalls", func(t *testing.T) {
		t.Parallel()

		tr, st := baselineFSM(t, StatusReconciling)
		st.attempts = tr.cfg.PollAttempts
		tr.check = func(proofmint.Profile) bool {
			return false
		}

		err := tr.ReconcileState(st)
		require.NoError(t, err)
		assert.Equal(t, StatusTimedOut, st.status)

		var stalled failure.ReconciliationStalled
		require.ErrorAs(t, st.outcome, &stalled)
		assert.Equal(t, st.subject, stalled.Subject)
		assert.Equal(t, tr.cfg.PollAttempts, stalled.Attempts)
	})
}

func TestTransitions_FinalizeSession(t *testing.T) {
	t.Parallel()

	t.Run("closes terminal sessions", func(t *testing.T) {
		t.Parallel()

		tr, st := baselineFSM(t, StatusConfirmed)

		err := tr.FinalizeSession(st)
		require.NoError(t, err)

		select {
		case <-st.done:
		default:
			t.Fatal("expected session to be closed")
		}
	})

	t.Run("handles non-terminal status", func(t *testing.T) {
		t.Parallel()

		tr, st := baselineFSM(t, StatusReconciling)

		err := tr.FinalizeSession(st)
		assert.Error(t, err)
	})
}

func baselineFSM(t *testing.T, status Status) (*Transitions, *State) {
	t.Helper()

	submit := func() (common.Hash, error) {
		return mocks.GenericHash, nil
	}
	read := func() (proofmint.Profile, error) {
		return mocks.GenericProfile, nil
	}
	check := func(proofmint.Profile) bool {
		return true
	}

	tr := NewTransitions(mocks.NoopLogger, submit, read, check,
		WithPollInterval(time.Millisecond),
		WithPollAttempts(3),
	)
	st := NewState(mocks.GenericSubject, proofmint.ActionBorrow)
	st.status = status

	return tr, st
}
