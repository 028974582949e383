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

package proofmint

// ActionKind enumerates the privileged ledger actions that can be authorized
// off-chain and submitted by the relay on the subject's behalf.
type ActionKind string

const (
	// ActionBorrow takes out a loan against the subject's on-ledger profile.
	ActionBorrow ActionKind = "BORROW"
	// ActionSyncProfile writes the subject's off-ledger reputation record to
	// the ledger, attested by the relay operator.
	ActionSyncProfile ActionKind = "SYNC_PROFILE"
)

// Valid returns true if the action kind is one of the supported actions.
func (a ActionKind) Valid() bool {
	switch a {
	case ActionBorrow, ActionSyncProfile:
		return true
	default:
		return false
	}
}

func (a ActionKind) String() string {
	return string(a)
}
