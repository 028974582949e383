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

package relay

// SyncRequest is the request body of the sync-profile endpoint.
type SyncRequest struct {
	Address string `json:"subjectAddress"`
}

// BorrowRequest is the request body of the relay-borrow endpoint. The nonce
// is optional; when present it must match the subject's current anti-replay
// nonce on the ledger.
type BorrowRequest struct {
	Address   string `json:"subjectAddress"`
	Signature string `json:"signature"`
	Deadline  uint64 `json:"deadline"`
	Nonce     string `json:"nonce,omitempty"`
}
