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
	"time"

	"github.com/numaan0/proof-mint-blockchain/models/proofmint"
)

// DefaultConfig is the default configuration for reconciliation sessions.
var DefaultConfig = Config{
	PollInterval: proofmint.DefaultPollInterval,
	PollAttempts: proofmint.DefaultPollAttempts,
	OnStatus:     nil,
}

// Config is the configuration of a reconciliation session.
type Config struct {
	PollInterval time.Duration
	PollAttempts uint
	OnStatus     func(Status)
}

// Option is an option to configure a reconciliation session.
type Option func(*Config)

// WithPollInterval sets the wait between authoritative state reads.
func WithPollInterval(interval time.Duration) Option {
	return func(cfg *Config) {
		cfg.PollInterval = interval
	}
}

// WithPollAttempts sets the attempt budget before a session is considered
// stalled.
func WithPollAttempts(attempts uint) Option {
	return func(cfg *Config) {
		cfg.PollAttempts = attempts
	}
}

// WithStatusNotify registers a callback invoked on every status change, from
// the session's own goroutine.
func WithStatusNotify(notify func(Status)) Option {
	return func(cfg *Config) {
		cfg.OnStatus = notify
	}
}
