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

package relayer

import (
	"time"
)

// DefaultConfig is the default relayer configuration.
var DefaultConfig = Config{
	Now: time.Now,
}

// Config is the relayer configuration.
type Config struct {
	Now func() time.Time
}

// Option is an option for the relayer configuration.
type Option func(*Config)

// WithClock overrides the clock used for deadline checks and journal
// timestamps.
func WithClock(now func() time.Time) Option {
	return func(cfg *Config) {
		cfg.Now = now
	}
}
