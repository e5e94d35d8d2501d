// Copyright 2026 The resfetch-go Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package resfetch

import (
	"time"

	"github.com/kelseyhightower/envconfig"

	"github.com/resfetch/resfetch-go/retry"
)

// envOptions mirrors the Options fields that make sense to source from
// the environment.
type envOptions struct {
	BaseURL       string        `envconfig:"BASE_URL"`
	Timeout       time.Duration `envconfig:"TIMEOUT"`
	RetryAttempts int           `envconfig:"RETRY_ATTEMPTS"`
	RetryDelay    time.Duration `envconfig:"RETRY_DELAY"`
}

// OptionsFromEnv builds base Options from RESFETCH_* environment
// variables: RESFETCH_BASE_URL, RESFETCH_TIMEOUT (a Go duration, for
// example "5s"), RESFETCH_RETRY_ATTEMPTS and RESFETCH_RETRY_DELAY.
// Unset variables leave the corresponding option at its zero value; a
// retry policy is attached only when RESFETCH_RETRY_ATTEMPTS is
// positive.
func OptionsFromEnv() (Options, error) {
	var env envOptions
	if err := envconfig.Process("resfetch", &env); err != nil {
		return Options{}, err
	}

	opts := Options{
		BaseURL: env.BaseURL,
		Timeout: env.Timeout,
	}
	if env.RetryAttempts > 0 {
		opts.Retry = &retry.Policy{Attempts: retry.Count(env.RetryAttempts)}
		if env.RetryDelay > 0 {
			opts.Retry.Delay = retry.Fixed(env.RetryDelay)
		}
	}
	return opts, nil
}
