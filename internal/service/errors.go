package service

import (
	"errors"
	"fmt"

	"cediflow/common/models"
)

var ErrServiceStarted = errors.New("service is already started")
var ErrServiceInternal = errors.New("service internal error")

// ErrRateFetch marks transient refresh failures: the previous cached
// table stays usable and the caller may simply retry later.
var ErrRateFetch = errors.New("could not fetch rates from source")

var ErrNoRates = errors.New("rate table is not loaded yet, please try later")

// ErrBaseMismatch rejects an override table quoted against a base
// other than the configured one.
var ErrBaseMismatch = errors.New("rate table base does not match configured base currency")

type ErrUnknownChannel struct {
	Channel models.Channel
}

func (e *ErrUnknownChannel) Error() string {
	return fmt.Sprintf("no fee schedule configured for channel %q", e.Channel)
}
