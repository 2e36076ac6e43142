package models

import (
	"fmt"

	"github.com/shopspring/decimal"
)

type Channel string

const (
	ChannelMobileMoney  Channel = "mobile_money"
	ChannelBankTransfer Channel = "bank_transfer"
)

// FeeSchedule configures fee computation for one withdrawal channel:
// a percentage of the amount with a minimum-fee floor, plus inclusive
// bounds on the transaction size. All values are in the transaction
// currency.
type FeeSchedule struct {
	Channel       Channel         `json:"channel"`
	FeePercentage decimal.Decimal `json:"fee_percentage"`
	MinFee        decimal.Decimal `json:"min_fee"`
	MinAmount     decimal.Decimal `json:"min_amount"`
	MaxAmount     decimal.Decimal `json:"max_amount"`
}

var hundred = decimal.NewFromInt(100)

func (s FeeSchedule) Validate() error {
	if s.FeePercentage.IsNegative() || s.FeePercentage.GreaterThan(hundred) {
		return fmt.Errorf("fee schedule %q: fee percentage must be within [0, 100]", s.Channel)
	}
	if s.MinFee.IsNegative() {
		return fmt.Errorf("fee schedule %q: minimum fee must be non-negative", s.Channel)
	}
	if s.MinAmount.GreaterThan(s.MaxAmount) {
		return fmt.Errorf("fee schedule %q: minimum amount exceeds maximum amount", s.Channel)
	}
	return nil
}
