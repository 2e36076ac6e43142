package service

import (
	"context"
	"fmt"

	. "cediflow/common/models"
	"cediflow/internal/repository"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// ComputeFee returns the fee for a withdrawal: a percentage of the
// amount, floored at the schedule's minimum fee so small transactions
// still cover operating cost.
func ComputeFee(amount decimal.Decimal, schedule FeeSchedule) decimal.Decimal {
	fee := amount.Mul(schedule.FeePercentage).Div(hundred)
	if fee.LessThan(schedule.MinFee) {
		return schedule.MinFee
	}
	return fee
}

// TotalDeduction is the amount actually debited from the balance:
// amount + fee, exact.
func TotalDeduction(amount decimal.Decimal, schedule FeeSchedule) decimal.Decimal {
	return amount.Add(ComputeFee(amount, schedule))
}

// ValidateAmount checks a withdrawal amount against the schedule
// bounds and the available balance, in a fixed order so the user sees
// the most specific violation first. Schedule caps and balance caps
// are reported as distinct kinds: they require different user actions.
func ValidateAmount(amount decimal.Decimal, schedule FeeSchedule, availableBalance decimal.Decimal) *ValidationError {
	if amount.LessThanOrEqual(decimal.Zero) {
		return &ValidationError{
			Kind:    ValidationNotPositive,
			Message: "amount must be greater than zero",
		}
	}

	if amount.LessThan(schedule.MinAmount) {
		return &ValidationError{
			Kind:    ValidationBelowMinimum,
			Message: fmt.Sprintf("amount is below the minimum of %s", schedule.MinAmount),
		}
	}

	if amount.GreaterThan(schedule.MaxAmount) {
		return &ValidationError{
			Kind:    ValidationAboveMaximum,
			Message: fmt.Sprintf("amount is above the maximum of %s", schedule.MaxAmount),
		}
	}

	// A non-positive balance always fails here, even when the amount
	// satisfies the schedule bounds.
	if availableBalance.LessThanOrEqual(decimal.Zero) || amount.GreaterThan(availableBalance) {
		return &ValidationError{
			Kind:    ValidationInsufficientBalance,
			Message: "amount exceeds the available balance",
		}
	}

	return nil
}

// FeeService resolves per-channel schedules from postgres and quotes
// the fee breakdown shown before submission.
type FeeService struct {
	store *RateStore
	repo  repository.IFeeScheduleRepository
}

func NewFeeService(store *RateStore, repo repository.IFeeScheduleRepository) *FeeService {
	return &FeeService{
		store: store,
		repo:  repo,
	}
}

func (s *FeeService) schedule(ctx context.Context, channel Channel) (*FeeSchedule, error) {
	schedule, err := s.repo.GetFeeSchedule(ctx, channel)
	if err != nil {
		return nil, fmt.Errorf("GetFeeSchedule(): %w", err)
	}
	if schedule == nil {
		return nil, &ErrUnknownChannel{Channel: channel}
	}
	return schedule, nil
}

func (s *FeeService) Quote(ctx context.Context, amount decimal.Decimal, channel Channel) (*FeeQuote, error) {
	schedule, err := s.schedule(ctx, channel)
	if err != nil {
		return nil, err
	}

	total := TotalDeduction(amount, *schedule)

	formatted := total.String()
	if base, err := s.store.Base(); err == nil {
		formatted = Format(total, *base)
	}

	return &FeeQuote{
		Channel:        channel,
		Amount:         amount,
		Fee:            ComputeFee(amount, *schedule),
		TotalDeduction: total,
		Formatted:      formatted,
	}, nil
}

// ValidateWithdrawal reruns the pure validation against the channel's
// schedule. The returned *ValidationError is user input feedback, not
// a system fault.
func (s *FeeService) ValidateWithdrawal(
	ctx context.Context,
	amount decimal.Decimal,
	channel Channel,
	availableBalance decimal.Decimal,
) error {
	schedule, err := s.schedule(ctx, channel)
	if err != nil {
		return err
	}

	if verr := ValidateAmount(amount, *schedule, availableBalance); verr != nil {
		return verr
	}
	return nil
}
