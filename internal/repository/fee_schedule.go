package repository

import (
	"context"
	"fmt"

	"cediflow/common/models"
	"cediflow/internal/db"

	"github.com/jackc/pgx/v4/pgxpool"
)

type feeScheduleRepo struct {
	client *pgxpool.Pool
}

func NewFeeSchedulePostgresRepository(client *pgxpool.Pool) IFeeScheduleRepository {
	return &feeScheduleRepo{
		client: client,
	}
}

func (r *feeScheduleRepo) GetFeeSchedule(ctx context.Context, channel models.Channel) (*models.FeeSchedule, error) {
	query := `
		SELECT channel, fee_percentage, min_fee, min_amount, max_amount
		FROM fee_schedules
		WHERE channel = $1;
	`

	schedule := models.FeeSchedule{}
	if err := r.client.QueryRow(ctx, query, channel).Scan(
		&schedule.Channel,
		&schedule.FeePercentage,
		&schedule.MinFee,
		&schedule.MinAmount,
		&schedule.MaxAmount,
	); err != nil {
		if db.CheckErrNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("error while fetching value: %w", err)
	}

	if err := schedule.Validate(); err != nil {
		return nil, fmt.Errorf("invalid fee schedule row: %w", err)
	}

	return &schedule, nil
}
