package repository

import (
	"context"
	"fmt"

	"cediflow/common/models"
	"cediflow/internal/db"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4/pgxpool"
	jsoniter "github.com/json-iterator/go"
	"github.com/shopspring/decimal"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type rateTableRepo struct {
	client *pgxpool.Pool
}

func NewRateTablePostgresRepository(client *pgxpool.Pool) IRateTableRepository {
	return &rateTableRepo{
		client: client,
	}
}

// SaveRateTable appends a new immutable version row; the latest row
// per base is the durable truth the service reloads on restart.
func (r *rateTableRepo) SaveRateTable(ctx context.Context, table *models.RateTable) error {
	rates, err := json.Marshal(table.Rates)
	if err != nil {
		return fmt.Errorf("error while encoding rates: %w", err)
	}

	query := `
		INSERT INTO rate_table_versions (id, base_code, rates, fetched_at)
		VALUES ($1, $2, $3, $4);
	`

	if _, err := r.client.Exec(ctx, query, uuid.NewString(), table.Base, rates, table.FetchedAt); err != nil {
		return fmt.Errorf("error while inserting rate table: %w", err)
	}

	return nil
}

func (r *rateTableRepo) GetLatestRateTable(ctx context.Context, base models.CurrencyCode) (*models.RateTable, error) {
	query := `
		SELECT base_code, rates, fetched_at
		FROM rate_table_versions
		WHERE base_code = $1
		ORDER BY fetched_at DESC LIMIT 1;
	`

	table := models.RateTable{}
	var rates []byte
	if err := r.client.QueryRow(ctx, query, base).Scan(
		&table.Base,
		&rates,
		&table.FetchedAt,
	); err != nil {
		if db.CheckErrNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("error while fetching value: %w", err)
	}

	table.Rates = map[models.CurrencyCode]decimal.Decimal{}
	if err := json.Unmarshal(rates, &table.Rates); err != nil {
		return nil, fmt.Errorf("error while decoding rates: %w", err)
	}

	return &table, nil
}
