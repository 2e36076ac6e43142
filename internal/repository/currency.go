package repository

import (
	"context"
	"fmt"
	"time"

	"cediflow/common/models"
	"cediflow/internal/db"

	"github.com/jackc/pgx/v4/pgxpool"
)

type repo struct {
	client *pgxpool.Pool
}

func NewCurrencyPostgresRepository(client *pgxpool.Pool) ICurrencyRepository {
	return &repo{
		client: client,
	}
}

const currencyColumns = `c.code, c.name, c.symbol, c.decimal_places, c.is_base, c.flag_emoji, c.is_enabled, c.updated_at`

func scanCurrency(row interface{ Scan(dest ...interface{}) error }) (models.Currency, error) {
	currency := models.Currency{}
	if err := row.Scan(
		&currency.Code,
		&currency.Name,
		&currency.Symbol,
		&currency.DecimalPlaces,
		&currency.IsBase,
		&currency.FlagEmoji,
		&currency.IsEnabled,
		&currency.UpdatedAt,
	); err != nil {
		return models.Currency{}, err
	}
	return currency.WithDefaults(), nil
}

func (r *repo) ListEnabledCurrencies(ctx context.Context) ([]models.Currency, error) {
	query := `
		SELECT ` + currencyColumns + `
		FROM currencies c
		WHERE c.is_enabled = true;
	`

	rows, err := r.client.Query(ctx, query)
	if err != nil && !db.CheckErrNoRows(err) {
		return nil, fmt.Errorf("error while quering db: %w", err)
	}
	defer rows.Close()

	res := []models.Currency{}
	for rows.Next() {
		currency, err := scanCurrency(rows)
		if err != nil {
			return nil, fmt.Errorf("error while scanning values: %w", err)
		}

		res = append(res, currency)
	}

	return res, nil
}

func (r *repo) ListCurrenciesByUpdatedAtGt(ctx context.Context, updatedAt time.Time) ([]models.Currency, error) {
	query := `
		SELECT ` + currencyColumns + `
		FROM currencies c
		WHERE c.updated_at > $1;
	`

	rows, err := r.client.Query(ctx, query, updatedAt)
	if err != nil && !db.CheckErrNoRows(err) {
		return nil, fmt.Errorf("error while quering db: %w", err)
	}
	defer rows.Close()

	res := []models.Currency{}
	for rows.Next() {
		currency, err := scanCurrency(rows)
		if err != nil {
			return nil, fmt.Errorf("error while scanning values: %w", err)
		}

		res = append(res, currency)
	}

	return res, nil
}

func (r *repo) GetLastUpdatedCurrency(ctx context.Context) (*models.Currency, error) {
	query := `
		SELECT ` + currencyColumns + `
		FROM currencies c
		ORDER BY c.updated_at DESC LIMIT 1;
	`

	currency, err := scanCurrency(r.client.QueryRow(ctx, query))
	if err != nil {
		if db.CheckErrNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("error while fetching value: %w", err)
	}

	return &currency, nil
}
