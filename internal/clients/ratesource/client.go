package ratesource

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"cediflow/common/config"
	"cediflow/common/models"

	"github.com/go-resty/resty/v2"
	jsoniter "github.com/json-iterator/go"
)

const apiKeyParam = "api_key"

// Client talks to the external exchange-rate provider. Every rate in a
// response is quoted against the requested base currency.
type Client struct {
	cli *resty.Client
}

func NewClient(cfg *config.RateSource) (*Client, error) {
	if cfg.ApiKey == "" {
		return nil, ErrInvalidAPIKey
	}

	cli := resty.New().
		SetTimeout(cfg.RequestTimeout).
		SetBaseURL(cfg.BaseURL).
		SetRetryCount(cfg.RetriesCount).
		SetQueryParam(apiKeyParam, cfg.ApiKey)

	return &Client{
		cli: cli,
	}, nil
}

type RatesResponse struct {
	Base  models.CurrencyCode                 `json:"base"`
	Rates map[models.CurrencyCode]json.Number `json:"rates"`
}

// FetchRates requests the current quotes for all given currency codes
// against base. An empty quotes list yields an empty table without a
// network round trip.
func (c *Client) FetchRates(
	ctx context.Context,
	base models.CurrencyCode,
	quotes []models.CurrencyCode,
) (*RatesResponse, error) {
	if len(quotes) == 0 {
		return &RatesResponse{
			Base:  base,
			Rates: make(map[models.CurrencyCode]json.Number),
		}, nil
	}

	toParam := strings.Builder{}
	for i, code := range quotes {
		toParam.WriteString(string(code))
		if i < len(quotes)-1 {
			toParam.WriteRune(',')
		}
	}

	var resp *resty.Response
	var err error

	if err := resty.Backoff(
		func() (*resty.Response, error) {
			resp, err = c.cli.R().SetQueryParams(
				map[string]string{
					"base": string(base),
					"to":   toParam.String(),
				},
			).
				SetContext(ctx).
				Get("/rates")

			return resp, err
		},
	); err != nil {
		return nil, fmt.Errorf("could not make a request: %w", err)
	}

	if resp.StatusCode() == http.StatusTooManyRequests {
		return nil, ErrRateLimit
	}

	if resp.StatusCode() == http.StatusUnauthorized {
		return nil, ErrInvalidAPIKey
	}

	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("error response /rates: %v", resp.String())
	}

	var payload RatesResponse

	if err := jsoniter.ConfigCompatibleWithStandardLibrary.Unmarshal(resp.Body(), &payload); err != nil {
		return nil, fmt.Errorf("error while decoding rates: %w", err)
	}

	if payload.Base == "" {
		payload.Base = base
	}

	return &payload, nil
}
