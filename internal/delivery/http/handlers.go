package http

import (
	"errors"
	"net/http"
	"time"

	"cediflow/common/models"
	"cediflow/internal/service"

	"github.com/gofiber/fiber/v2"
	jsoniter "github.com/json-iterator/go"
	"github.com/shopspring/decimal"
)

type ErrorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
}

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Every error kind maps to its own status and message: the user action
// differs per kind (retry, pick another currency, contact support, fix
// the input), so a generic failure response is never returned.
func respondError(c *fiber.Ctx, err error) error {
	var validationErr *models.ValidationError
	if errors.As(err, &validationErr) {
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Error: validationErr.Message,
			Kind:  string(validationErr.Kind),
		})
	}

	var currencyNotSupported *models.ErrUnknownCurrency
	if errors.As(err, &currencyNotSupported) {
		return c.Status(http.StatusUnprocessableEntity).JSON(ErrorResponse{
			Error: err.Error(),
		})
	}

	var zeroRate *models.ErrZeroRate
	if errors.As(err, &zeroRate) {
		return c.Status(http.StatusUnprocessableEntity).JSON(ErrorResponse{
			Error: err.Error(),
		})
	}

	var unknownChannel *service.ErrUnknownChannel
	if errors.As(err, &unknownChannel) {
		return c.Status(http.StatusUnprocessableEntity).JSON(ErrorResponse{
			Error: err.Error(),
		})
	}

	if errors.Is(err, service.ErrNoRates) {
		return c.Status(http.StatusServiceUnavailable).JSON(ErrorResponse{
			Error: err.Error(),
		})
	}

	if errors.Is(err, service.ErrRateFetch) {
		return c.Status(http.StatusBadGateway).JSON(ErrorResponse{
			Error: err.Error(),
		})
	}

	return c.SendStatus(http.StatusInternalServerError)
}

// GetRates
// @Summary      Returns the currently cached exchange-rate table
// @Tags         rates
// @Produce      json
// @Success      200  {object}  models.RateTable
// @Failure      503  {object}  ErrorResponse  "rates not loaded yet"
// @Router       /rates [get]
func (s *Server) GetRates(c *fiber.Ctx) error {
	table := s.store.Snapshot()
	if table == nil {
		return respondError(c, service.ErrNoRates)
	}
	return c.Status(http.StatusOK).JSON(table)
}

type SetRatesRequest struct {
	Base  models.CurrencyCode                     `json:"base"`
	Rates map[models.CurrencyCode]decimal.Decimal `json:"rates"`
}

// SetRates
// @Summary      Replaces the whole rate table (admin override)
// @Description  Writes through to durable storage before the cache is swapped
// @Tags         rates
// @Accept       json
// @Produce      json
// @Param        table  body      SetRatesRequest  true  "full rate table"
// @Success      200    {object}  models.RateTable
// @Failure      400    {object}  ErrorResponse  "invalid table"
// @Failure      500
// @Router       /rates [post]
func (s *Server) SetRates(c *fiber.Ctx) error {
	var req SetRatesRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error: err.Error(),
		})
	}

	table := &models.RateTable{
		Base:      req.Base,
		Rates:     req.Rates,
		FetchedAt: time.Now().UTC(),
	}

	if err := table.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error: err.Error(),
		})
	}

	if err := s.store.SetRates(c.Context(), table); err != nil {
		if errors.Is(err, service.ErrBaseMismatch) {
			return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
				Error: err.Error(),
			})
		}
		return respondError(c, err)
	}

	return c.Status(http.StatusOK).JSON(table)
}

// RefreshRates
// @Summary      Triggers a manual refresh from the rate source
// @Tags         rates
// @Produce      json
// @Success      200  {object}  models.RateTable
// @Failure      502  {object}  ErrorResponse  "fetch failed, stale table kept"
// @Router       /rates/refresh [post]
func (s *Server) RefreshRates(c *fiber.Ctx) error {
	table, err := s.store.Refresh(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(http.StatusOK).JSON(table)
}

// Convert
// @Summary      Previews a conversion between the base currency and another currency
// @Description  With inverse=true the amount is taken in the foreign currency and converted back to base
// @Tags         rates
// @Produce      json
// @Param        amount   query     number   true   "amount to convert"       example(1200)
// @Param        to       query     string   true   "target currency code"    example(USD)
// @Param        inverse  query     boolean  false  "convert foreign to base" default(false)
// @Success      200      {object}  models.ConversionPreview
// @Failure      400      {object}  ErrorResponse  "invalid parameters"
// @Failure      422      {object}  ErrorResponse  "currency or rate not usable"
// @Failure      500
// @Router       /convert [get]
func (s *Server) Convert(c *fiber.Ctx) error {
	amount, err := decimal.NewFromString(c.Query("amount"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error: err.Error(),
		})
	}
	to := c.Query("to")

	var preview *models.ConversionPreview
	if c.QueryBool("inverse") {
		preview, err = s.converter.PreviewInverse(amount, to)
	} else {
		preview, err = s.converter.Preview(amount, to)
	}
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(http.StatusOK).JSON(preview)
}

// FeeQuote
// @Summary      Quotes the fee and total deduction for a withdrawal
// @Tags         fees
// @Produce      json
// @Param        amount   query     number  true  "withdrawal amount"  example(50)
// @Param        channel  query     string  true  "withdrawal channel" example(mobile_money)
// @Success      200      {object}  models.FeeQuote
// @Failure      400      {object}  ErrorResponse  "invalid parameters"
// @Failure      422      {object}  ErrorResponse  "unknown channel"
// @Failure      500
// @Router       /fees/quote [get]
func (s *Server) FeeQuote(c *fiber.Ctx) error {
	amount, err := decimal.NewFromString(c.Query("amount"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error: err.Error(),
		})
	}

	quote, err := s.fees.Quote(c.Context(), amount, models.Channel(c.Query("channel")))
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(http.StatusOK).JSON(quote)
}

type ValidateWithdrawalRequest struct {
	Amount           decimal.Decimal `json:"amount"`
	Channel          models.Channel  `json:"channel"`
	AvailableBalance decimal.Decimal `json:"available_balance"`
}

type ValidateWithdrawalResponse struct {
	Valid bool `json:"valid"`
}

// ValidateWithdrawal
// @Summary      Validates a withdrawal amount against the channel schedule and balance
// @Tags         fees
// @Accept       json
// @Produce      json
// @Param        request  body      ValidateWithdrawalRequest  true  "withdrawal to validate"
// @Success      200      {object}  ValidateWithdrawalResponse
// @Failure      400      {object}  ErrorResponse  "validation failed, kind set"
// @Failure      422      {object}  ErrorResponse  "unknown channel"
// @Failure      500
// @Router       /withdrawals/validate [post]
func (s *Server) ValidateWithdrawal(c *fiber.Ctx) error {
	var req ValidateWithdrawalRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error: err.Error(),
		})
	}

	if err := s.fees.ValidateWithdrawal(c.Context(), req.Amount, req.Channel, req.AvailableBalance); err != nil {
		return respondError(c, err)
	}

	return c.Status(http.StatusOK).JSON(ValidateWithdrawalResponse{Valid: true})
}
