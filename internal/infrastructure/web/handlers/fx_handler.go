package handlers

import (
	"net/http"

	"fx-rate-service/internal/application/dto"
	"fx-rate-service/internal/domain/interfaces"
	"fx-rate-service/internal/infrastructure/logging"
)

// FxHandler handles the /v1/fx endpoints
type FxHandler struct {
	fxService interfaces.FxService
	mapper    *dto.FxMapper
}

// NewFxHandler creates a new instance of the FX handler
func NewFxHandler(fxService interfaces.FxService) *FxHandler {
	return &FxHandler{
		fxService: fxService,
		mapper:    dto.NewFxMapper(),
	}
}

// GetExchangeRate godoc
// @Summary Get exchange rate
// @Description Returns the rate between two currencies, walking cache, primary provider, fallback provider and the static default table.
// @Tags fx
// @Accept json
// @Produce json
// @Param request body dto.GetExchangeRateRequest true "Currency pair"
// @Success 200 {object} dto.RateResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid currency code"
// @Failure 503 {object} dto.ErrorResponse "No rate available from any source"
// @Failure 500 {object} dto.ErrorResponse
// @Router /v1/fx/rate [post]
func (h *FxHandler) GetExchangeRate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var request dto.GetExchangeRateRequest
	if err := decodeJSON(w, r, &request); err != nil {
		writeErrorResponse(ctx, w, http.StatusBadRequest, codeInvalidBody, err.Error())
		return
	}
	if err := request.Validate(); err != nil {
		writeErrorResponse(ctx, w, http.StatusBadRequest, codeInvalidParameter, err.Error())
		return
	}

	result, err := h.fxService.GetExchangeRate(ctx, request.FromCurrency, request.ToCurrency)
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	logging.Debug(ctx, "Rate served", logging.Fields{
		logging.FieldPair:     result.From + "/" + result.To,
		logging.FieldRate:     result.Rate,
		logging.FieldProvider: result.Provider,
	})
	writeJSONResponse(ctx, w, http.StatusOK, h.mapper.ToRateResponse(result))
}

// Convert godoc
// @Summary Convert an amount
// @Description Converts amount using the current rate, rounded to 2 decimals.
// @Tags fx
// @Accept json
// @Produce json
// @Param request body dto.ConvertRequest true "Conversion request"
// @Success 200 {object} dto.ConvertResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid currency or amount"
// @Failure 503 {object} dto.ErrorResponse "No rate available from any source"
// @Failure 500 {object} dto.ErrorResponse
// @Router /v1/fx/convert [post]
func (h *FxHandler) Convert(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var request dto.ConvertRequest
	if err := decodeJSON(w, r, &request); err != nil {
		writeErrorResponse(ctx, w, http.StatusBadRequest, codeInvalidBody, err.Error())
		return
	}
	if err := request.Validate(); err != nil {
		writeErrorResponse(ctx, w, http.StatusBadRequest, codeInvalidParameter, err.Error())
		return
	}

	result, err := h.fxService.Convert(ctx, request.FromCurrency, request.ToCurrency, *request.Amount)
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	writeJSONResponse(ctx, w, http.StatusOK, h.mapper.ToConvertResponse(result))
}

// GetRates godoc
// @Summary Get rates for a base currency
// @Description Returns every rate from base, or only target_currencies when the list is not empty.
// @Tags fx
// @Accept json
// @Produce json
// @Param request body dto.GetRatesRequest true "Base and targets"
// @Success 200 {object} dto.RatesResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid currency code"
// @Failure 503 {object} dto.ErrorResponse "No rate available from any source"
// @Failure 500 {object} dto.ErrorResponse
// @Router /v1/fx/rates [post]
func (h *FxHandler) GetRates(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var request dto.GetRatesRequest
	if err := decodeJSON(w, r, &request); err != nil {
		writeErrorResponse(ctx, w, http.StatusBadRequest, codeInvalidBody, err.Error())
		return
	}
	if err := request.Validate(); err != nil {
		writeErrorResponse(ctx, w, http.StatusBadRequest, codeInvalidParameter, err.Error())
		return
	}

	result, err := h.fxService.GetRates(ctx, request.BaseCurrency, request.TargetCurrencies)
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	writeJSONResponse(ctx, w, http.StatusOK, h.mapper.ToRatesResponse(result))
}
