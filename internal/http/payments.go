package http

import (
	"net/http"

	echo "github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"

	"github.com/mesalista/backend/internal/ledger"
	"github.com/mesalista/backend/internal/model"
	"github.com/mesalista/backend/internal/repository"
	"github.com/mesalista/backend/internal/service/recon"
)

type paymentReq struct {
	CustomerID int64 `json:"customer_id"`
	Amount     int64 `json:"amount"`
}

func recordPaymentHandler(svc *recon.Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req paymentReq
		if err := c.Bind(&req); err != nil {
			return respondErr(c, http.StatusBadRequest, "bad request")
		}

		res, err := svc.RecordPayment(c.Request().Context(), req.CustomerID, req.Amount)
		if err != nil {
			log.Errorf("record payment for customer %d failed: %v", req.CustomerID, err)
			return respondFailure(c, err)
		}
		return respond(c, http.StatusOK, res)
	}
}

// ledgerHistoryHandler serves the on-chain payment list. Read failures
// degrade to an empty list so the listing UI keeps working.
func ledgerHistoryHandler(gw ledger.Gateway) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, ok := paramID(c, "id")
		if !ok {
			return respondErr(c, http.StatusBadRequest, "invalid customer id")
		}

		list, err := gw.GetHistory(c.Request().Context(), id)
		if err != nil {
			c.Logger().Warnf("ledger history for customer %d unavailable: %v", id, err)
			list = []model.LedgerPayment{}
		}
		return respond(c, http.StatusOK, list)
	}
}

func dbHistoryHandler(payments repository.PaymentsRepository) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, ok := paramID(c, "id")
		if !ok {
			return respondErr(c, http.StatusBadRequest, "invalid customer id")
		}
		rows, err := payments.ListByCustomer(c.Request().Context(), id)
		if err != nil {
			return respondErr(c, http.StatusInternalServerError, "db error")
		}
		return respond(c, http.StatusOK, rows)
	}
}

func validateHistoryHandler(svc *recon.Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, ok := paramID(c, "id")
		if !ok {
			return respondErr(c, http.StatusBadRequest, "invalid customer id")
		}
		report, err := svc.ValidateHistory(c.Request().Context(), id)
		if err != nil {
			return respondFailure(c, err)
		}
		return respond(c, http.StatusOK, report)
	}
}
