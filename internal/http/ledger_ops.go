package http

import (
	"net/http"
	"strings"

	echo "github.com/labstack/echo/v4"

	"github.com/mesalista/backend/internal/ledger"
	"github.com/mesalista/backend/internal/model"
	"github.com/mesalista/backend/internal/service/recon"
)

type registerReq struct {
	ID      int64  `json:"id"`
	Account string `json:"account"`
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Address string `json:"address"`
	Card    string `json:"card"`
}

func registerHandler(svc *recon.Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req registerReq
		if err := c.Bind(&req); err != nil {
			return respondErr(c, http.StatusBadRequest, "bad request")
		}

		res, err := svc.Register(c.Request().Context(), recon.RegisterParams{
			ID:      req.ID,
			Account: req.Account,
			Profile: model.Profile{
				Name:    req.Name,
				Phone:   req.Phone,
				Email:   req.Email,
				Address: req.Address,
				Card:    req.Card,
			},
		})
		if err != nil {
			c.Logger().Errorf("register customer %d failed: %v", req.ID, err)
			return respondFailure(c, err)
		}
		return respond(c, http.StatusOK, res)
	}
}

type statusReq struct {
	ID int64 `json:"id"`
}

func deactivateHandler(svc *recon.Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req statusReq
		if err := c.Bind(&req); err != nil {
			return respondErr(c, http.StatusBadRequest, "bad request")
		}
		res, err := svc.Deactivate(c.Request().Context(), req.ID)
		if err != nil {
			return respondFailure(c, err)
		}
		return respond(c, http.StatusOK, res)
	}
}

func reactivateHandler(svc *recon.Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req statusReq
		if err := c.Bind(&req); err != nil {
			return respondErr(c, http.StatusBadRequest, "bad request")
		}
		res, err := svc.Reactivate(c.Request().Context(), req.ID)
		if err != nil {
			return respondFailure(c, err)
		}
		return respond(c, http.StatusOK, res)
	}
}

func validateIdentityHandler(svc *recon.Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, ok := paramID(c, "id")
		if !ok {
			return respondErr(c, http.StatusBadRequest, "invalid customer id")
		}
		account := strings.TrimSpace(c.QueryParam("account"))

		report, err := svc.ValidateIdentity(c.Request().Context(), id, account)
		if err != nil {
			return respondFailure(c, err)
		}
		return respond(c, http.StatusOK, report)
	}
}

// ledgerCustomerHandler reads the on-chain mirror directly, the raw view the
// validation compares against.
func ledgerCustomerHandler(gw ledger.Gateway) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, ok := paramID(c, "id")
		if !ok {
			return respondErr(c, http.StatusBadRequest, "invalid customer id")
		}
		mirror, err := gw.GetCustomer(c.Request().Context(), id)
		if err != nil {
			c.Logger().Errorf("ledger read customer %d failed: %v", id, err)
			return respondErr(c, http.StatusBadGateway, "ledger read failed")
		}
		return respond(c, http.StatusOK, mirror)
	}
}
