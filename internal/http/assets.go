package http

import (
	"net/http"

	echo "github.com/labstack/echo/v4"

	"github.com/mesalista/backend/internal/ledger"
	"github.com/mesalista/backend/internal/service/recon"
)

func ensureDocumentHandler(svc *recon.Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, ok := paramID(c, "id")
		if !ok {
			return respondErr(c, http.StatusBadRequest, "invalid customer id")
		}
		res, err := svc.EnsureDocument(c.Request().Context(), id)
		if err != nil {
			c.Logger().Errorf("document for customer %d failed: %v", id, err)
			return respondFailure(c, err)
		}
		return respond(c, http.StatusOK, res)
	}
}

func ensureTokenHandler(svc *recon.Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, ok := paramID(c, "id")
		if !ok {
			return respondErr(c, http.StatusBadRequest, "invalid customer id")
		}
		res, err := svc.EnsureToken(c.Request().Context(), id)
		if err != nil {
			c.Logger().Errorf("token for customer %d failed: %v", id, err)
			return respondFailure(c, err)
		}
		return respond(c, http.StatusOK, res)
	}
}

func tokenMetadataHandler(minter ledger.Minter) echo.HandlerFunc {
	return func(c echo.Context) error {
		tokenID, ok := paramID(c, "tokenId")
		if !ok {
			return respondErr(c, http.StatusBadRequest, "invalid token id")
		}
		md, err := minter.TokenMetadata(c.Request().Context(), tokenID)
		if err != nil {
			return respondErr(c, http.StatusBadGateway, "token read failed")
		}
		return respond(c, http.StatusOK, md)
	}
}
