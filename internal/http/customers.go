package http

import (
	"net/http"
	"strconv"
	"strings"

	echo "github.com/labstack/echo/v4"

	"github.com/mesalista/backend/internal/model"
	"github.com/mesalista/backend/internal/repository"
)

func paramID(c echo.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	return id, err == nil && id > 0
}

func listCustomersHandler(customers repository.CustomersRepository) echo.HandlerFunc {
	return func(c echo.Context) error {
		rows, err := customers.List(c.Request().Context())
		if err != nil {
			c.Logger().Errorf("list customers failed: %v", err)
			return respondErr(c, http.StatusInternalServerError, "db error")
		}
		return respond(c, http.StatusOK, rows)
	}
}

func getCustomerHandler(customers repository.CustomersRepository) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, ok := paramID(c, "id")
		if !ok {
			return respondErr(c, http.StatusBadRequest, "invalid customer id")
		}
		row, err := customers.GetByID(c.Request().Context(), id)
		if err != nil {
			return respondErr(c, http.StatusInternalServerError, "db error")
		}
		if row == nil {
			return respondErr(c, http.StatusNotFound, "customer not found")
		}
		return respond(c, http.StatusOK, row)
	}
}

func createCustomerHandler(customers repository.CustomersRepository) echo.HandlerFunc {
	return func(c echo.Context) error {
		var p model.Profile
		if err := c.Bind(&p); err != nil {
			return respondErr(c, http.StatusBadRequest, "bad request")
		}
		p.Name = strings.TrimSpace(p.Name)
		if p.Name == "" {
			return respondErr(c, http.StatusBadRequest, "name is required")
		}

		id, err := customers.Insert(c.Request().Context(), p)
		if err != nil {
			c.Logger().Errorf("create customer failed: %v", err)
			return respondErr(c, http.StatusInternalServerError, "db error")
		}
		return respond(c, http.StatusCreated, map[string]any{"id": id})
	}
}

func updateCustomerHandler(customers repository.CustomersRepository) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, ok := paramID(c, "id")
		if !ok {
			return respondErr(c, http.StatusBadRequest, "invalid customer id")
		}
		var p model.Profile
		if err := c.Bind(&p); err != nil {
			return respondErr(c, http.StatusBadRequest, "bad request")
		}
		if err := customers.Update(c.Request().Context(), id, p); err != nil {
			return respondErr(c, http.StatusInternalServerError, "db error")
		}
		return respond(c, http.StatusOK, map[string]any{"id": id})
	}
}
