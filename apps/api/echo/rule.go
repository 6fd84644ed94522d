package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/gracemarks/core/rule"
)

type ruleApi struct {
	svc rule.Service
}

func registerRuleAPI(g *echo.Group, svc rule.Service) {
	api := ruleApi{svc: svc}

	rg := g.Group("/rules")
	rg.GET("", api.query)
	rg.POST("", api.create)
	rg.GET("/:id", api.retrieve)
}

// Handlers

func (api *ruleApi) create(ctx echo.Context) error {
	data := rule.DefaultNewRule()
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewRule")
	}

	r, err := api.svc.Create(data)
	if err != nil {
		return errors.Wrap(err, "creating rule")
	}
	return ctx.JSON(http.StatusCreated, r)
}

func (api *ruleApi) query(ctx echo.Context) error {
	var filter rule.QueryFilter
	if err := ctx.Bind(&filter); err != nil {
		return errors.Wrap(err, "binding to rule.QueryFilter")
	}
	var ord Ordering
	ord.Bind(ctx)

	rules, err := api.svc.Query(&filter, ord.Orderings)
	if err != nil {
		return errors.Wrap(err, "querying rules")
	}
	return ctx.JSON(http.StatusOK, rules)
}

func (api *ruleApi) retrieve(ctx echo.Context) error {
	r, err := api.svc.GetByID(ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "finding rule by ID")
	}
	return ctx.JSON(http.StatusOK, r)
}
