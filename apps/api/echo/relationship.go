package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/classbook/core/relationship"
)

type relationshipApi struct {
	svc     *relationship.Service
	metrics *metrics
}

func registerRelationshipAPI(g *echo.Group, svc *relationship.Service, m *metrics) {
	api := relationshipApi{svc: svc, metrics: m}

	rg := g.Group("/relationships")
	rg.GET("", api.query)
	rg.POST("", api.upsert)
}

type UpsertResponse struct {
	Outcome      relationship.Outcome `json:"outcome"`
	Message      string               `json:"message"`
	Relationship relationship.View    `json:"relationship"`
}

// Handlers

func (api *relationshipApi) query(ctx echo.Context) error {
	var sel Selection
	if err := sel.Bind(ctx); err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, api.svc.Views(api.svc.FilterView(sel.Selection)))
}

func (api *relationshipApi) upsert(ctx echo.Context) error {
	var data relationship.Assignment
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to Assignment")
	}

	outcome, rel, err := api.svc.Upsert(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "upserting relationship")
	}
	api.metrics.upserts.WithLabelValues(outcome.String()).Inc()

	code := http.StatusOK
	if outcome == relationship.Created {
		code = http.StatusCreated
	}
	return ctx.JSON(code, UpsertResponse{
		Outcome:      outcome,
		Message:      outcome.Message(),
		Relationship: api.svc.Views([]relationship.Relationship{rel})[0],
	})
}
