package echoapi

import (
	"bytes"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/classbook/core/student"
)

const (
	xlsxMIME     = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	xlsxFilename = "students.xlsx"
)

type studentApi struct {
	svc           *student.Service
	generateCount int
	metrics       *metrics
}

func registerStudentAPI(g *echo.Group, svc *student.Service, generateCount int, m *metrics) {
	api := studentApi{svc: svc, generateCount: generateCount, metrics: m}

	sg := g.Group("/students")
	sg.GET("", api.query)
	sg.GET("/stats", api.stats)
	sg.GET("/export", api.export)
	sg.POST("/generate", api.generate)
	sg.PUT("/:id", api.update)
}

type GenerateRequest struct {
	Count *int `json:"count"`
}

type GenerateResponse struct {
	Count    int            `json:"count"`
	Students []student.View `json:"students"`
}

// Handlers

func (api *studentApi) query(ctx echo.Context) error {
	var sel Selection
	if err := sel.Bind(ctx); err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, api.svc.Views(api.svc.Filter(sel.Selection)))
}

func (api *studentApi) stats(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, api.svc.CountByDegree())
}

func (api *studentApi) export(ctx echo.Context) error {
	var sel Selection
	if err := sel.Bind(ctx); err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := student.WriteXLSX(&buf, api.svc.Views(api.svc.Filter(sel.Selection))); err != nil {
		return errors.Wrap(err, "exporting students")
	}
	ctx.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+xlsxFilename+`"`)
	return ctx.Blob(http.StatusOK, xlsxMIME, buf.Bytes())
}

func (api *studentApi) generate(ctx echo.Context) error {
	var data GenerateRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to GenerateRequest")
	}
	count := api.generateCount
	if data.Count != nil {
		count = *data.Count
	}

	generated, err := api.svc.BulkGenerate(ctx.Request().Context(), count)
	if err != nil {
		return errors.Wrap(err, "generating students")
	}
	api.metrics.generated.Add(float64(len(generated)))

	return ctx.JSON(http.StatusCreated, GenerateResponse{Count: len(generated), Students: api.svc.Views(generated)})
}

func (api *studentApi) update(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return err
	}
	var data student.UpdateStudent
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateStudent")
	}

	std, found, err := api.svc.Update(ctx.Request().Context(), id, data)
	if err != nil {
		return errors.Wrap(err, "updating student")
	}
	if !found {
		return errHttpNotFound
	}
	api.metrics.updates.Inc()

	return ctx.JSON(http.StatusOK, api.svc.Views([]student.Student{std})[0])
}
