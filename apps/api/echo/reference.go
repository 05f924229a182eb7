package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/trezcool/classbook/core/refdata"
	"github.com/trezcool/classbook/core/student"
)

type referenceApi struct {
	ref      *refdata.Store
	students *student.Service
}

func registerReferenceAPI(g *echo.Group, ref *refdata.Store, students *student.Service) {
	api := referenceApi{ref: ref, students: students}

	g.GET("/degrees", api.degrees)
	g.GET("/degrees/:id/students", api.degreeStudents)
	g.GET("/classes", api.classes)
	g.GET("/teachers", api.teachers)
	g.GET("/matters", api.matters)
}

type DegreeStudentsResponse struct {
	Degree   refdata.Degree `json:"degree"`
	Students []student.View `json:"students"`
}

// Handlers

func (api *referenceApi) degrees(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, api.ref.Degrees())
}

func (api *referenceApi) degreeStudents(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return err
	}
	if !api.ref.HasDegree(id) {
		return errHttpNotFound
	}
	return ctx.JSON(http.StatusOK, DegreeStudentsResponse{
		Degree:   refdata.Degree{ID: id, Name: api.ref.DegreeName(id)},
		Students: api.students.Views(api.students.ByDegree(id)),
	})
}

func (api *referenceApi) classes(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, api.ref.Classes())
}

func (api *referenceApi) teachers(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, api.ref.Teachers())
}

func (api *referenceApi) matters(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, api.ref.Matters())
}
