package echoapi

import (
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/trezcool/classbook/core"
)

var (
	degreeParam = "degree"
	classParam  = "class"
)

// Selection reads the optional `degree` and `class` query params.
// A missing or empty param leaves its side unconstrained.
type Selection struct {
	core.Selection
}

func (sel *Selection) Bind(ctx echo.Context) error {
	for _, p := range []struct {
		name string
		dst  **int
	}{
		{degreeParam, &sel.DegreeID},
		{classParam, &sel.ClassID},
	} {
		val := strings.TrimSpace(ctx.QueryParam(p.name))
		if val == "" {
			continue
		}
		n, err := strconv.Atoi(val)
		if err != nil {
			return core.NewValidationError(nil, core.FieldError{Field: p.name, Error: "must be an integer"})
		}
		*p.dst = &n
	}
	return nil
}

// pathID parses the `id` path param; anything but an integer matches no resource.
func pathID(ctx echo.Context) (int, error) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return 0, errHttpNotFound
	}
	return id, nil
}
