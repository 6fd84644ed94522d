package echoapi

import (
	"github.com/labstack/echo/v4"

	"github.com/trezcool/gracemarks/core"
)

var orderingParam = "ordering"

// Ordering binds `?ordering=name,-id` style query params. A leading "-" means descending.
type Ordering struct {
	Orderings []core.Ordering
}

func (ord *Ordering) Bind(ctx echo.Context) {
	ord.Orderings = core.ParseOrdering(ctx.QueryParam(orderingParam))
}
