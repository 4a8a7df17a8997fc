package http

import (
	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/transition"
	"marketplace/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
)

func pathUUID(c echo.Context, name string) (kernel.UUID, error) {
	var raw uuid.UUID
	err := runtime.BindStyledParameterWithOptions("simple", name, c.Param(name), &raw,
		runtime.BindStyledParameterOptions{
			ParamLocation: runtime.ParamLocationPath,
			Explode:       false,
			Required:      true,
		})
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return kernel.FromRaw(raw)
}

func pathEntityType(c echo.Context) (transition.EntityType, error) {
	var raw string
	err := runtime.BindStyledParameterWithOptions("simple", "entityType", c.Param("entityType"), &raw,
		runtime.BindStyledParameterOptions{
			ParamLocation: runtime.ParamLocationPath,
			Explode:       false,
			Required:      true,
		})
	if err != nil {
		return transition.UnknownEntity, errs.NewValueIsInvalidErrorWithCause("entityType", err)
	}
	return transition.EntityTypeFromString(raw)
}

// archiveFilter reads the optional archived query flag. Without it listings
// show active entities.
func archiveFilter(c echo.Context) (queries.ArchiveFilter, error) {
	var archived *bool
	if err := runtime.BindQueryParameter("form", true, false, "archived", c.QueryParams(), &archived); err != nil {
		return queries.ActiveOnly, errs.NewValueIsInvalidErrorWithCause("archived", err)
	}
	if archived == nil {
		return queries.ActiveOnly, nil
	}
	return queries.ArchiveFilterFromFlag(*archived), nil
}
