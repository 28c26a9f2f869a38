package handler

import (
	"net/http"

	"github.com/vfg2006/tabc-sales-api/internal/api/handler/router"
	"github.com/vfg2006/tabc-sales-api/internal/scheduler"
	"github.com/vfg2006/tabc-sales-api/internal/usecases/locating"
	"github.com/vfg2006/tabc-sales-api/pkg/middleware"
)

func Healthcheck() []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(),
		},
	}
}

func Locations(service locating.Locator) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/locations",
			Method:  http.MethodGet,
			Handler: GetLocations(service),
		},
		{
			Path:    "/v1/locations/:permitNumber",
			Method:  http.MethodGet,
			Handler: GetLocationByPermit(service),
		},
		{
			Path:    "/v1/locations/:permitNumber/by-name",
			Method:  http.MethodGet,
			Handler: SearchLocationsByName(service),
		},
		{
			Path:        "/v1/locations/refresh",
			Method:      http.MethodPost,
			Handler:     RefreshLocations(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:    "/v1/reports/outliers",
			Method:  http.MethodGet,
			Handler: GetOutliers(service),
		},
	}
}

func AdminImport(syncer scheduler.ImportSyncer) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/admin/import",
			Method:      http.MethodPost,
			Handler:     RunImport(syncer),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/admin/import/status",
			Method:      http.MethodGet,
			Handler:     GetImportStatus(syncer),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
	}
}
