package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/julienschmidt/httprouter"
	"github.com/vfg2006/tabc-sales-api/internal/domain"
	"github.com/vfg2006/tabc-sales-api/internal/usecases/locating"
	"github.com/vfg2006/tabc-sales-api/pkg/apiErrors"
	"github.com/vfg2006/tabc-sales-api/pkg/log"
	"github.com/vfg2006/tabc-sales-api/pkg/utils"
)

const (
	DefaultPage  = 1
	DefaultLimit = 100
	MaxLimit     = 1000

	searchSegment = "search"
)

type locationsResponse struct {
	Locations  []domain.LocationSummary `json:"locations"`
	Pagination domain.Pagination        `json:"pagination"`
}

type searchResponse struct {
	Locations []domain.LocationSummary `json:"locations"`
	Total     int                      `json:"total"`
}

type outliersResponse struct {
	Locations []domain.LocationOutlier `json:"locations"`
	Total     int                      `json:"total"`
	Threshold float64                  `json:"threshold"`
}

// GetLocations lista os locais agregados, ordenados pelo total de vendas, com paginação
func GetLocations(service locating.Locator) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())
		query := r.URL.Query()

		filter, err := utils.ParseDateFilter(query.Get("startDate"), query.Get("endDate"))
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, err.Error(), nil)
			return
		}

		page, err := positiveIntParam(query.Get("page"), DefaultPage)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "page deve ser um inteiro positivo", nil)
			return
		}

		limit, err := positiveIntParam(query.Get("limit"), DefaultLimit)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "limit deve ser um inteiro positivo", nil)
			return
		}
		limit = min(limit, MaxLimit)

		summaries, err := service.GetAll(r.Context(), filter)
		if err != nil {
			logger.WithError(err).Error("locations: erro ao agregar locais")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao buscar locais", nil)
			return
		}

		start, end, totalPages := utils.Paginate(len(summaries), page, limit)

		logger.WithFields(log.Fields{
			"page":  page,
			"limit": limit,
			"total": len(summaries),
		}).Debug("locations: página montada")

		writeJSON(w, r, http.StatusOK, locationsResponse{
			Locations: summaries[start:end],
			Pagination: domain.Pagination{
				Page:       page,
				Limit:      limit,
				Total:      len(summaries),
				TotalPages: totalPages,
			},
		})
	})
}

// GetLocationByPermit retorna o histórico completo de um permit
func GetLocationByPermit(service locating.Locator) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())
		permitNumber := strings.TrimSpace(httprouter.ParamsFromContext(r.Context()).ByName("permitNumber"))

		summary, err := service.GetByPermit(r.Context(), permitNumber)
		if err != nil {
			logger.WithError(err).WithField("permit_number", permitNumber).Error("locations: erro ao buscar permit")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao buscar local", nil)
			return
		}

		if summary == nil {
			apiErrors.WriteError(w, apiErrors.ErrLocationNotFound, "Local não encontrado", nil)
			return
		}

		writeJSON(w, r, http.StatusOK, summary)
	})
}

// SearchLocationsByName atende /v1/locations/search/by-name. O segmento "search" ocupa a
// posição de :permitNumber na árvore do httprouter.
func SearchLocationsByName(service locating.Locator) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if httprouter.ParamsFromContext(r.Context()).ByName("permitNumber") != searchSegment {
			http.NotFound(w, r)
			return
		}

		logger := log.ForContext(r.Context())
		name := r.URL.Query().Get("name")

		summaries, err := service.SearchByName(r.Context(), name)
		if err != nil {
			if errors.Is(err, locating.ErrNameRequired) {
				apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Parâmetro name é obrigatório", nil)
				return
			}
			logger.WithError(err).WithField("name", name).Error("locations: erro na busca por nome")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao buscar locais", nil)
			return
		}

		writeJSON(w, r, http.StatusOK, searchResponse{
			Locations: summaries,
			Total:     len(summaries),
		})
	})
}

// GetOutliers lista os locais com total de vendas fora da curva no período
func GetOutliers(service locating.Locator) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())
		query := r.URL.Query()

		filter, err := utils.ParseDateFilter(query.Get("startDate"), query.Get("endDate"))
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, err.Error(), nil)
			return
		}

		threshold := locating.DefaultOutlierThreshold
		if raw := query.Get("threshold"); raw != "" {
			threshold, err = strconv.ParseFloat(raw, 64)
			if err != nil || threshold <= 0 {
				apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "threshold deve ser um número positivo", nil)
				return
			}
		}

		outliers, err := service.GetOutliers(r.Context(), filter, threshold)
		if err != nil {
			logger.WithError(err).Error("outliers: erro ao calcular outliers")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao calcular outliers", nil)
			return
		}

		writeJSON(w, r, http.StatusOK, outliersResponse{
			Locations: outliers,
			Total:     len(outliers),
			Threshold: threshold,
		})
	})
}

// RefreshLocations descarta o cache de consultas agregadas
func RefreshLocations(service locating.Locator) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		service.Refresh()

		log.ForContext(r.Context()).Info("locations: cache limpo via API")

		writeJSON(w, r, http.StatusOK, operationResponse{
			Success: true,
			Message: "cache cleared",
		})
	})
}

func positiveIntParam(raw string, fallback int) (int, error) {
	if raw == "" {
		return fallback, nil
	}

	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, err
	}
	if value < 1 {
		return 0, errors.New("valor deve ser maior que zero")
	}

	return value, nil
}
