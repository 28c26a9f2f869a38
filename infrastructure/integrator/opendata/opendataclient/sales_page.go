package opendataclient

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	opendatadomain "github.com/vfg2006/tabc-sales-api/infrastructure/integrator/opendata/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	dateField      = "obligation_end_date_yyyymmdd"
	idField        = ":id"
	soqlDateLayout = "2006-01-02T15:04:05.000"

	maxErrorBodyBytes = 512
)

// PageParams delimita uma página da consulta. StartDate é inclusivo e EndDate exclusivo.
type PageParams struct {
	Limit     int
	Offset    int
	StartDate *time.Time
	EndDate   *time.Time
}

// GetSalesPage busca uma página de registros ordenada da data mais recente para a mais antiga,
// com :id como desempate para que o offset seja estável entre páginas
func (c *OpenDataClient) GetSalesPage(ctx context.Context, params PageParams) ([]opendatadomain.RawRecord, error) {
	endpoint, err := url.Parse(c.config.URL)
	if err != nil {
		return nil, fmt.Errorf("erro ao analisar a URL base: %w", err)
	}

	query := endpoint.Query()
	query.Set("$limit", strconv.Itoa(params.Limit))
	query.Set("$offset", strconv.Itoa(params.Offset))
	query.Set("$order", dateField+" DESC, "+idField)
	if where := buildWhere(params.StartDate, params.EndDate); where != "" {
		query.Set("$where", where)
	}
	endpoint.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("erro ao criar a requisição: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if c.config.AppToken != "" {
		req.Header.Set("X-App-Token", c.config.AppToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a requisição: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		return nil, fmt.Errorf("%w: %s: %s", ErrUnexpectedStatus, resp.Status, strings.TrimSpace(string(body)))
	}

	var records []opendatadomain.RawRecord
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		return nil, fmt.Errorf("erro ao decodificar a resposta: %w", err)
	}

	return records, nil
}

func buildWhere(start, end *time.Time) string {
	clauses := make([]string, 0, 2)
	if start != nil {
		clauses = append(clauses, fmt.Sprintf("%s >= '%s'", dateField, start.Format(soqlDateLayout)))
	}
	if end != nil {
		clauses = append(clauses, fmt.Sprintf("%s < '%s'", dateField, end.Format(soqlDateLayout)))
	}
	return strings.Join(clauses, " AND ")
}
