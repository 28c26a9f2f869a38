package opendataclient

import (
	"context"
	"net/http"

	opendatadomain "github.com/vfg2006/tabc-sales-api/infrastructure/integrator/opendata/domain"
	"github.com/vfg2006/tabc-sales-api/internal/config"
)

type Client interface {
	GetSalesPage(ctx context.Context, params PageParams) ([]opendatadomain.RawRecord, error)
}

type OpenDataClient struct {
	httpClient *http.Client
	config     config.OpenData
}

// NewClient cria o cliente da API de dados abertos do Texas
func NewClient(cfg *config.Config) Client {
	return &OpenDataClient{
		httpClient: &http.Client{
			Timeout: cfg.OpenData.Timeout,
		},
		config: cfg.OpenData,
	}
}
