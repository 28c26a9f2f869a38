package domain

import "github.com/shopspring/decimal"

// LocationSeries é a série temporal de um permit montada pelo fetcher a partir da API de dados abertos
type LocationSeries struct {
	PermitNumber string
	Coordinates  Coordinates
	TotalSales   decimal.Decimal
	Records      []MonthlySalesRecord // Ordenados da data mais recente para a mais antiga
}

// Coordinates é a posição aproximada de um estabelecimento
type Coordinates struct {
	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"lng"`
}
