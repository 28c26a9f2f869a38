package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EstablishmentSummary é a linha desnormalizada por permit mantida pelo importador.
// Sempre derivável agregando as linhas de MonthlySalesRecord do mesmo permit.
type EstablishmentSummary struct {
	PermitNumber     string          `db:"permit_number"`
	LocationName     string          `db:"location_name"`
	LocationAddress  string          `db:"location_address"`
	LocationCity     string          `db:"location_city"`
	LocationCounty   string          `db:"location_county"`
	LocationZip      string          `db:"location_zip"`
	TaxpayerName     string          `db:"taxpayer_name"`
	Latitude         float64         `db:"latitude"`
	Longitude        float64         `db:"longitude"`
	TotalLiquor      decimal.Decimal `db:"total_liquor"`
	TotalWine        decimal.Decimal `db:"total_wine"`
	TotalBeer        decimal.Decimal `db:"total_beer"`
	TotalCoverCharge decimal.Decimal `db:"total_cover_charge"`
	TotalSales       decimal.Decimal `db:"total_sales"`
	RecordCount      int             `db:"record_count"`
	LatestMonth      time.Time       `db:"latest_month"`
}

// ToLocationSummary converte o resumo para o modelo de leitura, sem os registros mensais
func (s EstablishmentSummary) ToLocationSummary() LocationSummary {
	return LocationSummary{
		PermitNumber:        s.PermitNumber,
		LocationName:        s.LocationName,
		LocationAddress:     s.LocationAddress,
		LocationCity:        s.LocationCity,
		LocationCounty:      s.LocationCounty,
		LocationZip:         s.LocationZip,
		TaxpayerName:        s.TaxpayerName,
		Lat:                 s.Latitude,
		Lng:                 s.Longitude,
		LiquorReceipts:      s.TotalLiquor.InexactFloat64(),
		WineReceipts:        s.TotalWine.InexactFloat64(),
		BeerReceipts:        s.TotalBeer.InexactFloat64(),
		CoverChargeReceipts: s.TotalCoverCharge.InexactFloat64(),
		TotalSales:          s.TotalSales.InexactFloat64(),
		RecordCount:         s.RecordCount,
		LatestMonth:         DateString(s.LatestMonth),
		MonthlyRecords:      []MonthlyRecord{},
	}
}
