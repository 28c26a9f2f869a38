package opendatadomain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/vfg2006/tabc-sales-api/internal/domain"
)

// RawRecord é uma linha do dataset Mixed Beverage Gross Receipts. Todos os campos são opcionais:
// o dataset tem linhas incompletas e a validação decide o que é aproveitável.
type RawRecord struct {
	TaxpayerName        *string `json:"taxpayer_name,omitempty"`
	LocationName        *string `json:"location_name,omitempty"`
	LocationAddress     *string `json:"location_address,omitempty"`
	LocationCity        *string `json:"location_city,omitempty"`
	LocationCounty      *string `json:"location_county,omitempty"`
	LocationZip         *string `json:"location_zip,omitempty"`
	PermitNumber        *string `json:"tabc_permit_number,omitempty"`
	ObligationEndDate   *string `json:"obligation_end_date_yyyymmdd,omitempty"`
	LiquorReceipts      *string `json:"liquor_receipts,omitempty"`
	WineReceipts        *string `json:"wine_receipts,omitempty"`
	BeerReceipts        *string `json:"beer_receipts,omitempty"`
	CoverChargeReceipts *string `json:"cover_charge_receipts,omitempty"`
	TotalReceipts       *string `json:"total_receipts,omitempty"`
}

// Formatos aceitos para obligation_end_date_yyyymmdd
var dateLayouts = []string{
	"2006-01-02T15:04:05.000",
	time.RFC3339,
	"2006-01-02T15:04:05",
	time.DateOnly,
	"20060102",
}

// Validate converte a linha bruta em um registro mensal. Retorna false quando falta o permit,
// não há nome de local (nem do contribuinte), a data é inválida ou o total não é positivo.
// Categorias que não são números viram zero.
func (r RawRecord) Validate() (domain.MonthlySalesRecord, bool) {
	permitNumber := value(r.PermitNumber)
	if permitNumber == "" {
		return domain.MonthlySalesRecord{}, false
	}

	locationName := value(r.LocationName)
	if locationName == "" {
		locationName = value(r.TaxpayerName)
	}
	if locationName == "" {
		return domain.MonthlySalesRecord{}, false
	}

	obligationEndDate, ok := parseDate(value(r.ObligationEndDate))
	if !ok {
		return domain.MonthlySalesRecord{}, false
	}

	total, err := decimal.NewFromString(value(r.TotalReceipts))
	if err != nil || !total.IsPositive() {
		return domain.MonthlySalesRecord{}, false
	}

	return domain.MonthlySalesRecord{
		PermitNumber:        permitNumber,
		LocationName:        locationName,
		LocationAddress:     value(r.LocationAddress),
		LocationCity:        value(r.LocationCity),
		LocationCounty:      value(r.LocationCounty),
		LocationZip:         value(r.LocationZip),
		TaxpayerName:        value(r.TaxpayerName),
		ObligationEndDate:   obligationEndDate,
		LiquorReceipts:      receipts(r.LiquorReceipts),
		WineReceipts:        receipts(r.WineReceipts),
		BeerReceipts:        receipts(r.BeerReceipts),
		CoverChargeReceipts: receipts(r.CoverChargeReceipts),
		TotalReceipts:       total,
	}, true
}

func value(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}

func receipts(s *string) decimal.Decimal {
	d, err := decimal.NewFromString(value(s))
	if err != nil {
		return decimal.Zero
	}
	return d
}

// parseDate normaliza a data para meia-noite UTC
func parseDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), true
		}
	}

	return time.Time{}, false
}
