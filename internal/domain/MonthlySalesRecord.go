package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// MonthlySalesRecord representa uma linha da tabela fato: um permit em um período mensal.
// A tupla (PermitNumber, ObligationEndDate) é a chave natural usada na deduplicação.
type MonthlySalesRecord struct {
	ID                  int64           `json:"-" db:"id"`
	PermitNumber        string          `json:"permitNumber" db:"permit_number"`
	LocationName        string          `json:"locationName" db:"location_name"`
	LocationAddress     string          `json:"locationAddress" db:"location_address"`
	LocationCity        string          `json:"locationCity" db:"location_city"`
	LocationCounty      string          `json:"locationCounty" db:"location_county"`
	LocationZip         string          `json:"locationZip" db:"location_zip"`
	TaxpayerName        string          `json:"taxpayerName" db:"taxpayer_name"`
	ObligationEndDate   time.Time       `json:"obligationEndDate" db:"obligation_end_date"`
	LiquorReceipts      decimal.Decimal `json:"liquorReceipts" db:"liquor_receipts"`
	WineReceipts        decimal.Decimal `json:"wineReceipts" db:"wine_receipts"`
	BeerReceipts        decimal.Decimal `json:"beerReceipts" db:"beer_receipts"`
	CoverChargeReceipts decimal.Decimal `json:"coverChargeReceipts" db:"cover_charge_receipts"`
	TotalReceipts       decimal.Decimal `json:"totalReceipts" db:"total_receipts"`
	Latitude            float64         `json:"lat" db:"latitude"`
	Longitude           float64         `json:"lng" db:"longitude"`
}

// Key retorna a chave de deduplicação permit|yyyy-mm-dd
func (r MonthlySalesRecord) Key() string {
	return RecordKey(r.PermitNumber, r.ObligationEndDate)
}

// RecordKey monta a chave de deduplicação a partir dos componentes
func RecordKey(permitNumber string, obligationEndDate time.Time) string {
	return permitNumber + "|" + obligationEndDate.Format(time.DateOnly)
}
