package domain

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// LocationSummary é o modelo de leitura consumido pela UI. Os valores monetários são
// convertidos para float64 apenas aqui; comparações de agregados devem usar tolerância.
type LocationSummary struct {
	PermitNumber        string          `json:"permitNumber"`
	LocationName        string          `json:"locationName"`
	LocationAddress     string          `json:"locationAddress"`
	LocationCity        string          `json:"locationCity"`
	LocationCounty      string          `json:"locationCounty"`
	LocationZip         string          `json:"locationZip"`
	TaxpayerName        string          `json:"taxpayerName"`
	Lat                 float64         `json:"lat"`
	Lng                 float64         `json:"lng"`
	LiquorReceipts      float64         `json:"liquorReceipts"`
	WineReceipts        float64         `json:"wineReceipts"`
	BeerReceipts        float64         `json:"beerReceipts"`
	CoverChargeReceipts float64         `json:"coverChargeReceipts"`
	TotalSales          float64         `json:"totalSales"`
	RecordCount         int             `json:"recordCount"`
	LatestMonth         string          `json:"latestMonth"`
	MonthlyRecords      []MonthlyRecord `json:"monthlyRecords"`
}

// MonthlyRecord é a projeção de MonthlySalesRecord dentro de um LocationSummary
type MonthlyRecord struct {
	ObligationEndDate   string  `json:"obligationEndDate"`
	LocationName        string  `json:"locationName"`
	LocationAddress     string  `json:"locationAddress"`
	LocationCity        string  `json:"locationCity"`
	TaxpayerName        string  `json:"taxpayerName"`
	LiquorReceipts      float64 `json:"liquorReceipts"`
	WineReceipts        float64 `json:"wineReceipts"`
	BeerReceipts        float64 `json:"beerReceipts"`
	CoverChargeReceipts float64 `json:"coverChargeReceipts"`
	TotalReceipts       float64 `json:"totalReceipts"`
}

// LocationAggregate é a linha produzida pelo GROUP BY permit_number na tabela fato
type LocationAggregate struct {
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

// ToLocationSummary converte o agregado para o modelo de leitura, sem os registros mensais
func (a LocationAggregate) ToLocationSummary() LocationSummary {
	return EstablishmentSummary(a).ToLocationSummary()
}

// NewMonthlyRecord projeta um registro da tabela fato para o modelo de leitura
func NewMonthlyRecord(r MonthlySalesRecord) MonthlyRecord {
	return MonthlyRecord{
		ObligationEndDate:   DateString(r.ObligationEndDate),
		LocationName:        r.LocationName,
		LocationAddress:     r.LocationAddress,
		LocationCity:        r.LocationCity,
		TaxpayerName:        r.TaxpayerName,
		LiquorReceipts:      r.LiquorReceipts.InexactFloat64(),
		WineReceipts:        r.WineReceipts.InexactFloat64(),
		BeerReceipts:        r.BeerReceipts.InexactFloat64(),
		CoverChargeReceipts: r.CoverChargeReceipts.InexactFloat64(),
		TotalReceipts:       r.TotalReceipts.InexactFloat64(),
	}
}

// AttachMonthlyRecords agrupa os registros por permit e anexa a cada resumo, do mais recente
// para o mais antigo. Resumos sem registros ficam com lista vazia (nunca nil).
func AttachMonthlyRecords(summaries []LocationSummary, records []MonthlySalesRecord) {
	byPermit := make(map[string][]MonthlySalesRecord, len(summaries))
	for _, record := range records {
		byPermit[record.PermitNumber] = append(byPermit[record.PermitNumber], record)
	}

	for i := range summaries {
		permitRecords := byPermit[summaries[i].PermitNumber]
		sort.SliceStable(permitRecords, func(a, b int) bool {
			return permitRecords[a].ObligationEndDate.After(permitRecords[b].ObligationEndDate)
		})

		monthly := make([]MonthlyRecord, 0, len(permitRecords))
		for _, record := range permitRecords {
			monthly = append(monthly, NewMonthlyRecord(record))
		}
		summaries[i].MonthlyRecords = monthly
	}
}

// DateString formata datas no formato yyyy-mm-dd, retornando vazio para a data zero
func DateString(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.DateOnly)
}
