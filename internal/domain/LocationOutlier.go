package domain

// LocationOutlier é um local cujo total de vendas se afasta da média em ZScore desvios padrão
type LocationOutlier struct {
	LocationSummary
	ZScore float64 `json:"zScore"`
}
