package utils

import "math"

func RoundWithTwoDecimalPlace(f float64) float64 {
	if f == 0 {
		return 0
	}

	return math.Round(f*100) / 100
}

// Paginate devolve os limites [start, end) da página e o total de páginas.
// page começa em 1; páginas além do fim retornam um intervalo vazio.
func Paginate(total, page, limit int) (start, end, totalPages int) {
	if limit <= 0 {
		return 0, 0, 0
	}

	totalPages = (total + limit - 1) / limit
	start = (page - 1) * limit
	if start > total {
		start = total
	}
	end = min(start+limit, total)

	return start, end, totalPages
}
