package domain

import "time"

// DateFilter delimita o período [StartDate, EndDate] (ambos inclusivos) das consultas de agregação.
// Limites nil significam período aberto.
type DateFilter struct {
	StartDate *time.Time
	EndDate   *time.Time
}

// IsEmpty indica se o filtro não restringe nenhuma data
func (f *DateFilter) IsEmpty() bool {
	return f == nil || (f.StartDate == nil && f.EndDate == nil)
}

// Contains indica se a data está dentro do período do filtro
func (f *DateFilter) Contains(date time.Time) bool {
	if f == nil {
		return true
	}
	if f.StartDate != nil && date.Before(*f.StartDate) {
		return false
	}
	if f.EndDate != nil && date.After(*f.EndDate) {
		return false
	}
	return true
}

// Pagination descreve a página retornada pela listagem de locais
type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}
