package utils

import (
	"fmt"
	"time"

	"github.com/vfg2006/tabc-sales-api/internal/domain"
)

// ParseDate interpreta datas no formato yyyy-mm-dd. String vazia retorna nil.
func ParseDate(dateStr string) (*time.Time, error) {
	if dateStr == "" {
		return nil, nil
	}

	date, err := time.Parse(time.DateOnly, dateStr)
	if err != nil {
		return nil, err
	}

	return &date, nil
}

// ParseDateFilter monta o filtro inclusivo [start, end]. Retorna nil quando nenhum limite é informado.
func ParseDateFilter(start, end string) (*domain.DateFilter, error) {
	startDate, err := ParseDate(start)
	if err != nil {
		return nil, fmt.Errorf("startDate inválida %q: %w", start, err)
	}

	endDate, err := ParseDate(end)
	if err != nil {
		return nil, fmt.Errorf("endDate inválida %q: %w", end, err)
	}

	if startDate != nil && endDate != nil && startDate.After(*endDate) {
		return nil, fmt.Errorf("startDate %s posterior a endDate %s", start, end)
	}

	filter := &domain.DateFilter{StartDate: startDate, EndDate: endDate}
	if filter.IsEmpty() {
		return nil, nil
	}

	return filter, nil
}
