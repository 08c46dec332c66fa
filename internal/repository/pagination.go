package repository

import (
	"fmt"
	"strings"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// ListParams - параметры постраничной выдачи. Невалидные значения
// не являются ошибкой: они приводятся к значениям по умолчанию.
type ListParams struct {
	Page      int
	Limit     int
	SortBy    string
	SortOrder string
}

// Normalized приводит page/limit к допустимым значениям
func (p ListParams) Normalized() ListParams {
	if p.Page < 1 {
		p.Page = DefaultPage
	}
	if p.Limit < 1 {
		p.Limit = DefaultLimit
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
	if strings.ToLower(p.SortOrder) == "desc" {
		p.SortOrder = "DESC"
	} else {
		p.SortOrder = "ASC"
	}
	return p
}

func (p ListParams) Offset() int {
	return (p.Page - 1) * p.Limit
}

// ListResult - общий конверт постраничного ответа
type ListResult struct {
	Results      interface{} `json:"results"`
	Page         int         `json:"page"`
	Limit        int         `json:"limit"`
	TotalPages   int         `json:"totalPages"`
	TotalResults int         `json:"totalResults"`
}

func TotalPages(totalResults, limit int) int {
	if totalResults <= 0 {
		return 0
	}
	return (totalResults + limit - 1) / limit
}

// orderClause строит ORDER BY по разрешенным колонкам, с добиванием по id
// для детерминированного порядка между страницами
func orderClause(p ListParams, allowed map[string]string, idColumn string) string {
	column, ok := allowed[p.SortBy]
	if !ok {
		column = "created_at"
	}
	return fmt.Sprintf(" ORDER BY %s %s, %s ASC", column, p.SortOrder, idColumn)
}
