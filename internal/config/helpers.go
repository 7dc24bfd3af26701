package config

import (
	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/taxengine/internal/domain"
)

func d2(s string) (decimal.Decimal, error) {
	return decimal.NewFromString(s)
}

func statusFromYAMLKey(key string) domain.FilingStatus {
	return domain.FilingStatus(key)
}
