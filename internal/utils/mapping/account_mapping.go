package mapping

import (
	"github.com/tirtatour/travel_billing_app/internal/core/domain"
	"github.com/tirtatour/travel_billing_app/internal/models"
)

// ToModelChartOfAccount converts a domain ChartOfAccount to a model ChartOfAccount
func ToModelChartOfAccount(d domain.ChartOfAccount) models.ChartOfAccount {
	return models.ChartOfAccount{
		AccountID:       d.AccountID,
		Code:            d.Code,
		Name:            d.Name,
		AccountType:     models.AccountType(d.AccountType),
		ParentAccountID: d.ParentAccountID,
		IsHeader:        d.IsHeader,
		CurrencyCode:    d.CurrencyCode,
		IsActive:        d.IsActive,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainChartOfAccount converts a model ChartOfAccount to a domain ChartOfAccount
func ToDomainChartOfAccount(m models.ChartOfAccount) domain.ChartOfAccount {
	return domain.ChartOfAccount{
		AccountID:       m.AccountID,
		Code:            m.Code,
		Name:            m.Name,
		AccountType:     domain.AccountType(m.AccountType),
		ParentAccountID: m.ParentAccountID,
		IsHeader:        m.IsHeader,
		CurrencyCode:    m.CurrencyCode,
		IsActive:        m.IsActive,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainChartOfAccountSlice converts a slice of model accounts to domain accounts
func ToDomainChartOfAccountSlice(ms []models.ChartOfAccount) []domain.ChartOfAccount {
	out := make([]domain.ChartOfAccount, len(ms))
	for i, m := range ms {
		out[i] = ToDomainChartOfAccount(m)
	}
	return out
}

// ToModelAccountMapping converts a domain AccountMapping to a model AccountMapping
func ToModelAccountMapping(d domain.AccountMapping) models.AccountMapping {
	return models.AccountMapping{
		MappingID:       d.MappingID,
		Category:        string(d.Category),
		DebitAccountID:  d.DebitAccountID,
		CreditAccountID: d.CreditAccountID,
		Description:     d.Description,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainAccountMapping converts a model AccountMapping to a domain AccountMapping
func ToDomainAccountMapping(m models.AccountMapping) domain.AccountMapping {
	return domain.AccountMapping{
		MappingID:       m.MappingID,
		Category:        domain.EventCategory(m.Category),
		DebitAccountID:  m.DebitAccountID,
		CreditAccountID: m.CreditAccountID,
		Description:     m.Description,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}
