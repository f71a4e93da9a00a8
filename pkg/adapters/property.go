package adapters

import (
	"github.com/de-tools/booking-atlas/pkg/models/api"
	"github.com/de-tools/booking-atlas/pkg/models/domain"
	"github.com/de-tools/booking-atlas/pkg/models/store"
)

func MapStorePropertyRowToDomain(row store.PropertyRow) domain.Property {
	return domain.Property{
		ID:                row.ID,
		Code:              row.Code.String,
		Name:              row.Name.String,
		HasRecentActivity: row.HasRecentActivity,
	}
}

func MapPropertyDomainToApi(p domain.Property) api.Property {
	return api.Property{
		ID:                p.ID,
		Code:              p.Code,
		Name:              p.Name,
		HasRecentActivity: p.HasRecentActivity,
	}
}
