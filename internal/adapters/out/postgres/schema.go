package postgres

import (
	"depot/internal/adapters/out/postgres/estimaterepo"
	"depot/internal/adapters/out/postgres/gaterepo"
	"depot/internal/adapters/out/postgres/outboxrepo"
	"depot/internal/adapters/out/postgres/partyrepo"
	"depot/internal/adapters/out/postgres/redeliveryrepo"
	"depot/internal/adapters/out/postgres/releaserepo"
	"depot/internal/adapters/out/postgres/workorderrepo"

	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// GormConfig is the configuration every depot connection is opened with.
// TranslateError lets repositories detect unique key violations.
func GormConfig() *gorm.Config {
	return &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Warn),
	}
}

func models() []any {
	return []any{
		&partyrepo.PartyDTO{},
		&redeliveryrepo.RedeliveryDTO{},
		&redeliveryrepo.DetailDTO{},
		&redeliveryrepo.UnitDTO{},
		&releaserepo.ReleaseDTO{},
		&releaserepo.DetailDTO{},
		&releaserepo.UnitDTO{},
		&gaterepo.RecordDTO{},
		&estimaterepo.EstimateDTO{},
		&estimaterepo.RevisionDTO{},
		&workorderrepo.WorkOrderDTO{},
		&workorderrepo.UnitDTO{},
		&outboxrepo.EventDTO{},
	}
}

// Migrate creates or alters every depot table.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(models()...)
}

// Tables lists the depot table names, children before parents.
func Tables() []string {
	return []string{
		"parties",
		"redelivery_units", "redelivery_details", "redeliveries",
		"release_units", "release_details", "releases",
		"gate_records",
		"estimate_revisions", "estimates",
		"work_order_units", "work_orders",
		"outbox",
	}
}
