package database

import (
	"fmt"
	"strings"

	"inspection-backend/models"

	"gorm.io/gorm"
)

// AutoMigrate creates/updates every table the API writes to. On Postgres it also
// installs the CHECK constraints backing the catalog and enquiry ranges.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.Customer{},
		&models.IndianInspector{},
		&models.InternationalInspector{},
		&models.IndianCompany{},
		&models.InternationalCompany{},
		&models.PhyInspectionParam{},
		&models.ChemInspectionParam{},
		&models.RaiseEnquiry{},
		&models.IdempotencyKey{},
	); err != nil {
		return fmt.Errorf("automigrate failed: %w", err)
	}

	if db.Dialector.Name() != "postgres" {
		return nil
	}
	return db.Transaction(func(tx *gorm.DB) error {
		for _, c := range checkConstraints {
			if err := tx.Exec(c.sql()).Error; err != nil {
				return fmt.Errorf("check constraint %s failed: %w", c.name, err)
			}
		}
		return nil
	})
}

type checkConstraint struct {
	table string
	name  string
	expr  string
}

// sql renders an idempotent ADD CONSTRAINT.
func (c checkConstraint) sql() string {
	return fmt.Sprintf(`DO $$
BEGIN
	IF NOT EXISTS (
		SELECT 1 FROM pg_constraint
		WHERE conrelid = '%[1]s'::regclass
		  AND conname  = '%[2]s'
	) THEN
		ALTER TABLE %[1]s
		ADD CONSTRAINT %[2]s
		CHECK (%[3]s);
	END IF;
END $$;`, c.table, c.name, c.expr)
}

var checkConstraints = []checkConstraint{
	{"phy_inspection_params", "chk_phy_params_percentages",
		"broken BETWEEN 0 AND 100 AND purity BETWEEN 0 AND 100 AND yellow_kernel BETWEEN 0 AND 100 " +
			"AND damage_kernel BETWEEN 0 AND 100 AND red_kernel BETWEEN 0 AND 100 " +
			"AND paddy_kernel BETWEEN 0 AND 100 AND chalky_rice BETWEEN 0 AND 100"},
	{"phy_inspection_params", "chk_phy_params_nonneg", "live_insects >= 0 AND average_grain_length >= 0"},
	{"phy_inspection_params", "chk_phy_params_milling", "milling_degree IN (" + quoteList(models.MillingDegrees) + ")"},
	{"raise_enquiries", "chk_raise_enquiries_volume_nonneg", "volume >= 0"},
	{"raise_enquiries", "chk_raise_enquiries_budget_nonneg", "expected_budget_usd IS NULL OR expected_budget_usd >= 0"},
	{"raise_enquiries", "chk_raise_enquiries_inspection_type", "inspection_type IN ('single_day', 'multi_day')"},
}

func quoteList(values []string) string {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = "'" + strings.ReplaceAll(v, "'", "''") + "'"
	}
	return strings.Join(quoted, ", ")
}
