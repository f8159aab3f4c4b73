package migrate_test

import (
	"strings"
	"testing"
)

func TestVariantMigrationContainsConstraints(t *testing.T) {
	content := readMigration(t, "*_create_variant_tables.sql")

	checks := []string{
		"CREATE TABLE IF NOT EXISTS product_variants",
		"sku TEXT NOT NULL UNIQUE",
		"CREATE TABLE IF NOT EXISTS variant_stocks",
		"CREATE TABLE IF NOT EXISTS shop_variant_overrides",
		"UNIQUE (shop_id, sku)",
		"CHECK (image_count >= 0)",
		"DROP TABLE IF EXISTS shop_variant_overrides",
	}

	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func TestVariantStockHasNoMinimumColumn(t *testing.T) {
	content := readMigration(t, "*_create_variant_tables.sql")

	start := strings.Index(content, "CREATE TABLE IF NOT EXISTS variant_stocks")
	if start < 0 {
		t.Fatal("variant_stocks table not found")
	}
	end := strings.Index(content[start:], ");")
	if end < 0 {
		t.Fatal("variant_stocks table not terminated")
	}
	if strings.Contains(content[start:start+end], "minimum_stock") {
		t.Error("variant stock must not carry a minimum_stock threshold")
	}
}
