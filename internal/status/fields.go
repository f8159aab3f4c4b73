package status

import (
	"github.com/mstore-labs/pim-backend/pkg/db/models"
	"github.com/mstore-labs/pim-backend/pkg/enums"
)

// fieldSpec binds one monitorable field name to its canonical and
// overlay accessors. Overlay accessors return nil when the integration
// inherits the canonical value.
type fieldSpec struct {
	name      string
	kind      enums.FieldKind
	canonical func(*models.Product) any
	shop      func(*models.ProductShopData) any
	erp       func(*models.ProductErpData) any
}

var fieldCatalog = map[enums.CheckCategory][]fieldSpec{
	enums.CheckCategoryBasic: {
		{
			name: "name", kind: enums.FieldKindText,
			canonical: func(p *models.Product) any { return p.Name },
			shop:      func(d *models.ProductShopData) any { return d.Name },
			erp:       func(d *models.ProductErpData) any { return d.Name },
		},
		{
			name: "manufacturer", kind: enums.FieldKindText,
			canonical: func(p *models.Product) any { return p.Manufacturer },
			shop:      func(d *models.ProductShopData) any { return d.Manufacturer },
			erp:       func(d *models.ProductErpData) any { return d.Manufacturer },
		},
		{
			name: "supplier_code", kind: enums.FieldKindText,
			canonical: func(p *models.Product) any { return p.SupplierCode },
			shop:      func(d *models.ProductShopData) any { return d.SupplierCode },
			erp:       func(d *models.ProductErpData) any { return d.SupplierCode },
		},
		{
			name: "ean", kind: enums.FieldKindText,
			canonical: func(p *models.Product) any { return p.EAN },
			shop:      func(d *models.ProductShopData) any { return d.EAN },
			erp:       func(d *models.ProductErpData) any { return d.EAN },
		},
		{
			name: "tax_rate", kind: enums.FieldKindNumeric,
			canonical: func(p *models.Product) any { return p.TaxRate },
			shop:      func(d *models.ProductShopData) any { return d.TaxRate },
			erp:       func(d *models.ProductErpData) any { return d.TaxRate },
		},
		{
			name: "sort_order", kind: enums.FieldKindNumeric,
			canonical: func(p *models.Product) any { return p.SortOrder },
			shop:      func(d *models.ProductShopData) any { return d.SortOrder },
			erp:       func(d *models.ProductErpData) any { return d.SortOrder },
		},
		{
			name: "is_active", kind: enums.FieldKindBoolean,
			canonical: func(p *models.Product) any { return p.IsActive },
			shop:      func(d *models.ProductShopData) any { return d.IsActive },
			erp:       func(d *models.ProductErpData) any { return d.IsActive },
		},
	},
	enums.CheckCategoryDescriptions: {
		{
			name: "short_description", kind: enums.FieldKindText,
			canonical: func(p *models.Product) any { return p.ShortDescription },
			shop:      func(d *models.ProductShopData) any { return d.ShortDescription },
			erp:       func(d *models.ProductErpData) any { return d.ShortDescription },
		},
		{
			name: "long_description", kind: enums.FieldKindText,
			canonical: func(p *models.Product) any { return p.LongDescription },
			shop:      func(d *models.ProductShopData) any { return d.LongDescription },
			erp:       func(d *models.ProductErpData) any { return d.LongDescription },
		},
		{
			name: "meta_title", kind: enums.FieldKindText,
			canonical: func(p *models.Product) any { return p.MetaTitle },
			shop:      func(d *models.ProductShopData) any { return d.MetaTitle },
			erp:       func(d *models.ProductErpData) any { return d.MetaTitle },
		},
		{
			name: "meta_description", kind: enums.FieldKindText,
			canonical: func(p *models.Product) any { return p.MetaDescription },
			shop:      func(d *models.ProductShopData) any { return d.MetaDescription },
			erp:       func(d *models.ProductErpData) any { return d.MetaDescription },
		},
	},
	enums.CheckCategoryPhysical: {
		{
			name: "weight", kind: enums.FieldKindNumeric,
			canonical: func(p *models.Product) any { return p.Weight },
			shop:      func(d *models.ProductShopData) any { return d.Weight },
			erp:       func(d *models.ProductErpData) any { return d.Weight },
		},
		{
			name: "height", kind: enums.FieldKindNumeric,
			canonical: func(p *models.Product) any { return p.Height },
			shop:      func(d *models.ProductShopData) any { return d.Height },
			erp:       func(d *models.ProductErpData) any { return d.Height },
		},
		{
			name: "width", kind: enums.FieldKindNumeric,
			canonical: func(p *models.Product) any { return p.Width },
			shop:      func(d *models.ProductShopData) any { return d.Width },
			erp:       func(d *models.ProductErpData) any { return d.Width },
		},
		{
			name: "length", kind: enums.FieldKindNumeric,
			canonical: func(p *models.Product) any { return p.Length },
			shop:      func(d *models.ProductShopData) any { return d.Length },
			erp:       func(d *models.ProductErpData) any { return d.Length },
		},
	},
}

// specsFor resolves the policy's monitored field names against the
// catalog, preserving the policy's order. Unknown names are skipped.
func specsFor(category enums.CheckCategory, monitored []string) []fieldSpec {
	available := fieldCatalog[category]
	if len(available) == 0 || len(monitored) == 0 {
		return nil
	}
	byName := make(map[string]fieldSpec, len(available))
	for _, spec := range available {
		byName[spec.name] = spec
	}
	out := make([]fieldSpec, 0, len(monitored))
	for _, name := range monitored {
		if spec, ok := byName[name]; ok {
			out = append(out, spec)
		}
	}
	return out
}
