package variants

import (
	"testing"

	"github.com/google/uuid"

	"github.com/mstore-labs/pim-backend/pkg/db/models"
	"github.com/mstore-labs/pim-backend/pkg/enums"
)

func TestBaseSKU(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"ABC-1", "ABC-1"},
		{"ABC-1-S3", "ABC-1"},
		{"ABC-1-S12", "ABC-1"},
		{"  ABC-1-S3  ", "ABC-1"},
		{"ABC-S", "ABC-S"},
		{"ABC-1-Sx", "ABC-1-Sx"},
		{"ABC-1-S3-S7", "ABC-1-S3"},
	}
	for _, tc := range cases {
		if got := BaseSKU(tc.in); got != tc.want {
			t.Errorf("BaseSKU(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestClassify(t *testing.T) {
	canonicalID := uuid.New()
	canonical := map[string]*models.ProductVariant{
		"ABC-1": {
			ID:       canonicalID,
			SKU:      "ABC-1",
			Name:     "Front brake pad",
			IsActive: true,
			Gallery: []models.Media{
				{IsActive: true},
				{IsActive: true},
				{IsActive: false},
			},
		},
	}

	cases := []struct {
		name string
		sv   ShopVariant
		want enums.VariantShopState
	}{
		{
			name: "no canonical match is shop only",
			sv:   ShopVariant{SKU: "XYZ-9-S3", HasLocalData: true},
			want: enums.VariantShopStateShopOnly,
		},
		{
			name: "match without local data is inherited",
			sv:   ShopVariant{SKU: "ABC-1-S3", Name: "Front brake pad", IsActive: true, ImageCount: 2},
			want: enums.VariantShopStateInherited,
		},
		{
			name: "identical override is same",
			sv:   ShopVariant{SKU: "ABC-1-S3", Name: "Front brake pad", IsActive: true, ImageCount: 2, HasLocalData: true},
			want: enums.VariantShopStateSame,
		},
		{
			name: "whitespace-only name difference is same",
			sv:   ShopVariant{SKU: "ABC-1-S3", Name: "  Front brake pad ", IsActive: true, ImageCount: 2, HasLocalData: true},
			want: enums.VariantShopStateSame,
		},
		{
			name: "diverging name is different",
			sv:   ShopVariant{SKU: "ABC-1-S3", Name: "Rear brake pad", IsActive: true, ImageCount: 2, HasLocalData: true},
			want: enums.VariantShopStateDifferent,
		},
		{
			name: "diverging image count is different",
			sv:   ShopVariant{SKU: "ABC-1-S3", Name: "Front brake pad", IsActive: true, ImageCount: 3, HasLocalData: true},
			want: enums.VariantShopStateDifferent,
		},
		{
			name: "diverging active flag is different",
			sv:   ShopVariant{SKU: "ABC-1", Name: "Front brake pad", IsActive: false, ImageCount: 2, HasLocalData: true},
			want: enums.VariantShopStateDifferent,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Classify(tc.sv, canonical)
			if got.State != tc.want {
				t.Fatalf("state = %s, want %s", got.State, tc.want)
			}
			if tc.want == enums.VariantShopStateShopOnly {
				if got.CanonicalID != nil {
					t.Fatal("shop_only must have no canonical id")
				}
			} else if got.CanonicalID == nil || *got.CanonicalID != canonicalID {
				t.Fatalf("canonical id = %v, want %s", got.CanonicalID, canonicalID)
			}
		})
	}
}

func TestClassifyAllPreservesOrder(t *testing.T) {
	canonical := []models.ProductVariant{
		{ID: uuid.New(), SKU: "ABC-1", Name: "One", IsActive: true},
		{ID: uuid.New(), SKU: "ABC-2", Name: "Two", IsActive: true},
	}
	shopVariants := []ShopVariant{
		{SKU: "ABC-2-S1", Name: "Two", IsActive: true, HasLocalData: true},
		{SKU: "ZZZ-1", HasLocalData: true},
		{SKU: "ABC-1", Name: "One", IsActive: true},
	}

	out := ClassifyAll(shopVariants, canonical)
	if len(out) != 3 {
		t.Fatalf("expected 3 classifications, got %d", len(out))
	}
	wantStates := []enums.VariantShopState{
		enums.VariantShopStateSame,
		enums.VariantShopStateShopOnly,
		enums.VariantShopStateInherited,
	}
	for i, want := range wantStates {
		if out[i].State != want {
			t.Errorf("out[%d].State = %s, want %s", i, out[i].State, want)
		}
	}
	if out[0].BaseSKU != "ABC-2" {
		t.Errorf("out[0].BaseSKU = %q, want ABC-2", out[0].BaseSKU)
	}
}
