package monitoring

import (
	"testing"

	"github.com/mstore-labs/pim-backend/pkg/enums"
	pkgerrors "github.com/mstore-labs/pim-backend/pkg/errors"
)

func TestDefaultPolicyMonitoredFields(t *testing.T) {
	policy := DefaultPolicy()

	basic := policy.MonitoredFields(enums.CheckCategoryBasic)
	wantBasic := []string{"name", "manufacturer", "tax_rate", "is_active"}
	if len(basic) != len(wantBasic) {
		t.Fatalf("expected %d basic fields, got %v", len(wantBasic), basic)
	}
	for i, name := range wantBasic {
		if basic[i] != name {
			t.Fatalf("basic field %d: expected %q got %q", i, name, basic[i])
		}
	}

	if fields := policy.MonitoredFields(enums.CheckCategoryImages); fields != nil {
		t.Fatalf("images category has no monitored fields, got %v", fields)
	}
}

func TestDefaultPolicyEnablesEveryCategory(t *testing.T) {
	policy := DefaultPolicy()
	for _, category := range enums.CheckCategories() {
		if !policy.IsEnabled(category) {
			t.Fatalf("category %s must default to enabled", category)
		}
	}

	var empty Policy
	if empty.IsEnabled(enums.CheckCategoryZeroPrice) {
		t.Fatal("a policy without switches enables nothing")
	}
}

func TestDisabledCategoryMonitorsNoFields(t *testing.T) {
	policy := DefaultPolicy()
	policy.Enabled[enums.CheckCategoryBasic] = false

	if fields := policy.MonitoredFields(enums.CheckCategoryBasic); fields != nil {
		t.Fatalf("disabled category must monitor nothing, got %v", fields)
	}
}

func TestMonitoredFieldsSubtractsIgnored(t *testing.T) {
	policy := Policy{
		Enabled: map[enums.CheckCategory]bool{
			enums.CheckCategoryBasic: true,
		},
		Fields: map[enums.CheckCategory][]string{
			enums.CheckCategoryBasic: {"name", "ean", "tax_rate"},
		},
		Ignored: map[enums.CheckCategory][]string{
			enums.CheckCategoryBasic: {"ean"},
		},
	}

	fields := policy.MonitoredFields(enums.CheckCategoryBasic)
	if len(fields) != 2 || fields[0] != "name" || fields[1] != "tax_rate" {
		t.Fatalf("expected ignored field removed in order, got %v", fields)
	}
}

func TestPolicyValidate(t *testing.T) {
	if err := DefaultPolicy().Validate(); err != nil {
		t.Fatalf("default policy must validate: %v", err)
	}

	bad := Policy{Fields: map[enums.CheckCategory][]string{
		enums.CheckCategoryImages: {"file_name"},
	}}
	err := bad.Validate()
	if err == nil {
		t.Fatal("expected non-field category to be rejected")
	}
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}

	empty := Policy{Fields: map[enums.CheckCategory][]string{
		enums.CheckCategoryBasic: {""},
	}}
	if err := empty.Validate(); err == nil {
		t.Fatal("expected empty field name to be rejected")
	}

	bogus := Policy{Enabled: map[enums.CheckCategory]bool{"bogus": true}}
	if err := bogus.Validate(); err == nil {
		t.Fatal("expected unknown enabled category to be rejected")
	}
}
