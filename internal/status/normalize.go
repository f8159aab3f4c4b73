package status

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/mstore-labs/pim-backend/pkg/enums"
)

// Normalized is the comparable form of one field value. Two fields are
// equivalent when their Normalized values are equal, so float noise and
// whitespace never count as discrepancies.
type Normalized struct {
	Null  bool
	Kind  enums.FieldKind
	Value string
}

// Normalize reduces a raw field value to its comparable form. Nil
// pointers and blank strings normalize to null, numerics are rounded to
// two decimal places, booleans collapse to true/false and text is
// trimmed.
func Normalize(kind enums.FieldKind, value any) Normalized {
	value = deref(value)
	if value == nil {
		return Normalized{Null: true, Kind: kind}
	}

	switch kind {
	case enums.FieldKindNumeric:
		if dec, ok := toDecimal(value); ok {
			return Normalized{Kind: kind, Value: dec.Round(2).StringFixed(2)}
		}
	case enums.FieldKindBoolean:
		if b, ok := toBool(value); ok {
			return Normalized{Kind: kind, Value: strconv.FormatBool(b)}
		}
	case enums.FieldKindText:
		if s, ok := value.(string); ok {
			trimmed := strings.TrimSpace(s)
			if trimmed == "" {
				return Normalized{Null: true, Kind: kind}
			}
			return Normalized{Kind: kind, Value: trimmed}
		}
	}

	// fall back to the raw textual form for unknown combinations
	if s, ok := value.(string); ok {
		trimmed := strings.TrimSpace(s)
		if trimmed == "" {
			return Normalized{Null: true, Kind: kind}
		}
		return Normalized{Kind: kind, Value: trimmed}
	}
	if dec, ok := toDecimal(value); ok {
		return Normalized{Kind: kind, Value: dec.Round(2).StringFixed(2)}
	}
	if b, ok := toBool(value); ok {
		return Normalized{Kind: kind, Value: strconv.FormatBool(b)}
	}
	return Normalized{Null: true, Kind: kind}
}

func deref(value any) any {
	switch v := value.(type) {
	case nil:
		return nil
	case *string:
		if v == nil {
			return nil
		}
		return *v
	case *bool:
		if v == nil {
			return nil
		}
		return *v
	case *int:
		if v == nil {
			return nil
		}
		return *v
	case *float64:
		if v == nil {
			return nil
		}
		return *v
	case *decimal.Decimal:
		if v == nil {
			return nil
		}
		return *v
	default:
		return value
	}
}

func toDecimal(value any) (decimal.Decimal, bool) {
	switch v := value.(type) {
	case decimal.Decimal:
		return v, true
	case int:
		return decimal.NewFromInt(int64(v)), true
	case int64:
		return decimal.NewFromInt(v), true
	case float64:
		return decimal.NewFromFloat(v), true
	case string:
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			return decimal.Decimal{}, false
		}
		dec, err := decimal.NewFromString(trimmed)
		if err != nil {
			return decimal.Decimal{}, false
		}
		return dec, true
	default:
		return decimal.Decimal{}, false
	}
}

func toBool(value any) (bool, bool) {
	switch v := value.(type) {
	case bool:
		return v, true
	case int:
		return v != 0, true
	case int64:
		return v != 0, true
	case string:
		parsed, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return false, false
		}
		return parsed, true
	default:
		return false, false
	}
}
