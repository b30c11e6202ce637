// Package money provides the value types shared by the ledger: fixed-point
// amounts in one of the two in-app currencies, and auction payout multipliers.
// Amounts are stored as integer cents so every balance is exact to two decimal
// places; decimal arithmetic is used wherever a value is derived, never raw
// floats.
package money

import (
	"errors"
	"fmt"

	ddbtypes "github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/shopspring/decimal"
)

// ErrInvalidCurrencyKind is returned when a currency kind outside the closed
// set is presented anywhere in the system.
var ErrInvalidCurrencyKind = errors.New("invalid currency kind")

// CurrencyKind identifies one of the two in-app denominations.
type CurrencyKind string

const (
	Common  CurrencyKind = "common"
	Premium CurrencyKind = "premium"
)

// Validate rejects any kind outside the closed enum.
func (k CurrencyKind) Validate() error {
	switch k {
	case Common, Premium:
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrInvalidCurrencyKind, string(k))
	}
}

// BalanceAttribute maps the kind to the stored balance attribute name. The
// mapping is an explicit switch rather than string interpolation so an
// unexpected kind can never address an arbitrary field.
func (k CurrencyKind) BalanceAttribute() (string, error) {
	switch k {
	case Common:
		return "common", nil
	case Premium:
		return "premium", nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidCurrencyKind, string(k))
	}
}

// Amount is a currency amount in cents. The zero value is zero currency.
type Amount int64

// FromDecimal converts a decimal value to an Amount, rounding half-up to two
// decimal places at the boundary.
func FromDecimal(d decimal.Decimal) Amount {
	return Amount(d.Round(2).Shift(2).IntPart())
}

// ParseAmount parses a decimal string such as "12.34".
func ParseAmount(s string) (Amount, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	return FromDecimal(d), nil
}

// Decimal returns the amount as an exact two-decimal value.
func (a Amount) Decimal() decimal.Decimal {
	return decimal.New(int64(a), -2)
}

func (a Amount) IsPositive() bool { return a > 0 }

// String renders the amount with exactly two decimal places.
func (a Amount) String() string {
	return a.Decimal().StringFixed(2)
}

// MarshalJSON renders the amount as a plain JSON number with two decimals.
func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(a.Decimal().StringFixed(2)), nil
}

// UnmarshalJSON accepts a JSON number or a quoted decimal string.
func (a *Amount) UnmarshalJSON(data []byte) error {
	var d decimal.Decimal
	if err := d.UnmarshalJSON(data); err != nil {
		return fmt.Errorf("invalid amount %s: %w", string(data), err)
	}
	*a = FromDecimal(d)
	return nil
}

// Multiplier is the payout ratio applied to an auction's stake. It wraps a
// decimal so the buyer's cost can be derived without float drift.
type Multiplier struct {
	decimal.Decimal
}

// NewMultiplier builds a multiplier from a decimal value.
func NewMultiplier(d decimal.Decimal) Multiplier {
	return Multiplier{Decimal: d}
}

// MultiplierFromString parses a decimal multiplier such as "2.5".
func MultiplierFromString(s string) (Multiplier, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Multiplier{}, fmt.Errorf("invalid multiplier %q: %w", s, err)
	}
	return Multiplier{Decimal: d}, nil
}

// MarshalJSON renders the multiplier as a plain JSON number.
func (m Multiplier) MarshalJSON() ([]byte, error) {
	return []byte(m.Decimal.String()), nil
}

// UnmarshalJSON accepts a JSON number or a quoted decimal string.
func (m *Multiplier) UnmarshalJSON(data []byte) error {
	return m.Decimal.UnmarshalJSON(data)
}

// MarshalDynamoDBAttributeValue stores the multiplier as a decimal string so
// no precision is lost in the table.
func (m Multiplier) MarshalDynamoDBAttributeValue() (ddbtypes.AttributeValue, error) {
	return &ddbtypes.AttributeValueMemberS{Value: m.Decimal.String()}, nil
}

// UnmarshalDynamoDBAttributeValue restores a multiplier from its stored form.
func (m *Multiplier) UnmarshalDynamoDBAttributeValue(av ddbtypes.AttributeValue) error {
	s, ok := av.(*ddbtypes.AttributeValueMemberS)
	if !ok {
		return fmt.Errorf("multiplier: unexpected attribute type %T", av)
	}
	d, err := decimal.NewFromString(s.Value)
	if err != nil {
		return fmt.Errorf("multiplier: %w", err)
	}
	m.Decimal = d
	return nil
}
