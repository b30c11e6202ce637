package money

import (
	"encoding/json"
	"testing"

	ddbtypes "github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCurrencyKind(t *testing.T) {
	assert.NoError(t, Common.Validate())
	assert.NoError(t, Premium.Validate())
	assert.ErrorIs(t, CurrencyKind("gold").Validate(), ErrInvalidCurrencyKind)
	assert.ErrorIs(t, CurrencyKind("").Validate(), ErrInvalidCurrencyKind)

	attr, err := Premium.BalanceAttribute()
	require.NoError(t, err)
	assert.Equal(t, "premium", attr)

	_, err = CurrencyKind("gold").BalanceAttribute()
	assert.ErrorIs(t, err, ErrInvalidCurrencyKind)
}

func TestAmountRounding(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want Amount
	}{
		{"exact", "12.34", 1234},
		{"rounds half up", "0.005", 1},
		{"rounds down", "1.004", 100},
		{"third decimal", "33.335", 3334},
		{"whole", "100", 10000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseAmount(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ParseAmount("not-a-number")
	assert.Error(t, err)
}

func TestAmountJSON(t *testing.T) {
	b, err := json.Marshal(Amount(1234))
	require.NoError(t, err)
	assert.Equal(t, "12.34", string(b))

	var a Amount
	require.NoError(t, json.Unmarshal([]byte("99.99"), &a))
	assert.Equal(t, Amount(9999), a)

	// Quoted decimal strings are accepted too.
	require.NoError(t, json.Unmarshal([]byte(`"0.01"`), &a))
	assert.Equal(t, Amount(1), a)
}

func TestAmountString(t *testing.T) {
	assert.Equal(t, "0.05", Amount(5).String())
	assert.Equal(t, "200.00", Amount(20000).String())
}

func TestMultiplierDynamoDBRoundTrip(t *testing.T) {
	m, err := MultiplierFromString("2.5")
	require.NoError(t, err)

	av, err := m.MarshalDynamoDBAttributeValue()
	require.NoError(t, err)
	s, ok := av.(*ddbtypes.AttributeValueMemberS)
	require.True(t, ok)
	assert.Equal(t, "2.5", s.Value)

	var out Multiplier
	require.NoError(t, out.UnmarshalDynamoDBAttributeValue(av))
	assert.True(t, out.Decimal.Equal(decimal.RequireFromString("2.5")))

	err = out.UnmarshalDynamoDBAttributeValue(&ddbtypes.AttributeValueMemberN{Value: "2.5"})
	assert.Error(t, err)
}

func TestMultiplierJSON(t *testing.T) {
	m, err := MultiplierFromString("3.75")
	require.NoError(t, err)

	b, err := json.Marshal(m)
	require.NoError(t, err)
	assert.Equal(t, "3.75", string(b))

	var out Multiplier
	require.NoError(t, json.Unmarshal([]byte("1.5"), &out))
	assert.True(t, out.Decimal.Equal(decimal.RequireFromString("1.5")))
}
