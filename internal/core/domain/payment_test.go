package domain

import (
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestSortByCreatedDesc(t *testing.T) {
	var tests = []struct {
		name     string
		input    []Payment
		expected []string
	}{
		{
			name:     "empty",
			input:    []Payment{},
			expected: []string{},
		},
		{
			name: "newest first",
			input: []Payment{
				{ID: "a", CreatedAt: ParseTimestamp("2024-01-01T10:00:00Z")},
				{ID: "b", CreatedAt: ParseTimestamp("2024-03-01T10:00:00Z")},
				{ID: "c", CreatedAt: ParseTimestamp("2024-02-01T10:00:00Z")},
			},
			expected: []string{"b", "c", "a"},
		},
		{
			name: "ties keep server order",
			input: []Payment{
				{ID: "x", CreatedAt: ParseTimestamp("2024-01-01T10:00:00Z")},
				{ID: "y", CreatedAt: ParseTimestamp("2024-01-01T10:00:00Z")},
				{ID: "z", CreatedAt: ParseTimestamp("2024-01-02T10:00:00Z")},
			},
			expected: []string{"z", "x", "y"},
		},
		{
			name: "mixed layouts and unparseable last",
			input: []Payment{
				{ID: "bad", CreatedAt: ParseTimestamp("yesterday")},
				{ID: "local", CreatedAt: ParseTimestamp("2024-05-01T08:30:00.123456")},
				{ID: "zoned", CreatedAt: ParseTimestamp("2024-04-01T08:30:00+02:00")},
			},
			expected: []string{"local", "zoned", "bad"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			SortByCreatedDesc(tt.input)
			ids := make([]string, 0, len(tt.input))
			for _, p := range tt.input {
				ids = append(ids, p.ID)
			}
			require.Equal(t, tt.expected, ids)
		})
	}
}

func TestTimestamp_UnmarshalJSON(t *testing.T) {
	var p Payment
	body := `{"id":"p1","amount":100.5,"currency":"USD","description":"test","status":"PENDING","createdAt":"2024-01-02T03:04:05","lastUpdatedAt":null}`
	require.NoError(t, json.Unmarshal([]byte(body), &p))

	require.Equal(t, "p1", p.ID)
	require.True(t, decimal.RequireFromString("100.5").Equal(p.Amount))
	require.Equal(t, StatusPending, p.Status)
	require.Equal(t, time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC), p.CreatedAt.Time)
	require.Equal(t, "2024-01-02T03:04:05", p.CreatedAt.Raw)
	require.NotNil(t, p.LastUpdatedAt)
	require.True(t, p.LastUpdatedAt.IsZero())
}

func TestTimestamp_EpochMillis(t *testing.T) {
	var ts Timestamp
	require.NoError(t, json.Unmarshal([]byte(`1704067200000`), &ts))
	require.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), ts.Time)
}

func TestTimestamp_MarshalKeepsRaw(t *testing.T) {
	b, err := json.Marshal(ParseTimestamp("2024-01-02T03:04:05"))
	require.NoError(t, err)
	require.JSONEq(t, `"2024-01-02T03:04:05"`, string(b))

	b, err = json.Marshal(Timestamp{})
	require.NoError(t, err)
	require.Equal(t, "null", string(b))
}

func TestOrderRequest_AmountIsNumber(t *testing.T) {
	b, err := json.Marshal(OrderRequest{Amount: decimal.RequireFromString("100.00"), Currency: CurrencyUSD, Description: "test"})
	require.NoError(t, err)
	require.JSONEq(t, `{"amount":100,"currency":"USD","description":"test"}`, string(b))
}

func TestConsoleState_CloneIsDeep(t *testing.T) {
	st := NewConsoleState()
	st.Payments = append(st.Payments, Payment{ID: "p1"})
	st.Receipt = &Payment{ID: "r1"}

	c := st.Clone()
	c.Payments[0].ID = "changed"
	c.Receipt.ID = "changed"

	require.Equal(t, "p1", st.Payments[0].ID)
	require.Equal(t, "r1", st.Receipt.ID)
}
