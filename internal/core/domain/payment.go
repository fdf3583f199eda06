package domain

import (
	"slices"
	"time"

	"github.com/goccy/go-json"
	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// PaymentStatus is the lifecycle state reported by the payment service.
// Values outside the known set are kept verbatim.
type PaymentStatus string

const (
	StatusPending    PaymentStatus = "PENDING"
	StatusProcessing PaymentStatus = "PROCESSING"
	StatusCompleted  PaymentStatus = "COMPLETED"
	StatusFailed     PaymentStatus = "FAILED"
	StatusRetrying   PaymentStatus = "RETRYING"
	StatusDuplicate  PaymentStatus = "DUPLICATE"
)

// Terminal reports whether the payment service will not change s any more.
func (s PaymentStatus) Terminal() bool {
	switch s {
	case StatusCompleted, StatusFailed, StatusDuplicate:
		return true
	}
	return false
}

// Currency is one of the currencies offered by the order form.
type Currency string

const (
	CurrencyUSD Currency = "USD"
	CurrencyEUR Currency = "EUR"
	CurrencyGBP Currency = "GBP"
)

// DefaultCurrency preselects the order form.
const DefaultCurrency = CurrencyUSD

func Currencies() []Currency {
	return []Currency{CurrencyUSD, CurrencyEUR, CurrencyGBP}
}

// OrderRequest is the body sent to create a payment order.
type OrderRequest struct {
	Amount      decimal.Decimal `json:"amount"`
	Currency    Currency        `json:"currency"`
	Description string          `json:"description"`
}

// Payment is a read-only copy of a payment owned by the payment service.
type Payment struct {
	ID            string          `json:"id"`
	Amount        decimal.Decimal `json:"amount"`
	Currency      string          `json:"currency"`
	Description   string          `json:"description"`
	Status        PaymentStatus   `json:"status"`
	CreatedAt     Timestamp       `json:"createdAt"`
	LastUpdatedAt *Timestamp      `json:"lastUpdatedAt,omitempty"`
}

// SortByCreatedDesc orders payments newest first. Payments with equal
// timestamps keep their relative order.
func SortByCreatedDesc(payments []Payment) {
	slices.SortStableFunc(payments, func(a, b Payment) int {
		return b.CreatedAt.Time.Compare(a.CreatedAt.Time)
	})
}

// timestampLayouts covers RFC 3339 and the zone-less ISO-8601 form that
// Java's LocalDateTime serializes to.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
}

// Timestamp is a leniently decoded point in time. Raw keeps the text the
// server sent so it can be echoed back unchanged. An unparseable value
// decodes to the zero time.
type Timestamp struct {
	Time time.Time
	Raw  string
}

// ParseTimestamp decodes raw with the first matching layout.
func ParseTimestamp(raw string) Timestamp {
	ts := Timestamp{Raw: raw}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			ts.Time = t
			break
		}
	}
	return ts
}

func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{Time: t, Raw: t.Format(time.RFC3339Nano)}
}

func (t Timestamp) IsZero() bool {
	return t.Raw == "" && t.Time.IsZero()
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	switch {
	case t.Raw != "":
		return json.Marshal(t.Raw)
	case t.Time.IsZero():
		return []byte("null"), nil
	default:
		return json.Marshal(t.Time.Format(time.RFC3339Nano))
	}
}

// UnmarshalJSON accepts a string, null, or a number of epoch milliseconds.
func (t *Timestamp) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*t = Timestamp{}
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var raw string
		if err := json.Unmarshal(b, &raw); err != nil {
			return err
		}
		*t = ParseTimestamp(raw)
		return nil
	}
	var millis int64
	if err := json.Unmarshal(b, &millis); err != nil {
		return err
	}
	*t = Timestamp{Time: time.UnixMilli(millis).UTC(), Raw: string(b)}
	return nil
}
