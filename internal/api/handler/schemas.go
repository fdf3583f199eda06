package handler

import (
	"fmt"

	"github.com/goccy/go-json"

	"github.com/99minutos/payment-console/internal/core/domain"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Request types ---

// credentialsRequest carries login and registration input. Emptiness is
// checked by the session manager so the rejection lands in the console state.
type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type orderFormRequest struct {
	Amount      amountField `json:"amount"`
	Currency    string      `json:"currency"    validate:"omitempty,oneof=USD EUR GBP"`
	Description string      `json:"description" validate:"max=255"`
}

// createOrderRequest leaves amount parsing to the payment client, which
// records "Please enter a valid amount." in the console state.
type createOrderRequest struct {
	Amount      amountField `json:"amount"`
	Currency    string      `json:"currency"    validate:"omitempty,oneof=USD EUR GBP"`
	Description string      `json:"description" validate:"max=255"`
}

type statusQuery struct {
	PaymentID string `query:"payment_id"`
}

// --- Response types ---

type sessionResponse struct {
	Session         domain.Session `json:"session"`
	RegisterMessage string         `json:"registerMessage,omitempty"`
}

type orderResponse struct {
	Message string          `json:"message"`
	Payment *domain.Payment `json:"payment,omitempty"`
}

type statusResponse struct {
	PaymentID string          `json:"paymentId"`
	Message   string          `json:"message"`
	Payment   *domain.Payment `json:"payment,omitempty"`
}

type dashboardResponse struct {
	Payments []domain.Payment `json:"payments"`
	Message  string           `json:"message,omitempty"`
	Total    int              `json:"total"`
	Open     int              `json:"open"`
}

type userResponse struct {
	Username string      `json:"username"`
	Role     domain.Role `json:"role"`
}

type usersResponse struct {
	Users []userResponse `json:"users"`
	Total int            `json:"total"`
}

// amountField accepts the amount as a JSON string or a bare JSON number and
// keeps the text as typed.
type amountField string

func (a *amountField) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*a = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*a = amountField(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("amount must be a number or a string: %w", err)
	}
	*a = amountField(n.String())
	return nil
}
