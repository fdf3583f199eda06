package domain

// SessionState is a step of the login state machine.
type SessionState string

const (
	StateAnonymous      SessionState = "anonymous"
	StateAuthenticating SessionState = "authenticating"
	StateAuthenticated  SessionState = "authenticated"
)

// Session is the current authentication state of a console. Authenticated
// implies Username and Role are set.
type Session struct {
	State         SessionState `json:"state"`
	Authenticated bool         `json:"authenticated"`
	Username      string       `json:"username"`
	Role          Role         `json:"role"`
	Message       string       `json:"message"`
}

// OrderForm holds the order fields being edited before submission.
type OrderForm struct {
	Amount      string   `json:"amount"`
	Currency    Currency `json:"currency"`
	Description string   `json:"description"`
}

// ConsoleState is everything a presentation layer renders. It is owned by a
// single console and only ever handed out as a copy.
type ConsoleState struct {
	Session          Session   `json:"session"`
	RegisterMessage  string    `json:"registerMessage"`
	OrderForm        OrderForm `json:"orderForm"`
	CreationMessage  string    `json:"creationMessage"`
	Receipt          *Payment  `json:"receipt"`
	QueryID          string    `json:"queryId"`
	QueryMessage     string    `json:"queryMessage"`
	QueriedStatus    *Payment  `json:"queriedStatus"`
	Payments         []Payment `json:"payments"`
	DashboardMessage string    `json:"dashboardMessage"`
}

// NewConsoleState returns the state of a freshly started console.
func NewConsoleState() ConsoleState {
	return ConsoleState{
		Session:   Session{State: StateAnonymous},
		OrderForm: OrderForm{Currency: DefaultCurrency},
		Payments:  []Payment{},
	}
}

// Clone returns a deep copy of s.
func (s ConsoleState) Clone() ConsoleState {
	out := s
	out.Payments = append([]Payment{}, s.Payments...)
	out.Receipt = clonePayment(s.Receipt)
	out.QueriedStatus = clonePayment(s.QueriedStatus)
	return out
}

func clonePayment(p *Payment) *Payment {
	if p == nil {
		return nil
	}
	c := *p
	if p.LastUpdatedAt != nil {
		ts := *p.LastUpdatedAt
		c.LastUpdatedAt = &ts
	}
	return &c
}
