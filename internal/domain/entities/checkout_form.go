package entities

import "errors"

var (
	ErrInvalidFormTransition = errors.New("invalid checkout form transition")
	ErrUnknownPricingTier    = errors.New("unknown pricing tier")
)

// CheckoutStep is a state of the tier checkout wizard
type CheckoutStep string

const (
	StepSelection CheckoutStep = "selection"
	StepInvoice   CheckoutStep = "invoice"
	StepSubmitted CheckoutStep = "submitted"
)

// Invoice is what the client is asked to pay
type Invoice struct {
	Tier     TierInfo `json:"tier"`
	Amount   int64    `json:"amount"`
	Currency string   `json:"currency"`
}

// CheckoutForm models the tier checkout wizard independently of any UI.
type CheckoutForm struct {
	step    CheckoutStep
	invoice *Invoice
}

// NewCheckoutForm starts at the selection step
func NewCheckoutForm() *CheckoutForm {
	return &CheckoutForm{step: StepSelection}
}

// Step returns the current step
func (f *CheckoutForm) Step() CheckoutStep {
	return f.step
}

// Invoice returns the pending invoice, nil while selecting
func (f *CheckoutForm) Invoice() *Invoice {
	return f.invoice
}

// SelectTier moves selection -> invoice
func (f *CheckoutForm) SelectTier(key PricingTier) error {
	if f.step != StepSelection {
		return ErrInvalidFormTransition
	}
	info, ok := LookupTier(key)
	if !ok {
		return ErrUnknownPricingTier
	}
	f.invoice = &Invoice{Tier: info, Amount: info.Price, Currency: info.Currency}
	f.step = StepInvoice
	return nil
}

// Back moves invoice -> selection
func (f *CheckoutForm) Back() error {
	if f.step != StepInvoice {
		return ErrInvalidFormTransition
	}
	f.invoice = nil
	f.step = StepSelection
	return nil
}

// Submit moves invoice -> submitted and returns the invoice to charge
func (f *CheckoutForm) Submit() (*Invoice, error) {
	if f.step != StepInvoice {
		return nil, ErrInvalidFormTransition
	}
	f.step = StepSubmitted
	return f.invoice, nil
}
