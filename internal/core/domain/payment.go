package domain

// PaymentResult is the outcome of a payment gateway operation. Success=false
// with a nil transport error is a business decline, not a system failure.
type PaymentResult struct {
	Success       bool
	TransactionID string
	ErrorMessage  string
}
