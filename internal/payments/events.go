package payments

// Event types delivered by the payment processor.
const (
	EventPaymentSucceeded     = "payment.succeeded"
	EventPaymentFailed        = "payment.failed"
	EventCheckoutCompleted    = "checkout.completed"
	EventInvoicePaid          = "invoice.paid"
	EventInvoicePaymentFailed = "invoice.payment_failed"
)

// Event is the decoded webhook payload. Decoding happens only after the
// signature over the raw bytes has been verified.
type Event struct {
	ID   string    `json:"id"`
	Type string    `json:"type"`
	Data EventData `json:"data"`
}

// EventData carries the fields reconciliation needs. ProcessorRef is the
// processor's canonical payment identifier; InvoiceID is our invoice id,
// echoed back from checkout metadata on checkout.completed.
type EventData struct {
	ProcessorRef string `json:"processor_ref"`
	InvoiceID    string `json:"invoice_id,omitempty"`
}
