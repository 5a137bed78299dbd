package log

// Common field names for structured logging
const (
	FieldComponent   = "component"
	FieldRequestID   = "request_id"
	FieldClientIP    = "client_ip"
	FieldMethod      = "method"
	FieldPath        = "path"
	FieldStatusCode  = "status_code"
	FieldDuration    = "duration_ms"
	FieldError       = "error"
	FieldTxID        = "transaction_id"
	FieldTxLabel     = "label"
	FieldAmountCents = "amount_cents"
	FieldKind        = "kind"
	FieldCategory    = "category"
	FieldCount       = "count"
	FieldRevision    = "revision"
	FieldAction      = "action"
)

// Components defines standard component names
const (
	ComponentApp     = "app"
	ComponentHTTP    = "http"
	ComponentLedger  = "ledger"
	ComponentStorage = "storage"
	ComponentEvents  = "events"
	ComponentCache   = "cache"
)
