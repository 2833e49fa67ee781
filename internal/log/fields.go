package log

// Common field names for structured logging
const (
	FieldComponent = "component"
	FieldOperation = "operation"
	FieldError     = "error"
	FieldReason    = "reason"
	FieldID        = "id"
	FieldCategory  = "category"
	FieldDate      = "date"
	FieldRows      = "rows"
	FieldCount     = "count"
	FieldFilter    = "filter"
	FieldPath      = "path"
	FieldDuration  = "duration_ms"
)

// Component names
const (
	ComponentApp     = "app"
	ComponentStorage = "storage"
	ComponentLedger  = "ledger"
	ComponentTUI     = "tui"
	ComponentCLI     = "cli"
	ComponentConfig  = "config"
)

// Operation names
const (
	OpAdd     = "add"
	OpUpdate  = "update"
	OpDelete  = "delete"
	OpList    = "list"
	OpMigrate = "migrate"
)
