package logger

// Fields is an alias for map[string]interface{} for convenience.
type Fields map[string]interface{}

// Standard tracing fields, propagated through the call chain via context.
const (
	// FieldRequestID is the HTTP request ID (UUID)
	FieldRequestID = "request_id"

	// FieldComponent is the component/module name
	FieldComponent = "component"

	// FieldRecordType is the record category a batch command operates on
	FieldRecordType = "record_type"

	// FieldCourtID is the court short code
	FieldCourtID = "court_id"

	// FieldClusterID is the opinion cluster ID
	FieldClusterID = "cluster_id"

	// FieldUserID is the user ID
	FieldUserID = "user_id"
)

// Standard metric fields used for aggregation and alerting.
const (
	// FieldDurationMs is the execution duration in milliseconds
	FieldDurationMs = "duration_ms"

	// FieldCount is a generic count field
	FieldCount = "count"

	// FieldSize is the data size in bytes
	FieldSize = "size"

	// FieldStatus is the operation status
	FieldStatus = "status"
)
