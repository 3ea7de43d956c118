package shared

// FailureReason defines why an asynchronous transaction ended in the dead letter queue
type FailureReason string

const (
	FailureReasonInvalidPayload     FailureReason = "INVALID_PAYLOAD"
	FailureReasonBookNotFound       FailureReason = "BOOK_NOT_FOUND"
	FailureReasonAccountNotFound    FailureReason = "ACCOUNT_NOT_FOUND"
	FailureReasonInvalidTransaction FailureReason = "INVALID_TRANSACTION"
	FailureReasonOutOfOrder         FailureReason = "OUT_OF_ORDER"
	FailureReasonCurrencyMismatch   FailureReason = "CURRENCY_MISMATCH"
	FailureReasonSaveFailed         FailureReason = "SAVE_FAILED"
	FailureReasonUnknownError       FailureReason = "UNKNOWN_ERROR"
)

// OutboxStatus defines message publishing states
type OutboxStatus string

const (
	OutboxStatusPending         OutboxStatus = "PENDING"
	OutboxStatusProcessed       OutboxStatus = "PROCESSED"
	OutboxStatusFailedToPublish OutboxStatus = "FAILED_TO_PUBLISH"
)
