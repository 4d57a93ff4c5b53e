package models

const (
	// operation kinds
	OP_DEPLOY   = "deploy"
	OP_WITHDRAW = "withdraw"
	OP_PAYMENT  = "payment"

	// operation statuses
	STATUS_SENT   = "sent"
	STATUS_FAILED = "failed"
)
