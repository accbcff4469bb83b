package constants

// Notification texts shown to the user as transient toasts
const (
	MsgNoWallet           = "Please connect wallet first"
	MsgCreatePending      = "Generating encrypted scavenger hunt with FHE..."
	MsgCreateSuccess      = "Encrypted scavenger hunt generated!"
	MsgTransitionPending  = "Processing encrypted route with FHE..."
	MsgActivateSuccess    = "FHE activation completed!"
	MsgCompleteSuccess    = "FHE completion recorded!"
	MsgUserRejected       = "Transaction rejected by user"
	MsgSubmissionFailed   = "Submission failed: "
	MsgActivateFailed     = "Activation failed: "
	MsgCompleteFailed     = "Completion failed: "
	MsgUpdateFailed       = "Update failed: "
	MsgUpdateSuccess      = "Route updated"
	MsgUnknownError       = "Unknown error"
	MsgLedgerAvailable    = "FHE system is available"
	MsgLedgerUnavailable  = "FHE system is not available"
	MsgAvailabilityFailed = "Availability check failed"
)
