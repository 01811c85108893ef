package services

// TestResult is the outcome of a connectivity probe. Test sends share the
// same shape (see SendResult) so the admin UI treats both identically.
type TestResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// FailureKind classifies why a test dispatch failed.
type FailureKind string

const (
	FailureNotConfigured    FailureKind = "not_configured"
	FailureMissingTemplate  FailureKind = "missing_template"
	FailureMissingRecipient FailureKind = "missing_recipient"
	FailureProviderError    FailureKind = "provider_error"
)

// SendResult is the outcome of a test dispatch. Every failure is data, not
// an error: dispatch never propagates errors past this shape.
type SendResult struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Details string      `json:"details,omitempty"`
	Kind    FailureKind `json:"kind,omitempty"`
}

func sendFailure(kind FailureKind, message, details string) SendResult {
	return SendResult{Success: false, Message: message, Details: details, Kind: kind}
}
