package validation

// Reason is the closed set of rejection causes.
type Reason string

const (
	ReasonNone             Reason = ""
	ReasonUnsupportedType  Reason = "unsupported_type"
	ReasonTooLarge         Reason = "too_large"
	ReasonEmptyFile        Reason = "empty_file"
	ReasonMissingFile      Reason = "missing_file"
	ReasonTemplateType     Reason = "template_type"
	ReasonTemplateTooLarge Reason = "template_too_large"
)

// Result is the outcome of checking one candidate file.
type Result struct {
	Valid   bool   `json:"valid"`
	Reason  Reason `json:"reason,omitempty"`
	Message string `json:"message,omitempty"`
}

// OK returns a passing Result.
func OK() Result {
	return Result{Valid: true}
}

func fail(reason Reason, message string) Result {
	return Result{Reason: reason, Message: message}
}
