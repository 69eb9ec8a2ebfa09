package wizard

// Step is the wizard's position. The flow is strictly linear:
// Selection → Configuration → Method → Validation → Confirmation.
type Step int

const (
	StepSelection Step = iota + 1
	StepConfiguration
	StepMethod
	StepValidation
	StepConfirmation
)

func (s Step) String() string {
	switch s {
	case StepSelection:
		return "selection"
	case StepConfiguration:
		return "configuration"
	case StepMethod:
		return "method"
	case StepValidation:
		return "validation"
	case StepConfirmation:
		return "confirmation"
	}
	return "unknown"
}

// Label is the customer-facing name shown in the stepper.
func (s Step) Label() string {
	switch s {
	case StepSelection:
		return "Items"
	case StepConfiguration:
		return "Details"
	case StepMethod:
		return "Method"
	case StepValidation:
		return "Review"
	case StepConfirmation:
		return "Done"
	}
	return ""
}
