package models

// VerdictType tags the classification outcome for a text unit.
type VerdictType string

const (
	// VerdictNone means the text triggered neither detection axis.
	VerdictNone VerdictType = ""
	// VerdictWarning marks an offensive-content match.
	VerdictWarning VerdictType = "warning"
	// VerdictNegative marks a negative-sentiment match.
	VerdictNegative VerdictType = "negative"
	// VerdictInfo marks potentially misleading framing. Never produced by
	// the classifier itself; accepted on the rephrase surface.
	VerdictInfo VerdictType = "info"
)

// Valid reports whether v is one of the rephrasable verdict types.
func (v VerdictType) Valid() bool {
	switch v {
	case VerdictWarning, VerdictNegative, VerdictInfo:
		return true
	}
	return false
}

// Sensitivity is a three-level detection strictness setting.
type Sensitivity int

const (
	SensitivityLow    Sensitivity = 1
	SensitivityMedium Sensitivity = 2
	SensitivityHigh   Sensitivity = 3
)
