package timeline

import "strings"

// Compliance is the classification of a policy status message.
type Compliance int

const (
	// ComplianceUnknown means the message names neither state.
	ComplianceUnknown Compliance = iota
	// Compliant means the message reports the positive terminal state.
	Compliant
	// NonCompliant means the message reports a negative or transient state.
	NonCompliant
)

func (c Compliance) String() string {
	switch c {
	case Compliant:
		return "Compliant"
	case NonCompliant:
		return "NonCompliant"
	default:
		return "Unknown"
	}
}

const (
	keywordCompliant    = "Compliant"
	keywordNonCompliant = "NonCompliant"
	currentStateMarker  = "now "
)

// ClassifyCompliance classifies a policy history message.
//
// Messages sometimes name both states, e.g. "was NonCompliant, now
// Compliant". When a current-state marker ("now ") is present, only the
// text after its last occurrence is classified. Within the classified text
// the negative keyword always wins: "NonCompliant" contains "Compliant" as
// a substring, so it is checked first. Same input always yields the same
// classification.
func ClassifyCompliance(message string) Compliance {
	text := message
	if i := strings.LastIndex(message, currentStateMarker); i >= 0 {
		text = message[i+len(currentStateMarker):]
	}
	switch {
	case strings.Contains(text, keywordNonCompliant):
		return NonCompliant
	case strings.Contains(text, keywordCompliant):
		return Compliant
	default:
		return ComplianceUnknown
	}
}
