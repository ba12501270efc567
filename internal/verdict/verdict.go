// Package verdict classifies a run's outcome into its final label.
package verdict

// Verdict is the run's final classification.
type Verdict string

const (
	Pass   Verdict = "PASS"
	OK     Verdict = "OK"
	Review Verdict = "REVIEW"
	Block  Verdict = "BLOCK"
	Paused Verdict = "PAUSED"
	Skip   Verdict = "SKIP"
	Error  Verdict = "ERROR"
)

// Input carries everything Classify needs about a run.
type Input struct {
	CriticalCount     int
	WarningCount      int
	HasInferencePoint bool
	CreditsExhausted  bool
	TransportError    bool
}

// Classify maps run conditions and aggregate issue counts to a Verdict.
// Rules are evaluated in strict priority order; the first match wins.
// The boundary values (2 criticals, 5 warnings) are part of the contract.
func Classify(in Input) Verdict {
	switch {
	case in.TransportError:
		return Error
	case in.CreditsExhausted:
		return Paused
	case !in.HasInferencePoint:
		return Skip
	case in.CriticalCount >= 2:
		return Block
	case in.CriticalCount == 1 || in.WarningCount > 5:
		return Review
	case in.WarningCount >= 1:
		return OK
	default:
		return Pass
	}
}
