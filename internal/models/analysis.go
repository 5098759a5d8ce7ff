package models

// Condition names one of the four skin conditions every analysis reports on.
type Condition string

const (
	ConditionPimples     Condition = "pimples"
	ConditionAcne        Condition = "acne"
	ConditionScars       Condition = "scars"
	ConditionDarkCircles Condition = "darkCircles"
)

type Severity string

const (
	SeverityNone     Severity = "none"
	SeverityMild     Severity = "mild"
	SeverityModerate Severity = "moderate"
	SeveritySevere   Severity = "severe"
)

type OverallHealth string

const (
	OverallHealthExcellent OverallHealth = "excellent"
	OverallHealthGood      OverallHealth = "good"
	OverallHealthFair      OverallHealth = "fair"
)

// ConditionOrder is the fixed order used for display and product matching.
func ConditionOrder() []Condition {
	return []Condition{ConditionPimples, ConditionAcne, ConditionScars, ConditionDarkCircles}
}

// SeverityLevels lists the severities a condition may carry, lowest first.
// Only dark circles can be severe.
func SeverityLevels(condition Condition) []Severity {
	if condition == ConditionDarkCircles {
		return []Severity{SeverityNone, SeverityMild, SeverityModerate, SeveritySevere}
	}
	return []Severity{SeverityNone, SeverityMild, SeverityModerate}
}

func OverallHealthLevels() []OverallHealth {
	return []OverallHealth{OverallHealthExcellent, OverallHealthGood, OverallHealthFair}
}

type ConditionFinding struct {
	Detected bool     `json:"detected"`
	Severity Severity `json:"severity"`
	Count    *int     `json:"count,omitempty"`
}

type Conditions struct {
	Pimples     ConditionFinding `json:"pimples"`
	Acne        ConditionFinding `json:"acne"`
	Scars       ConditionFinding `json:"scars"`
	DarkCircles ConditionFinding `json:"darkCircles"`
}

func (conditions Conditions) Finding(condition Condition) (ConditionFinding, bool) {
	switch condition {
	case ConditionPimples:
		return conditions.Pimples, true
	case ConditionAcne:
		return conditions.Acne, true
	case ConditionScars:
		return conditions.Scars, true
	case ConditionDarkCircles:
		return conditions.DarkCircles, true
	default:
		return ConditionFinding{}, false
	}
}

func (conditions Conditions) Detected(condition Condition) bool {
	finding, ok := conditions.Finding(condition)
	return ok && finding.Detected
}

// AnalysisResult is the payload returned by the analyzer and stored as a
// history record's analysis_data. AnalysisID is only set on responses for
// results that were persisted.
type AnalysisResult struct {
	Conditions      Conditions    `json:"conditions"`
	OverallHealth   OverallHealth `json:"overallHealth"`
	Recommendations []string      `json:"recommendations"`
	AnalysisID      string        `json:"analysisId,omitempty"`
}
