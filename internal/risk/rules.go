package risk

import (
	"strings"

	"github.com/rohankatakam/healthrisk/internal/errors"
)

// ComplianceRule is the HIPAA rule a risk is assessed against.
// The zero value means no rule was selected.
type ComplianceRule int

const (
	ComplianceRuleUnset ComplianceRule = iota
	PrivacyRule
	SecurityRule
	BreachNotificationRule
)

// ComplianceRules lists the selectable rules in display order
var ComplianceRules = []ComplianceRule{PrivacyRule, SecurityRule, BreachNotificationRule}

func (c ComplianceRule) String() string {
	switch c {
	case PrivacyRule:
		return "PrivacyRule"
	case SecurityRule:
		return "SecurityRule"
	case BreachNotificationRule:
		return "BreachNotificationRule"
	default:
		return ""
	}
}

// IsSet reports whether c is one of the selectable rules
func (c ComplianceRule) IsSet() bool {
	return c >= PrivacyRule && c <= BreachNotificationRule
}

func (c ComplianceRule) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *ComplianceRule) UnmarshalText(text []byte) error {
	rule, err := ParseComplianceRule(string(text))
	if err != nil {
		return err
	}
	*c = rule
	return nil
}

// ParseComplianceRule accepts the canonical name as well as the
// upper-snake and short forms ("PRIVACY_RULE", "privacy").
// An empty string yields ComplianceRuleUnset.
func ParseComplianceRule(s string) (ComplianceRule, error) {
	switch normalizeTag(s) {
	case "":
		return ComplianceRuleUnset, nil
	case "privacyrule", "privacy":
		return PrivacyRule, nil
	case "securityrule", "security":
		return SecurityRule, nil
	case "breachnotificationrule", "breachnotification", "breach":
		return BreachNotificationRule, nil
	}
	return ComplianceRuleUnset, errors.ParseErrorf("unknown compliance rule %q", s).
		WithContext("field", "compliance_rule")
}

// LifecycleStep is the NIST RMF step a risk was identified in.
// The zero value means no step was selected.
type LifecycleStep int

const (
	LifecycleStepUnset LifecycleStep = iota
	StepCategorize
	StepSelect
	StepImplement
	StepAssess
	StepAuthorize
	StepMonitor
)

// LifecycleSteps lists the six RMF steps in order
var LifecycleSteps = []LifecycleStep{StepCategorize, StepSelect, StepImplement, StepAssess, StepAuthorize, StepMonitor}

func (s LifecycleStep) String() string {
	switch s {
	case StepCategorize:
		return "Categorize"
	case StepSelect:
		return "Select"
	case StepImplement:
		return "Implement"
	case StepAssess:
		return "Assess"
	case StepAuthorize:
		return "Authorize"
	case StepMonitor:
		return "Monitor"
	default:
		return ""
	}
}

// IsSet reports whether s is one of the six RMF steps
func (s LifecycleStep) IsSet() bool {
	return s >= StepCategorize && s <= StepMonitor
}

func (s LifecycleStep) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *LifecycleStep) UnmarshalText(text []byte) error {
	step, err := ParseLifecycleStep(string(text))
	if err != nil {
		return err
	}
	*s = step
	return nil
}

// ParseLifecycleStep is case-insensitive and treats the British spellings
// (Categorise, Authorise) as the same step.
func ParseLifecycleStep(s string) (LifecycleStep, error) {
	switch normalizeTag(s) {
	case "":
		return LifecycleStepUnset, nil
	case "categorize", "categorise":
		return StepCategorize, nil
	case "select":
		return StepSelect, nil
	case "implement":
		return StepImplement, nil
	case "assess":
		return StepAssess, nil
	case "authorize", "authorise":
		return StepAuthorize, nil
	case "monitor":
		return StepMonitor, nil
	}
	return LifecycleStepUnset, errors.ParseErrorf("unknown lifecycle step %q", s).
		WithContext("field", "lifecycle_step")
}

func normalizeTag(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.NewReplacer("_", "", "-", "", " ", "").Replace(s)
}
