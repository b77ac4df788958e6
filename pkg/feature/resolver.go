package feature

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Well-known attributes resolved from dedicated context fields; anything else
// is looked up in the attribute bag.
const (
	attrUserID = "userId"
	attrEmail  = "email"
	attrCohort = "cohort"
)

// resolveAttribute returns the string form of a targeting attribute from the
// context. The second return is false when the attribute is absent, in which
// case the rule is skipped.
func resolveAttribute(ectx EvaluationContext, attribute string) (string, bool) {
	switch attribute {
	case attrUserID:
		return ectx.UserID, ectx.UserID != ""
	case attrEmail:
		return ectx.Email, ectx.Email != ""
	default:
		v, ok := ectx.Attributes[attribute]
		if !ok || v == nil {
			return "", false
		}
		return attrString(v), true
	}
}

// attrString normalizes attribute-bag values to strings so operators compare
// a single representation. JSON numbers arrive as float64; integral values
// must render without a decimal point.
func attrString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case fmt.Stringer:
		return t.String()
	default:
		return fmt.Sprint(t)
	}
}

// matchRule reports whether any element of the rule value satisfies the
// operator against the resolved attribute.
func matchRule(rule TargetingRule, attr string) bool {
	for _, candidate := range rule.Value {
		if matchOperator(rule.Operator, attr, candidate) {
			return true
		}
	}
	return false
}

func matchOperator(op Operator, attr, candidate string) bool {
	switch op {
	case OpEquals, OpIn:
		// "in" is membership of the attribute in the rule's value list,
		// which reduces to equality against any element.
		return attr == candidate
	case OpContains:
		return strings.Contains(attr, candidate)
	case OpStartsWith:
		return strings.HasPrefix(attr, candidate)
	case OpEndsWith:
		return strings.HasSuffix(attr, candidate)
	case OpRegex:
		matched, err := regexp.MatchString(candidate, attr)
		return err == nil && matched
	default:
		// Unknown operators never match rather than failing the evaluation.
		return false
	}
}
