package access

import (
	"fmt"

	"printflow/internal/core/domain/model/order"
	"printflow/internal/pkg/errs"
)

// Scope is the print-type vocabulary of permission rules. It differs
// from the order print-type vocabulary: rules use cover/content/both/all
// while orders use cover/content/cover_content. Matching is exact string
// comparison plus the "all" wildcard, so ScopeBoth matches no order
// print type that actually exists. The mismatch is kept until the rule
// taxonomy is migrated.
type Scope int

const (
	// ScopeUnknown represents an invalid or undefined scope.
	ScopeUnknown Scope = iota

	// ScopeCover limits a rule to cover orders.
	ScopeCover

	// ScopeContent limits a rule to content orders.
	ScopeContent

	// ScopeBoth exists in the rule vocabulary but matches no order
	// print type (orders use "cover_content").
	ScopeBoth

	// ScopeAll matches every print type.
	ScopeAll
)

func getScopeStrings() map[Scope]string {
	return map[Scope]string{
		ScopeCover:   "cover",
		ScopeContent: "content",
		ScopeBoth:    "both",
		ScopeAll:     "all",
	}
}

// ScopeFromString parses the persisted representation of a scope.
func ScopeFromString(value string) (Scope, error) {
	for s, str := range getScopeStrings() {
		if str == value {
			return s, nil
		}
	}
	return ScopeUnknown, errs.NewValueIsInvalidErrorWithCause(
		"scope is invalid",
		fmt.Errorf("%q is not a valid print-type scope", value),
	)
}

// Validate checks that the Scope is one of the defined values.
func (s Scope) Validate() error {
	if _, ok := getScopeStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"scope is invalid",
			fmt.Errorf("%d is not a valid print-type scope", s),
		)
	}
	return nil
}

// String returns the persisted representation of the scope.
func (s Scope) String() string {
	if str, ok := getScopeStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// Matches reports whether the scope covers the given order print type.
// "all" is a wildcard; everything else compares string representations
// exactly.
func (s Scope) Matches(printType order.PrintType) bool {
	if s == ScopeAll {
		return true
	}
	return s.String() == printType.String()
}
