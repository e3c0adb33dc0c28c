package order

import (
	"fmt"

	"printflow/internal/pkg/errs"
)

// PrintType describes the production scope of an order: cover only,
// content only, or both. It selects the step template at order creation
// and scopes permission rules at operation time.
type PrintType int

const (
	// PrintTypeUnknown represents an invalid or undefined print type.
	PrintTypeUnknown PrintType = iota

	// PrintTypeCover is a cover-only production order.
	PrintTypeCover

	// PrintTypeContent is a content-only production order.
	PrintTypeContent

	// PrintTypeCoverContent is a combined cover and content order.
	PrintTypeCoverContent
)

func getPrintTypeStrings() map[PrintType]string {
	return map[PrintType]string{
		PrintTypeCover:        "cover",
		PrintTypeContent:      "content",
		PrintTypeCoverContent: "cover_content",
	}
}

// PrintTypeFromString parses the persisted representation of a print type.
func PrintTypeFromString(value string) (PrintType, error) {
	for pt, str := range getPrintTypeStrings() {
		if str == value {
			return pt, nil
		}
	}
	return PrintTypeUnknown, errs.NewValueIsInvalidErrorWithCause(
		"printType is invalid",
		fmt.Errorf("%q is not a valid print type", value),
	)
}

// Validate checks that the PrintType is one of the defined values.
func (p PrintType) Validate() error {
	if _, ok := getPrintTypeStrings()[p]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"printType is invalid",
			fmt.Errorf("%d is not a valid print type", p),
		)
	}
	return nil
}

// String returns the persisted representation ("cover", "content",
// "cover_content"). Safe on any value; invalid values yield "unknown".
func (p PrintType) String() string {
	if str, ok := getPrintTypeStrings()[p]; ok {
		return str
	}
	return "unknown"
}
