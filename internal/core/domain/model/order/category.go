package order

import (
	"fmt"

	"printflow/internal/pkg/errs"
)

// StepCategory identifies which production pipeline a step belongs to.
// Cover and content are independently ordered chains within one order.
type StepCategory int

const (
	// CategoryUnknown represents an invalid or undefined category.
	CategoryUnknown StepCategory = iota

	// CategoryCover is the cover production pipeline.
	CategoryCover

	// CategoryContent is the content production pipeline.
	CategoryContent
)

func getCategoryStrings() map[StepCategory]string {
	return map[StepCategory]string{
		CategoryCover:   "cover",
		CategoryContent: "content",
	}
}

// CategoryFromString parses the persisted representation of a category.
func CategoryFromString(value string) (StepCategory, error) {
	for c, str := range getCategoryStrings() {
		if str == value {
			return c, nil
		}
	}
	return CategoryUnknown, errs.NewValueIsInvalidErrorWithCause(
		"category is invalid",
		fmt.Errorf("%q is not a valid step category", value),
	)
}

// Validate checks that the StepCategory is one of the defined values.
func (c StepCategory) Validate() error {
	if _, ok := getCategoryStrings()[c]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"category is invalid",
			fmt.Errorf("%d is not a valid step category", c),
		)
	}
	return nil
}

// String returns the persisted representation ("cover" or "content").
func (c StepCategory) String() string {
	if str, ok := getCategoryStrings()[c]; ok {
		return str
	}
	return "unknown"
}
