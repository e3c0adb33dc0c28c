package kernel

import (
	"strings"

	"printflow/internal/pkg/errs"
)

// maxOrderNoLength matches the order_no column width.
const maxOrderNoLength = 32

// ErrOrderNoIsNotConstructed indicates an OrderNo zero value that bypassed
// the constructor.
var ErrOrderNoIsNotConstructed = errs.NewValueIsRequiredError("order number must be created via NewOrderNo")

// OrderNo is the business identifier of a printing order, unique across the
// system and chosen by the order desk (e.g. "PO-2024-0917"). It is distinct
// from the technical UUID: operators, work orders and the audit trail all
// reference orders by this number.
type OrderNo struct {
	value string
}

// NewOrderNo validates and creates an order number. The value must be
// non-blank and at most 32 characters; surrounding whitespace is trimmed.
func NewOrderNo(value string) (OrderNo, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return OrderNo{}, errs.NewValueIsRequiredError("orderNo")
	}
	if len(trimmed) > maxOrderNoLength {
		return OrderNo{}, errs.NewValueIsOutOfRangeError("orderNo length", len(trimmed), 1, maxOrderNoLength)
	}
	return OrderNo{value: trimmed}, nil
}

// String returns the order number text.
func (n OrderNo) String() string {
	return n.value
}

// IsEqual reports whether two order numbers are the same.
func (n OrderNo) IsEqual(other OrderNo) bool {
	return n.value == other.value
}

// Validate returns ErrOrderNoIsNotConstructed for the zero value.
func (n OrderNo) Validate() error {
	if n.value == "" {
		return ErrOrderNoIsNotConstructed
	}
	return nil
}
