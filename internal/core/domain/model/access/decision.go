package access

// Check records the outcome of one gate within one rule evaluation.
// The sequence of checks is captured verbatim in the audit log.
type Check struct {
	Rule   string
	Name   string
	Passed bool
	Detail string
}

// Decision is the result of evaluating an authorization request against
// an actor's roles. Checks holds every gate evaluated across all rules,
// in evaluation order, whether or not access was granted.
type Decision struct {
	Granted  bool
	RoleName string
	RuleName string
	Checks   []Check
}
