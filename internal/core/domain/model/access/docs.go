// Package access contains the permission model for workflow operations:
// reusable permission rules, roles bundling those rules, and the acting
// user snapshot evaluated against them. Grants are additive only; a single
// matching active rule authorizes an operation and no deny rules exist.
// Every evaluation produces a check trail for the audit log.
package access
