// Package order contains the printing order aggregate and its production
// steps. An Order owns an ordered set of Steps split into the cover and
// content pipelines; its status is derived from the statuses of those steps.
// All mutation goes through the aggregate's validated methods.
package order
