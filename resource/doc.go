// Package resource bounds the memory, worker slots and IO bandwidth used by
// searches and database loads.
//
// A nil *Controller imposes no limits.
package resource
