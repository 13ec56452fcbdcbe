// Package resource bounds the resources consumed while loading documents:
// concurrent builds, memory held by packed fingerprint words and the rate of
// fingerprint generation calls.
//
// A nil *Controller is valid and imposes no limits.
package resource
