// Package domain provides shared domain-level sentinel errors.
package domain

import "errors"

// ErrNotFound indicates the requested entity or route does not exist.
var ErrNotFound = errors.New("not found")

// ErrValidation indicates caller input failed validation.
var ErrValidation = errors.New("validation error")

// ErrAuth indicates the provider rejected the configured credential.
var ErrAuth = errors.New("provider authentication failed")

// ErrRateLimited indicates the provider throttled the request.
var ErrRateLimited = errors.New("provider rate limit exceeded")

// ErrModelDecommissioned indicates the provider no longer serves a configured model.
var ErrModelDecommissioned = errors.New("model decommissioned")

// ErrUpstream indicates the provider could not produce a usable result.
var ErrUpstream = errors.New("upstream error")
