package domain

import "errors"

var (
	// ErrCatalogNotFound indicates the assessment catalog could not be loaded.
	ErrCatalogNotFound = errors.New("assessment catalog not found")
	// ErrAssistantNotConfigured is returned when the completion service has no API key.
	ErrAssistantNotConfigured = errors.New("assistant not configured")
	// ErrRelayNotConfigured is returned when the workspace-notes relay has no credentials.
	ErrRelayNotConfigured = errors.New("lead relay not configured")
	// ErrMissingLeadFields is returned when a lead lacks name or email.
	ErrMissingLeadFields = errors.New("name and email are required")
	// ErrRateLimited signals a fixed-window counter was exhausted.
	ErrRateLimited = errors.New("rate limit exceeded")
)
