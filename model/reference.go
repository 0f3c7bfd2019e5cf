package model

// How a reference was written by the user. Only used for logging; the provider
// accepts all of these interchangeably.
type ReferenceKind string

const (
	ReferenceKindURL       ReferenceKind = "URL"
	ReferenceKindNumericID ReferenceKind = "NUMERIC_ID"
	ReferenceKindShortcode ReferenceKind = "SHORTCODE"
	ReferenceKindUnknown   ReferenceKind = "UNKNOWN"
)
