package model

type MediaVariant struct {
	URL    string `json:"url"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Type   int    `json:"type"`
}

// The primary post occupies index 0 of a provider's item list.
type MediaItem struct {
	Variants []MediaVariant `json:"variants"`
}
