package provider

import "github.com/truemediaorg/reelrelay/model"

const StatusOK = "ok"

type VideoVersion struct {
	URL    string `json:"url"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Type   int    `json:"type"`
}

type MediaInfoItem struct {
	VideoVersions []VideoVersion `json:"video_versions"`
}

type MediaInfoData struct {
	Items []MediaInfoItem `json:"items"`
}

/*
The provider only guarantees this shape when Status == "ok":

	Data.Items holds the post (index 0) and, for carousels, the remaining entries.
	VideoVersions is absent for photo posts.

Any other Status means the lookup failed upstream and Data should be ignored.
*/
type MediaInfoResponse struct {
	Status string        `json:"status"`
	Data   MediaInfoData `json:"data"`
}

func (r MediaInfoResponse) Items() []model.MediaItem {
	items := make([]model.MediaItem, 0, len(r.Data.Items))
	for _, item := range r.Data.Items {
		variants := make([]model.MediaVariant, 0, len(item.VideoVersions))
		for _, version := range item.VideoVersions {
			variants = append(variants, model.MediaVariant{
				URL:    version.URL,
				Width:  version.Width,
				Height: version.Height,
				Type:   version.Type,
			})
		}
		items = append(items, model.MediaItem{Variants: variants})
	}
	return items
}
