package model

type ResolutionRequest struct {
	Reference string `json:"code_or_id_or_url" validate:"notblank"`
}
