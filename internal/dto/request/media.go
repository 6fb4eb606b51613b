package request

type RemoveMediaRequest struct {
	FileURL string `json:"fileUrl" validate:"required"`
}
