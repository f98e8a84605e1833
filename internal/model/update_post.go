package model

type UpdatePostDTO struct {
	Content   *string    `json:"content,omitempty" validate:"omitempty,max=2000"`
	MediaURL  *string    `json:"mediaUrl,omitempty" validate:"omitempty,url"`
	MediaType *MediaType `json:"mediaType,omitempty" validate:"omitempty,oneof=image video"`
}
