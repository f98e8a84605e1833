package model

type CreatePostDTO struct {
	Content   string    `json:"content" validate:"required,max=2000"`
	MediaURL  string    `json:"mediaUrl,omitempty" validate:"omitempty,url"`
	MediaType MediaType `json:"mediaType,omitempty" validate:"required_with=MediaURL,omitempty,oneof=image video"`
}
