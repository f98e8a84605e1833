package model

import "fmt"

type MediaType string

const (
	MediaTypeImage MediaType = "image"
	MediaTypeVideo MediaType = "video"
	// MediaTypeNone marks a text-only post.
	MediaTypeNone MediaType = ""
)

func (t MediaType) IsValid() error {
	switch t {
	case MediaTypeImage, MediaTypeVideo, MediaTypeNone:
		return nil
	}
	return fmt.Errorf("invalid media type: %s", t)
}

func (t *MediaType) UnmarshalText(text []byte) error {
	mt := MediaType(text)
	if err := mt.IsValid(); err != nil {
		return err
	}
	*t = mt
	return nil
}
