package model

type PostPage struct {
	Posts []*Post `json:"posts"`
	Page  int     `json:"page"`
	Limit int     `json:"limit"`
}

// IsLast reports whether this page ends the feed: the server signals
// exhaustion by returning fewer posts than were asked for.
func (p *PostPage) IsLast() bool {
	return len(p.Posts) < p.Limit
}
