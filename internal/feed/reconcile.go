// Package feed reconciles a newest-first post list fed by two independent
// sources: a paged pull-fetch and a push-event stream. The pure functions in
// this file each return a fresh slice and never mutate their input, so they
// can be applied against the current list state at any point without
// invalidating snapshots already handed out.
package feed

import "feedwatch/internal/model"

// ApplyCreated prepends the post unless its id is already present. The
// duplicate case covers the author's own optimistic insert racing the push
// event for the same post.
func ApplyCreated(list []*model.Post, post *model.Post) []*model.Post {
	if post == nil || post.ID == "" {
		return list
	}
	for _, p := range list {
		if p.ID == post.ID {
			return list
		}
	}

	result := make([]*model.Post, 0, len(list)+1)
	result = append(result, post)
	result = append(result, list...)
	return result
}

// ApplyUpdated replaces the entry matching the post's id. Absent id is a
// no-op: an update can arrive before its create if the channel reorders, and
// tolerating that beats erroring.
func ApplyUpdated(list []*model.Post, post *model.Post) []*model.Post {
	if post == nil || post.ID == "" {
		return list
	}

	for i, p := range list {
		if p.ID == post.ID {
			result := make([]*model.Post, len(list))
			copy(result, list)
			result[i] = post
			return result
		}
	}
	return list
}

// ApplyDeleted removes the entry matching id. Absent id is a no-op.
func ApplyDeleted(list []*model.Post, id string) []*model.Post {
	if id == "" {
		return list
	}

	for i, p := range list {
		if p.ID == id {
			result := make([]*model.Post, 0, len(list)-1)
			result = append(result, list[:i]...)
			result = append(result, list[i+1:]...)
			return result
		}
	}
	return list
}

// MergePage appends only the posts whose id is not already in the list.
// Callers must pass the list as it stands when the page response arrives,
// not as it stood when the fetch started, so a post deleted or pushed in the
// meantime is neither resurrected nor duplicated.
func MergePage(list []*model.Post, page []*model.Post) []*model.Post {
	if len(page) == 0 {
		return list
	}

	seen := make(map[string]struct{}, len(list))
	for _, p := range list {
		seen[p.ID] = struct{}{}
	}

	result := make([]*model.Post, len(list), len(list)+len(page))
	copy(result, list)
	for _, p := range page {
		if p == nil || p.ID == "" {
			continue
		}
		if _, dup := seen[p.ID]; dup {
			continue
		}
		seen[p.ID] = struct{}{}
		result = append(result, p)
	}
	return result
}

// ApplyEvent dispatches one push event against the list.
func ApplyEvent(list []*model.Post, event *model.FeedEvent) []*model.Post {
	if event == nil {
		return list
	}

	switch event.Type {
	case model.EventPostCreated:
		return ApplyCreated(list, event.Post)
	case model.EventPostUpdated:
		return ApplyUpdated(list, event.Post)
	case model.EventPostDeleted:
		return ApplyDeleted(list, event.PostID())
	}
	return list
}
