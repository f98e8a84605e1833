package feed

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"feedwatch/internal/model"
)

func post(id string) *model.Post {
	return &model.Post{ID: id, Username: "user-" + id, Content: "content " + id}
}

func ids(list []*model.Post) []string {
	result := make([]string, len(list))
	for i, p := range list {
		result[i] = p.ID
	}
	return result
}

func TestApplyCreated(t *testing.T) {
	tests := []struct {
		name string
		list []*model.Post
		post *model.Post
		want []string
	}{
		{
			name: "prepends to empty list",
			list: nil,
			post: post("a"),
			want: []string{"a"},
		},
		{
			name: "prepends newest first",
			list: []*model.Post{post("a"), post("b")},
			post: post("c"),
			want: []string{"c", "a", "b"},
		},
		{
			name: "duplicate id is dropped",
			list: []*model.Post{post("a"), post("b")},
			post: post("b"),
			want: []string{"a", "b"},
		},
		{
			name: "nil post is a no-op",
			list: []*model.Post{post("a")},
			post: nil,
			want: []string{"a"},
		},
		{
			name: "missing id is a no-op",
			list: []*model.Post{post("a")},
			post: &model.Post{},
			want: []string{"a"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ApplyCreated(tt.list, tt.post)
			assert.Equal(t, tt.want, ids(got))
		})
	}
}

func TestApplyCreated_RepeatedIdsStayUnique(t *testing.T) {
	var list []*model.Post
	sequence := []string{"a", "b", "a", "c", "b", "a", "a", "c"}
	for _, id := range sequence {
		list = ApplyCreated(list, post(id))
	}

	seen := make(map[string]int)
	for _, p := range list {
		seen[p.ID]++
	}
	for id, count := range seen {
		assert.Equal(t, 1, count, "id %s appears %d times", id, count)
	}
	assert.Len(t, list, 3)
}

func TestApplyUpdated(t *testing.T) {
	tests := []struct {
		name string
		list []*model.Post
		post *model.Post
		want []string
	}{
		{
			name: "replaces matching entry",
			list: []*model.Post{post("a"), post("b"), post("c")},
			post: &model.Post{ID: "b", Content: "edited"},
			want: []string{"a", "b", "c"},
		},
		{
			name: "absent id is a no-op",
			list: []*model.Post{post("a")},
			post: post("z"),
			want: []string{"a"},
		},
		{
			name: "empty list is a no-op",
			list: nil,
			post: post("a"),
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ApplyUpdated(tt.list, tt.post)
			assert.Equal(t, tt.want, ids(got))
		})
	}
}

func TestApplyUpdated_ReplacesContentInPlace(t *testing.T) {
	list := []*model.Post{post("a"), post("b")}
	got := ApplyUpdated(list, &model.Post{ID: "b", Content: "rewritten"})

	require.Len(t, got, 2)
	assert.Equal(t, "rewritten", got[1].Content)
	// The input list is untouched.
	assert.Equal(t, "content b", list[1].Content)
}

func TestApplyDeleted(t *testing.T) {
	tests := []struct {
		name string
		list []*model.Post
		id   string
		want []string
	}{
		{
			name: "removes matching entry",
			list: []*model.Post{post("a"), post("b"), post("c")},
			id:   "b",
			want: []string{"a", "c"},
		},
		{
			name: "absent id is a no-op",
			list: []*model.Post{post("a")},
			id:   "z",
			want: []string{"a"},
		},
		{
			name: "empty id is a no-op",
			list: []*model.Post{post("a")},
			id:   "",
			want: []string{"a"},
		},
		{
			name: "removes head",
			list: []*model.Post{post("a"), post("b")},
			id:   "a",
			want: []string{"b"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ApplyDeleted(tt.list, tt.id)
			assert.Equal(t, tt.want, ids(got))
		})
	}
}

func TestMergePage(t *testing.T) {
	tests := []struct {
		name string
		list []*model.Post
		page []*model.Post
		want []string
	}{
		{
			name: "appends new posts",
			list: []*model.Post{post("a"), post("b")},
			page: []*model.Post{post("c"), post("d")},
			want: []string{"a", "b", "c", "d"},
		},
		{
			name: "skips ids already present",
			list: []*model.Post{post("a"), post("b")},
			page: []*model.Post{post("b"), post("c")},
			want: []string{"a", "b", "c"},
		},
		{
			name: "empty page is a no-op",
			list: []*model.Post{post("a")},
			page: nil,
			want: []string{"a"},
		},
		{
			name: "duplicate ids inside the page collapse",
			list: nil,
			page: []*model.Post{post("a"), post("a"), post("b")},
			want: []string{"a", "b"},
		},
		{
			name: "nil entries in the page are skipped",
			list: []*model.Post{post("a")},
			page: []*model.Post{nil, post("b")},
			want: []string{"a", "b"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MergePage(tt.list, tt.page)
			assert.Equal(t, tt.want, ids(got))
		})
	}
}

// TestReconciliationScenario walks the documented end-to-end sequence:
// [A,B,C] + created D, duplicate created D, deleted B, updated A.
func TestReconciliationScenario(t *testing.T) {
	list := []*model.Post{post("A"), post("B"), post("C")}

	list = ApplyEvent(list, &model.FeedEvent{Type: model.EventPostCreated, Post: post("D")})
	assert.Equal(t, []string{"D", "A", "B", "C"}, ids(list))

	list = ApplyEvent(list, &model.FeedEvent{Type: model.EventPostCreated, Post: post("D")})
	assert.Equal(t, []string{"D", "A", "B", "C"}, ids(list))

	list = ApplyEvent(list, &model.FeedEvent{Type: model.EventPostDeleted, Post: &model.Post{ID: "B"}})
	assert.Equal(t, []string{"D", "A", "C"}, ids(list))

	updated := &model.Post{ID: "A", Content: "new content"}
	list = ApplyEvent(list, &model.FeedEvent{Type: model.EventPostUpdated, Post: updated})
	assert.Equal(t, []string{"D", "A", "C"}, ids(list))
	assert.Equal(t, "new content", list[1].Content)
}

func TestApplyEvent_NilAndUnknown(t *testing.T) {
	list := []*model.Post{post("a")}

	assert.Equal(t, ids(list), ids(ApplyEvent(list, nil)))
	assert.Equal(t, ids(list), ids(ApplyEvent(list, &model.FeedEvent{Type: "post:liked", Post: post("b")})))
}
