package models

import (
	"slices"
	"time"
)

// Blog represents a single blog post.
type Blog struct {
	ID          int       `json:"id"`
	Title       string    `json:"title"`
	Slug        string    `json:"slug"`
	Content     string    `json:"content"`
	Excerpt     string    `json:"excerpt"`
	Category    string    `json:"category"`
	Tags        []string  `json:"tags"`
	PublishedAt time.Time `json:"publishedAt"`
	ReadTime    int       `json:"readTime"`
	Featured    bool      `json:"featured"`
	IsDraft     bool      `json:"isDraft"`
}

// Clone returns a deep copy of the blog.
func (b *Blog) Clone() *Blog {
	c := *b
	c.Tags = slices.Clone(b.Tags)
	if c.Tags == nil {
		c.Tags = []string{}
	}
	return &c
}

// HasTag reports whether the blog carries the given tag.
func (b *Blog) HasTag(tag string) bool {
	return slices.Contains(b.Tags, tag)
}

// BlogPatch holds a partial blog update. Nil fields are left unchanged.
type BlogPatch struct {
	Title       *string
	Slug        *string
	Content     *string
	Excerpt     *string
	Category    *string
	Tags        *[]string
	PublishedAt *time.Time
	ReadTime    *int
	Featured    *bool
	IsDraft     *bool
}

// Apply merges the provided fields of the patch into b.
func (p BlogPatch) Apply(b *Blog) {
	if p.Title != nil {
		b.Title = *p.Title
	}
	if p.Slug != nil {
		b.Slug = *p.Slug
	}
	if p.Content != nil {
		b.Content = *p.Content
	}
	if p.Excerpt != nil {
		b.Excerpt = *p.Excerpt
	}
	if p.Category != nil {
		b.Category = *p.Category
	}
	if p.Tags != nil {
		b.Tags = slices.Clone(*p.Tags)
		if b.Tags == nil {
			b.Tags = []string{}
		}
	}
	if p.PublishedAt != nil {
		b.PublishedAt = *p.PublishedAt
	}
	if p.ReadTime != nil {
		b.ReadTime = *p.ReadTime
	}
	if p.Featured != nil {
		b.Featured = *p.Featured
	}
	if p.IsDraft != nil {
		b.IsDraft = *p.IsDraft
	}
}

// BlogFilter narrows the public blog listing.
type BlogFilter struct {
	Category string
	Tag      string
	Search   string
	Featured *bool
}
