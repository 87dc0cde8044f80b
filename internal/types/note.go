package types

import (
	"strings"
	"time"
)

// Tag is a label attached to a note. Manual tags come from the user;
// inferred tags are assigned by the classifier and may be replaced on
// the next save.
type Tag struct {
	Name   string `json:"name"`
	Manual bool   `json:"manual"`
}

type Document struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// ContextualDocument is a document together with its tags, the unit
// returned by read and list operations.
type ContextualDocument struct {
	Document `json:"document"`
	Tags     []Tag `json:"tags"`
}

func (d ContextualDocument) Clone() ContextualDocument {
	out := d
	out.Tags = append([]Tag(nil), d.Tags...)
	return out
}

// NoteRecord is the stored form of a note, including bookkeeping the
// wire types do not carry.
type NoteRecord struct {
	WorkspaceID int       `json:"workspace_id"`
	Title       string    `json:"title"`
	Body        string    `json:"body"`
	Tags        []Tag     `json:"tags"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (r *NoteRecord) Contextual() ContextualDocument {
	return ContextualDocument{
		Document: Document{Title: r.Title, Body: r.Body},
		Tags:     append([]Tag(nil), r.Tags...),
	}
}

// HasTag reports whether the record carries a tag with the given name,
// comparing case-insensitively.
func (r *NoteRecord) HasTag(name string) bool {
	for _, t := range r.Tags {
		if strings.EqualFold(strings.TrimSpace(t.Name), strings.TrimSpace(name)) {
			return true
		}
	}
	return false
}
