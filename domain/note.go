// domain/note.go
package domain

import "time"

type Note struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Title     string    `json:"title"`
	Content   string    `json:"content,omitempty"`
	FolderID  string    `json:"folderId,omitempty"`
	Tags      []string  `json:"tags"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NoteQuery filters a note listing. Zero values mean "no filter".
type NoteQuery struct {
	FolderID   string
	TagID      string
	SearchTerm string
}
