// store/store.go
package store

import (
	"context"

	"github.com/noteful/noteful-server/domain"
)

// Store is the storage contract the HTTP layer runs against. Every entity
// operation is scoped to an owner; a missing or foreign-owned entity is
// domain.ErrNotFound either way. Implementations must be safe for
// concurrent use.
type Store interface {
	// Users
	CreateUser(ctx context.Context, u *domain.User) error
	UserByUsername(ctx context.Context, username string) (*domain.User, error)

	// Folders
	Folders(ctx context.Context, userID string) ([]domain.Folder, error)
	FolderByID(ctx context.Context, userID, id string) (*domain.Folder, error)
	CreateFolder(ctx context.Context, f *domain.Folder) error
	UpdateFolder(ctx context.Context, f *domain.Folder) error
	DeleteFolder(ctx context.Context, userID, id string) error
	// ClearFolderFromNotes unsets the folder reference on every note the
	// user owns that references folderID. Cascade step after DeleteFolder.
	ClearFolderFromNotes(ctx context.Context, userID, folderID string) error

	// Tags
	Tags(ctx context.Context, userID string) ([]domain.Tag, error)
	TagByID(ctx context.Context, userID, id string) (*domain.Tag, error)
	CreateTag(ctx context.Context, t *domain.Tag) error
	UpdateTag(ctx context.Context, t *domain.Tag) error
	DeleteTag(ctx context.Context, userID, id string) error
	// RemoveTagFromNotes pulls tagID out of the tag set of every note the
	// user owns. Cascade step after DeleteTag.
	RemoveTagFromNotes(ctx context.Context, userID, tagID string) error
	// CountTags counts how many of ids exist as tags owned by userID.
	CountTags(ctx context.Context, userID string, ids []string) (int, error)

	// Notes
	Notes(ctx context.Context, userID string, q domain.NoteQuery) ([]domain.Note, error)
	NoteByID(ctx context.Context, userID, id string) (*domain.Note, error)
	CreateNote(ctx context.Context, n *domain.Note) error
	UpdateNote(ctx context.Context, n *domain.Note) error
	DeleteNote(ctx context.Context, userID, id string) error

	Close()
}
