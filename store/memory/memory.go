// store/memory/memory.go
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/noteful/noteful-server/domain"
)

// Store is an in-memory implementation of store.Store. It enforces the
// same uniqueness invariants as the Postgres schema and backs the test
// suite plus STORE_DRIVER=memory development runs.
type Store struct {
	mu      sync.RWMutex
	users   map[string]domain.User // key: user id
	folders map[string]domain.Folder
	tags    map[string]domain.Tag
	notes   map[string]domain.Note
}

func New() *Store {
	return &Store{
		users:   make(map[string]domain.User),
		folders: make(map[string]domain.Folder),
		tags:    make(map[string]domain.Tag),
		notes:   make(map[string]domain.Note),
	}
}

func (s *Store) Close() {}

// Users

func (s *Store) CreateUser(_ context.Context, u *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.users {
		if existing.Username == u.Username {
			return domain.Conflict("The username `%s` already exists.", u.Username)
		}
	}
	now := time.Now().UTC()
	u.CreatedAt, u.UpdatedAt = now, now
	s.users[u.ID] = *u
	return nil
}

func (s *Store) UserByUsername(_ context.Context, username string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.Username == username {
			out := u
			return &out, nil
		}
	}
	return nil, domain.ErrNotFound
}

// Folders

func (s *Store) Folders(_ context.Context, userID string) ([]domain.Folder, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	folders := []domain.Folder{}
	for _, f := range s.folders {
		if f.UserID == userID {
			folders = append(folders, f)
		}
	}
	sort.Slice(folders, func(i, j int) bool { return folders[i].Name < folders[j].Name })
	return folders, nil
}

func (s *Store) FolderByID(_ context.Context, userID, id string) (*domain.Folder, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	f, ok := s.folders[id]
	if !ok || f.UserID != userID {
		return nil, domain.ErrNotFound
	}
	out := f
	return &out, nil
}

func (s *Store) CreateFolder(_ context.Context, f *domain.Folder) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.folderNameTaken(f.UserID, f.Name, "") {
		return domain.Conflict("Folder `%s` already exists (name must be unique).", f.Name)
	}
	now := time.Now().UTC()
	f.CreatedAt, f.UpdatedAt = now, now
	s.folders[f.ID] = *f
	return nil
}

func (s *Store) UpdateFolder(_ context.Context, f *domain.Folder) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.folders[f.ID]
	if !ok || existing.UserID != f.UserID {
		return domain.ErrNotFound
	}
	if s.folderNameTaken(f.UserID, f.Name, f.ID) {
		return domain.Conflict("Folder `%s` already exists (name must be unique).", f.Name)
	}
	f.CreatedAt = existing.CreatedAt
	f.UpdatedAt = time.Now().UTC()
	s.folders[f.ID] = *f
	return nil
}

func (s *Store) DeleteFolder(_ context.Context, userID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, ok := s.folders[id]
	if !ok || f.UserID != userID {
		return domain.ErrNotFound
	}
	delete(s.folders, id)
	return nil
}

func (s *Store) ClearFolderFromNotes(_ context.Context, userID, folderID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, n := range s.notes {
		if n.UserID == userID && n.FolderID == folderID {
			n.FolderID = ""
			n.UpdatedAt = time.Now().UTC()
			s.notes[id] = n
		}
	}
	return nil
}

func (s *Store) folderNameTaken(userID, name, excludeID string) bool {
	for _, f := range s.folders {
		if f.UserID == userID && f.Name == name && f.ID != excludeID {
			return true
		}
	}
	return false
}

// Tags

func (s *Store) Tags(_ context.Context, userID string) ([]domain.Tag, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tags := []domain.Tag{}
	for _, t := range s.tags {
		if t.UserID == userID {
			tags = append(tags, t)
		}
	}
	sort.Slice(tags, func(i, j int) bool { return tags[i].Name < tags[j].Name })
	return tags, nil
}

func (s *Store) TagByID(_ context.Context, userID, id string) (*domain.Tag, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.tags[id]
	if !ok || t.UserID != userID {
		return nil, domain.ErrNotFound
	}
	out := t
	return &out, nil
}

func (s *Store) CreateTag(_ context.Context, t *domain.Tag) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.tagNameTaken(t.UserID, t.Name, "") {
		return domain.Conflict("Tag `%s` already exists (name must be unique).", t.Name)
	}
	now := time.Now().UTC()
	t.CreatedAt, t.UpdatedAt = now, now
	s.tags[t.ID] = *t
	return nil
}

func (s *Store) UpdateTag(_ context.Context, t *domain.Tag) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.tags[t.ID]
	if !ok || existing.UserID != t.UserID {
		return domain.ErrNotFound
	}
	if s.tagNameTaken(t.UserID, t.Name, t.ID) {
		return domain.Conflict("Tag `%s` already exists (name must be unique).", t.Name)
	}
	t.CreatedAt = existing.CreatedAt
	t.UpdatedAt = time.Now().UTC()
	s.tags[t.ID] = *t
	return nil
}

func (s *Store) DeleteTag(_ context.Context, userID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tags[id]
	if !ok || t.UserID != userID {
		return domain.ErrNotFound
	}
	delete(s.tags, id)
	return nil
}

func (s *Store) RemoveTagFromNotes(_ context.Context, userID, tagID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, n := range s.notes {
		if n.UserID != userID {
			continue
		}
		kept := n.Tags[:0:0]
		for _, t := range n.Tags {
			if t != tagID {
				kept = append(kept, t)
			}
		}
		if len(kept) != len(n.Tags) {
			if kept == nil {
				kept = []string{}
			}
			n.Tags = kept
			n.UpdatedAt = time.Now().UTC()
			s.notes[id] = n
		}
	}
	return nil
}

func (s *Store) CountTags(_ context.Context, userID string, ids []string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := 0
	for _, id := range ids {
		if t, ok := s.tags[id]; ok && t.UserID == userID {
			n++
		}
	}
	return n, nil
}

func (s *Store) tagNameTaken(userID, name, excludeID string) bool {
	for _, t := range s.tags {
		if t.UserID == userID && t.Name == name && t.ID != excludeID {
			return true
		}
	}
	return false
}

// Notes

func (s *Store) Notes(_ context.Context, userID string, q domain.NoteQuery) ([]domain.Note, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	notes := []domain.Note{}
	for _, n := range s.notes {
		if n.UserID != userID {
			continue
		}
		if q.FolderID != "" && n.FolderID != q.FolderID {
			continue
		}
		if q.TagID != "" && !contains(n.Tags, q.TagID) {
			continue
		}
		if q.SearchTerm != "" && !strings.Contains(strings.ToLower(n.Title), strings.ToLower(q.SearchTerm)) {
			continue
		}
		notes = append(notes, cloneNote(n))
	}
	sort.Slice(notes, func(i, j int) bool { return notes[i].UpdatedAt.After(notes[j].UpdatedAt) })
	return notes, nil
}

func (s *Store) NoteByID(_ context.Context, userID, id string) (*domain.Note, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n, ok := s.notes[id]
	if !ok || n.UserID != userID {
		return nil, domain.ErrNotFound
	}
	out := cloneNote(n)
	return &out, nil
}

func (s *Store) CreateNote(_ context.Context, n *domain.Note) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if n.Tags == nil {
		n.Tags = []string{}
	}
	now := time.Now().UTC()
	n.CreatedAt, n.UpdatedAt = now, now
	s.notes[n.ID] = cloneNote(*n)
	return nil
}

func (s *Store) UpdateNote(_ context.Context, n *domain.Note) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.notes[n.ID]
	if !ok || existing.UserID != n.UserID {
		return domain.ErrNotFound
	}
	n.CreatedAt = existing.CreatedAt
	n.UpdatedAt = time.Now().UTC()
	s.notes[n.ID] = cloneNote(*n)
	return nil
}

func (s *Store) DeleteNote(_ context.Context, userID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	n, ok := s.notes[id]
	if !ok || n.UserID != userID {
		return domain.ErrNotFound
	}
	delete(s.notes, id)
	return nil
}

func cloneNote(n domain.Note) domain.Note {
	n.Tags = append([]string{}, n.Tags...)
	return n
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
