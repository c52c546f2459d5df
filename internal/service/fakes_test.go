package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"

	"studydeck/internal/domain"
	"studydeck/internal/domain/models"
	"studydeck/internal/domain/repositories"
)

// In-memory repository fakes used by the service tests. They mirror the
// postgres implementations' contracts: user scoping everywhere, (nil, nil)
// for an absent sibling, NotFoundError for missing rows.

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fakeFolderRepo struct {
	seq     int
	folders map[string]*models.Folder
}

func newFakeFolderRepo() *fakeFolderRepo {
	return &fakeFolderRepo{folders: make(map[string]*models.Folder)}
}

func (r *fakeFolderRepo) Create(_ context.Context, folder *models.Folder) error {
	if folder.ID == "" {
		r.seq++
		folder.ID = fmt.Sprintf("folder-%d", r.seq)
	}
	cp := *folder
	r.folders[folder.ID] = &cp
	return nil
}

func (r *fakeFolderRepo) GetByID(_ context.Context, id, userID string) (*models.Folder, error) {
	f, ok := r.folders[id]
	if !ok || f.UserID != userID {
		return nil, &domain.NotFoundError{Message: "folder not found"}
	}
	cp := *f
	return &cp, nil
}

func (r *fakeFolderRepo) GetByIDForUpdate(ctx context.Context, id, userID string) (*models.Folder, error) {
	return r.GetByID(ctx, id, userID)
}

func (r *fakeFolderRepo) GetByNameAndParent(_ context.Context, userID, name string, parentID *string) (*models.Folder, error) {
	for _, f := range r.folders {
		if f.UserID == userID && f.Name == name && sameParent(f.ParentID, parentID) {
			cp := *f
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeFolderRepo) Update(_ context.Context, folder *models.Folder) error {
	if _, ok := r.folders[folder.ID]; !ok {
		return &domain.NotFoundError{Message: "folder not found"}
	}
	cp := *folder
	r.folders[folder.ID] = &cp
	return nil
}

func (r *fakeFolderRepo) Delete(_ context.Context, id, userID string) (bool, error) {
	f, ok := r.folders[id]
	if !ok || f.UserID != userID {
		return false, nil
	}
	delete(r.folders, id)
	return true, nil
}

func (r *fakeFolderRepo) ListChildren(_ context.Context, userID string, parentID *string, opts *models.ListOptions) ([]models.Folder, error) {
	var out []models.Folder
	for _, f := range r.folders {
		if f.UserID == userID && sameParent(f.ParentID, parentID) {
			out = append(out, *f)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })

	offset := opts.Offset()
	if offset >= len(out) {
		return nil, nil
	}
	end := offset + opts.PageSize
	if end > len(out) {
		end = len(out)
	}
	return out[offset:end], nil
}

func (r *fakeFolderRepo) ListDescendants(_ context.Context, userID, path string) ([]models.Folder, error) {
	var out []models.Folder
	for _, f := range r.folders {
		if f.UserID == userID && IsWithin(f.Path, path) {
			out = append(out, *f)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out, nil
}

func (r *fakeFolderRepo) GetAncestors(_ context.Context, userID, path string) ([]models.Folder, error) {
	var out []models.Folder
	for _, f := range r.folders {
		if f.UserID == userID && (f.Path == path || IsWithin(path, f.Path)) {
			out = append(out, *f)
		}
	}
	sort.Slice(out, func(i, j int) bool { return len(out[i].Path) < len(out[j].Path) })
	return out, nil
}

func (r *fakeFolderRepo) RewriteDescendantPaths(_ context.Context, userID, oldPath, newPath string) (int64, error) {
	var n int64
	for _, f := range r.folders {
		if f.UserID == userID && IsWithin(f.Path, oldPath) {
			f.Path = ReplacePathPrefix(f.Path, oldPath, newPath)
			n++
		}
	}
	return n, nil
}

func (r *fakeFolderRepo) DeleteDescendants(_ context.Context, userID, path string) (int64, error) {
	var n int64
	for id, f := range r.folders {
		if f.UserID == userID && IsWithin(f.Path, path) {
			delete(r.folders, id)
			n++
		}
	}
	return n, nil
}

func (r *fakeFolderRepo) GetAllByUser(_ context.Context, userID string) ([]models.Folder, error) {
	var out []models.Folder
	for _, f := range r.folders {
		if f.UserID == userID {
			out = append(out, *f)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out, nil
}

type fakeDocRepo struct {
	seq  int
	docs map[string]*models.Document
}

func newFakeDocRepo() *fakeDocRepo {
	return &fakeDocRepo{docs: make(map[string]*models.Document)}
}

func (r *fakeDocRepo) Create(_ context.Context, doc *models.Document) error {
	if doc.ID == "" {
		r.seq++
		doc.ID = fmt.Sprintf("doc-%d", r.seq)
	}
	cp := *doc
	r.docs[doc.ID] = &cp
	return nil
}

func (r *fakeDocRepo) GetByID(_ context.Context, id, userID string) (*models.Document, error) {
	d, ok := r.docs[id]
	if !ok || d.UserID != userID {
		return nil, &domain.NotFoundError{Message: "document not found"}
	}
	cp := *d
	return &cp, nil
}

func (r *fakeDocRepo) Update(_ context.Context, doc *models.Document) error {
	if _, ok := r.docs[doc.ID]; !ok {
		return &domain.NotFoundError{Message: "document not found"}
	}
	cp := *doc
	r.docs[doc.ID] = &cp
	return nil
}

func (r *fakeDocRepo) Delete(_ context.Context, id, userID string) (bool, error) {
	d, ok := r.docs[id]
	if !ok || d.UserID != userID {
		return false, nil
	}
	delete(r.docs, id)
	return true, nil
}

func (r *fakeDocRepo) ListByFolder(_ context.Context, userID string, folderID *string) ([]models.Document, error) {
	var out []models.Document
	for _, d := range r.docs {
		if d.UserID == userID && sameParent(d.FolderID, folderID) {
			out = append(out, *d)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *fakeDocRepo) DeleteByFolderIDs(_ context.Context, userID string, folderIDs []string) ([]string, error) {
	members := make(map[string]bool, len(folderIDs))
	for _, id := range folderIDs {
		members[id] = true
	}

	var keys []string
	for id, d := range r.docs {
		if d.UserID == userID && d.FolderID != nil && members[*d.FolderID] {
			keys = append(keys, d.StorageKey)
			delete(r.docs, id)
		}
	}
	sort.Strings(keys)
	return keys, nil
}

func (r *fakeDocRepo) GetAllByUser(_ context.Context, userID string) ([]models.Document, error) {
	var out []models.Document
	for _, d := range r.docs {
		if d.UserID == userID {
			out = append(out, *d)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// fakeTxManager runs the function directly; the fakes have no transactions
type fakeTxManager struct{}

func (fakeTxManager) ExecTx(ctx context.Context, fn repositories.TxFn) error {
	return fn(ctx)
}

// fakeBlobStore records uploads and deletes
type fakeBlobStore struct {
	uploaded []string
	deleted  []string
	failNext bool
}

func (b *fakeBlobStore) Upload(_ context.Context, key, _ string, body io.Reader, _ int64) error {
	if b.failNext {
		b.failNext = false
		return fmt.Errorf("upload refused")
	}
	if body != nil {
		io.Copy(io.Discard, body)
	}
	b.uploaded = append(b.uploaded, key)
	return nil
}

func (b *fakeBlobStore) Delete(_ context.Context, key string) error {
	b.deleted = append(b.deleted, key)
	return nil
}

func (b *fakeBlobStore) FileURL(key string) string {
	return "https://files.test/" + key
}
