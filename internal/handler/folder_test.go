package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"studydeck/internal/domain"
	"studydeck/internal/domain/models"
	"studydeck/internal/domain/services"
	"studydeck/internal/httputil"
)

// stubFolderService lets each test supply only the method it exercises
type stubFolderService struct {
	create          func(ctx context.Context, userID string, req *services.CreateFolderRequest) (*models.Folder, error)
	get             func(ctx context.Context, userID, folderID string) (*models.Folder, error)
	rename          func(ctx context.Context, userID, folderID, newName string) (*models.Folder, error)
	move            func(ctx context.Context, userID, folderID string, newParentID *string) (*models.Folder, error)
	deleteFn        func(ctx context.Context, userID, folderID string) (bool, error)
	getPath         func(ctx context.Context, userID, folderID string) ([]models.Folder, error)
	listChildren    func(ctx context.Context, userID string, parentID *string, opts *models.ListOptions) (*services.FolderContents, error)
	listDescendants func(ctx context.Context, userID, folderID string) ([]models.Folder, error)
}

func (s *stubFolderService) CreateFolder(ctx context.Context, userID string, req *services.CreateFolderRequest) (*models.Folder, error) {
	return s.create(ctx, userID, req)
}
func (s *stubFolderService) GetFolder(ctx context.Context, userID, folderID string) (*models.Folder, error) {
	return s.get(ctx, userID, folderID)
}
func (s *stubFolderService) RenameFolder(ctx context.Context, userID, folderID, newName string) (*models.Folder, error) {
	return s.rename(ctx, userID, folderID, newName)
}
func (s *stubFolderService) MoveFolder(ctx context.Context, userID, folderID string, newParentID *string) (*models.Folder, error) {
	return s.move(ctx, userID, folderID, newParentID)
}
func (s *stubFolderService) DeleteFolder(ctx context.Context, userID, folderID string) (bool, error) {
	return s.deleteFn(ctx, userID, folderID)
}
func (s *stubFolderService) GetPath(ctx context.Context, userID, folderID string) ([]models.Folder, error) {
	return s.getPath(ctx, userID, folderID)
}
func (s *stubFolderService) ListChildren(ctx context.Context, userID string, parentID *string, opts *models.ListOptions) (*services.FolderContents, error) {
	return s.listChildren(ctx, userID, parentID, opts)
}
func (s *stubFolderService) ListDescendants(ctx context.Context, userID, folderID string) ([]models.Folder, error) {
	return s.listDescendants(ctx, userID, folderID)
}

func newTestMux(svc services.FolderService) *http.ServeMux {
	h := NewFolderHandler(svc, testLogger())
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/folders", h.CreateFolder)
	mux.HandleFunc("GET /api/folders", h.ListFolders)
	mux.HandleFunc("GET /api/folders/{id}", h.GetFolder)
	mux.HandleFunc("PATCH /api/folders/{id}", h.RenameFolder)
	mux.HandleFunc("POST /api/folders/{id}/move", h.MoveFolder)
	mux.HandleFunc("DELETE /api/folders/{id}", h.DeleteFolder)
	mux.HandleFunc("GET /api/folders/{id}/path", h.GetFolderPath)
	mux.HandleFunc("GET /api/folders/{id}/descendants", h.ListDescendants)
	return mux
}

func doRequest(mux *http.ServeMux, method, target, body string) *httptest.ResponseRecorder {
	var r *http.Request
	if body != "" {
		r = httptest.NewRequest(method, target, strings.NewReader(body))
		r.Header.Set("Content-Type", "application/json")
	} else {
		r = httptest.NewRequest(method, target, nil)
	}
	r = httputil.WithUserID(r, "user-1")
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, r)
	return w
}

func TestCreateFolderHandler(t *testing.T) {
	svc := &stubFolderService{
		create: func(_ context.Context, userID string, req *services.CreateFolderRequest) (*models.Folder, error) {
			if userID != "user-1" {
				t.Errorf("userID = %q", userID)
			}
			return &models.Folder{ID: "folder-1", Name: req.Name, Path: "/" + req.Name}, nil
		},
	}

	w := doRequest(newTestMux(svc), http.MethodPost, "/api/folders", `{"name": "Biology"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", w.Code)
	}

	var folder models.Folder
	if err := json.Unmarshal(w.Body.Bytes(), &folder); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if folder.Path != "/Biology" {
		t.Errorf("path = %q, want /Biology", folder.Path)
	}
}

func TestCreateFolderHandlerConflict(t *testing.T) {
	svc := &stubFolderService{
		create: func(_ context.Context, _ string, _ *services.CreateFolderRequest) (*models.Folder, error) {
			return nil, &domain.ConflictError{
				Message:      "a folder named \"Biology\" already exists in this location",
				ResourceType: "folder",
				ResourceID:   "folder-9",
			}
		},
	}

	w := doRequest(newTestMux(svc), http.MethodPost, "/api/folders", `{"name": "Biology"}`)
	if w.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409", w.Code)
	}

	var problem map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &problem); err != nil {
		t.Fatalf("decode problem: %v", err)
	}
	if problem["resource_id"] != "folder-9" {
		t.Errorf("resource_id = %v, want folder-9", problem["resource_id"])
	}
}

func TestMoveFolderHandler(t *testing.T) {
	var gotParent *string
	called := false
	svc := &stubFolderService{
		move: func(_ context.Context, _, folderID string, newParentID *string) (*models.Folder, error) {
			called = true
			gotParent = newParentID
			return &models.Folder{ID: folderID, Name: "Exams", Path: "/Exams"}, nil
		},
	}
	mux := newTestMux(svc)

	// Explicit null moves to root
	w := doRequest(mux, http.MethodPost, "/api/folders/folder-1/move", `{"parent_id": null}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if !called || gotParent != nil {
		t.Errorf("move called=%v parent=%v, want called with nil parent", called, gotParent)
	}

	// Absent parent_id is a client error, not a root move
	called = false
	w = doRequest(mux, http.MethodPost, "/api/folders/folder-1/move", `{}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status for absent parent_id = %d, want 400", w.Code)
	}
	if called {
		t.Error("service called despite missing parent_id")
	}
}

func TestMoveFolderHandlerInvalidMove(t *testing.T) {
	svc := &stubFolderService{
		move: func(_ context.Context, _, _ string, _ *string) (*models.Folder, error) {
			return nil, &domain.InvalidMoveError{
				Message: "cannot move a folder into its own subtree",
				Reason:  domain.MoveReasonDescendant,
			}
		},
	}

	w := doRequest(newTestMux(svc), http.MethodPost, "/api/folders/folder-1/move", `{"parent_id": "folder-2"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}

	var problem map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &problem); err != nil {
		t.Fatalf("decode problem: %v", err)
	}
	if problem["reason"] != domain.MoveReasonDescendant {
		t.Errorf("reason = %v, want %q", problem["reason"], domain.MoveReasonDescendant)
	}
}

func TestDeleteFolderHandler(t *testing.T) {
	svc := &stubFolderService{
		deleteFn: func(_ context.Context, _, folderID string) (bool, error) {
			return folderID == "folder-1", nil
		},
	}
	mux := newTestMux(svc)

	w := doRequest(mux, http.MethodDelete, "/api/folders/folder-1", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var body map[string]bool
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !body["deleted"] {
		t.Error("deleted = false, want true")
	}

	w = doRequest(mux, http.MethodDelete, "/api/folders/missing", "")
	if w.Code != http.StatusNotFound {
		t.Errorf("status for missing folder = %d, want 404", w.Code)
	}
}

func TestGetFolderPathHandlerMissing(t *testing.T) {
	svc := &stubFolderService{
		getPath: func(_ context.Context, _, _ string) ([]models.Folder, error) {
			return []models.Folder{}, nil
		},
	}

	w := doRequest(newTestMux(svc), http.MethodGet, "/api/folders/missing/path", "")
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}

func TestListFoldersHandlerPagination(t *testing.T) {
	var gotOpts *models.ListOptions
	var gotParent *string
	svc := &stubFolderService{
		listChildren: func(_ context.Context, _ string, parentID *string, opts *models.ListOptions) (*services.FolderContents, error) {
			gotParent = parentID
			gotOpts = opts
			return &services.FolderContents{
				Folders:   []models.Folder{},
				Documents: []models.Document{},
				Page:      opts.Page,
				PageSize:  opts.PageSize,
			}, nil
		},
	}
	mux := newTestMux(svc)

	w := doRequest(mux, http.MethodGet, "/api/folders?parent_id=folder-1&page=2&page_size=10", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if gotParent == nil || *gotParent != "folder-1" {
		t.Errorf("parent = %v, want folder-1", gotParent)
	}
	if gotOpts.Page != 2 || gotOpts.PageSize != 10 {
		t.Errorf("opts = %+v, want page 2 size 10", gotOpts)
	}

	w = doRequest(mux, http.MethodGet, "/api/folders?page=nope", "")
	if w.Code != http.StatusBadRequest {
		t.Errorf("status for bad page = %d, want 400", w.Code)
	}
}

func TestHandlersRequireAuthentication(t *testing.T) {
	mux := newTestMux(&stubFolderService{})

	r := httptest.NewRequest(http.MethodGet, "/api/folders/folder-1", nil)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, r)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("status without user = %d, want 401", w.Code)
	}
}
