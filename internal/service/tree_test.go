package service

import (
	"context"
	"testing"

	"studydeck/internal/domain/models"
)

func TestGetTreeNestsFoldersAndDocuments(t *testing.T) {
	folderRepo := newFakeFolderRepo()
	docRepo := newFakeDocRepo()
	ctx := context.Background()

	bio := &models.Folder{UserID: "user-1", Name: "Biology", Path: "/Biology"}
	folderRepo.Create(ctx, bio)
	exams := &models.Folder{UserID: "user-1", ParentID: &bio.ID, Name: "Exams", Path: "/Biology/Exams"}
	folderRepo.Create(ctx, exams)
	chem := &models.Folder{UserID: "user-1", Name: "Chemistry", Path: "/Chemistry"}
	folderRepo.Create(ctx, chem)

	docRepo.Create(ctx, &models.Document{UserID: "user-1", FolderID: &exams.ID, Name: "final.pdf"})
	docRepo.Create(ctx, &models.Document{UserID: "user-1", Name: "todo.txt"}) // unfiled

	// Another user's data must not leak in
	folderRepo.Create(ctx, &models.Folder{UserID: "user-2", Name: "Physics", Path: "/Physics"})

	svc := NewTreeService(folderRepo, docRepo, testLogger())
	tree, err := svc.GetTree(ctx, "user-1")
	if err != nil {
		t.Fatalf("GetTree failed: %v", err)
	}

	if len(tree.Folders) != 2 {
		t.Fatalf("root folders = %d, want 2", len(tree.Folders))
	}
	if len(tree.Documents) != 1 || tree.Documents[0].Name != "todo.txt" {
		t.Errorf("root documents = %+v, want the unfiled one", tree.Documents)
	}

	var bioNode *models.FolderTreeNode
	for _, n := range tree.Folders {
		if n.ID == bio.ID {
			bioNode = n
		}
	}
	if bioNode == nil {
		t.Fatal("Biology missing from root folders")
	}
	if len(bioNode.Folders) != 1 || bioNode.Folders[0].Name != "Exams" {
		t.Fatalf("Biology children = %+v, want [Exams]", bioNode.Folders)
	}
	examsNode := bioNode.Folders[0]
	if len(examsNode.Documents) != 1 || examsNode.Documents[0].Name != "final.pdf" {
		t.Errorf("Exams documents = %+v, want [final.pdf]", examsNode.Documents)
	}
}

func TestGetTreeEmptyUser(t *testing.T) {
	svc := NewTreeService(newFakeFolderRepo(), newFakeDocRepo(), testLogger())

	tree, err := svc.GetTree(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("GetTree failed: %v", err)
	}
	if len(tree.Folders) != 0 || len(tree.Documents) != 0 {
		t.Errorf("empty tree = %+v", tree)
	}
	if tree.Folders == nil || tree.Documents == nil {
		t.Error("tree slices should marshal as [], not null")
	}
}
