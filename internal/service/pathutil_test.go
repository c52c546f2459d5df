package service

import "testing"

func TestChildPath(t *testing.T) {
	tests := []struct {
		parentPath string
		name       string
		want       string
	}{
		{"", "Biology", "/Biology"},
		{"/Biology", "Exams", "/Biology/Exams"},
		{"/Biology/Exams", "Final", "/Biology/Exams/Final"},
	}
	for _, tt := range tests {
		if got := ChildPath(tt.parentPath, tt.name); got != tt.want {
			t.Errorf("ChildPath(%q, %q) = %q, want %q", tt.parentPath, tt.name, got, tt.want)
		}
	}
}

func TestParentPrefix(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/Biology", ""},
		{"/Biology/Exams", "/Biology"},
		{"/Biology/Exams/Final", "/Biology/Exams"},
	}
	for _, tt := range tests {
		if got := ParentPrefix(tt.path); got != tt.want {
			t.Errorf("ParentPrefix(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestIsWithin(t *testing.T) {
	tests := []struct {
		path     string
		ancestor string
		want     bool
	}{
		{"/Biology/Exams", "/Biology", true},
		{"/Biology/Exams/Final", "/Biology", true},
		{"/Biology", "/Biology", false}, // strict: a path is not within itself
		{"/Biology", "/Bio", false},     // sibling prefix, not an ancestor
		{"/Chemistry", "/Biology", false},
	}
	for _, tt := range tests {
		if got := IsWithin(tt.path, tt.ancestor); got != tt.want {
			t.Errorf("IsWithin(%q, %q) = %v, want %v", tt.path, tt.ancestor, got, tt.want)
		}
	}
}

func TestReplacePathPrefix(t *testing.T) {
	tests := []struct {
		path      string
		oldPrefix string
		newPrefix string
		want      string
	}{
		{"/Biology", "/Biology", "/Bio", "/Bio"},
		{"/Biology/Exams", "/Biology", "/Bio", "/Bio/Exams"},
		{"/Biology/Exams/Final", "/Biology", "/Archive/Biology", "/Archive/Biology/Exams/Final"},
		{"/Biologic", "/Biology", "/Bio", "/Biologic"}, // outside the subtree
		{"/Chemistry", "/Biology", "/Bio", "/Chemistry"},
	}
	for _, tt := range tests {
		if got := ReplacePathPrefix(tt.path, tt.oldPrefix, tt.newPrefix); got != tt.want {
			t.Errorf("ReplacePathPrefix(%q, %q, %q) = %q, want %q",
				tt.path, tt.oldPrefix, tt.newPrefix, got, tt.want)
		}
	}
}
