package models

import "testing"

func TestListOptionsApplyDefaults(t *testing.T) {
	tests := []struct {
		name         string
		in           ListOptions
		wantPage     int
		wantPageSize int
	}{
		{"zero value", ListOptions{}, 1, DefaultPageSize},
		{"negative page", ListOptions{Page: -3, PageSize: 10}, 1, 10},
		{"oversized page size", ListOptions{Page: 2, PageSize: 10000}, 2, MaxPageSize},
		{"already valid", ListOptions{Page: 3, PageSize: 25}, 3, 25},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := tt.in
			opts.ApplyDefaults()
			if opts.Page != tt.wantPage || opts.PageSize != tt.wantPageSize {
				t.Errorf("got %d/%d, want %d/%d", opts.Page, opts.PageSize, tt.wantPage, tt.wantPageSize)
			}
			if err := opts.Validate(); err != nil {
				t.Errorf("defaults did not validate: %v", err)
			}
		})
	}
}

func TestListOptionsOffset(t *testing.T) {
	opts := ListOptions{Page: 3, PageSize: 20}
	if got := opts.Offset(); got != 40 {
		t.Errorf("Offset() = %d, want 40", got)
	}
}
