package models

import (
	"fmt"
)

// Pagination bounds for child listings.
const (
	DefaultPageSize = 50
	MaxPageSize     = 200
)

// ListOptions carries pagination for child listings.
type ListOptions struct {
	Page     int
	PageSize int
}

// ApplyDefaults fills zero/invalid fields with sane defaults.
func (o *ListOptions) ApplyDefaults() {
	if o.Page < 1 {
		o.Page = 1
	}
	if o.PageSize < 1 {
		o.PageSize = DefaultPageSize
	}
	if o.PageSize > MaxPageSize {
		o.PageSize = MaxPageSize
	}
}

// Validate rejects options that ApplyDefaults cannot repair.
func (o *ListOptions) Validate() error {
	if o.Page < 1 {
		return fmt.Errorf("page must be >= 1, got %d", o.Page)
	}
	if o.PageSize < 1 || o.PageSize > MaxPageSize {
		return fmt.Errorf("page_size must be between 1 and %d, got %d", MaxPageSize, o.PageSize)
	}
	return nil
}

// Offset returns the row offset for the current page.
func (o *ListOptions) Offset() int {
	return (o.Page - 1) * o.PageSize
}
