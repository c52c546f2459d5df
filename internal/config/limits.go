package config

const (
	// MaxFolderNameLength is the maximum length for folder names.
	// Limited to 255 to fit in PostgreSQL VARCHAR(255) and provide
	// reasonable UX (names should be short and descriptive).
	MaxFolderNameLength = 255

	// MaxDocumentNameLength is the maximum length for document names.
	// Same as folder names for consistency.
	MaxDocumentNameLength = 255

	// MaxPathLength is the maximum length for full materialized paths.
	// Longer paths indicate overly deep hierarchies.
	MaxPathLength = 500

	// MaxUploadBytes caps a single document upload (32 MiB).
	MaxUploadBytes = 32 << 20
)
