package service

import (
	"strings"
)

// pathutil.go - materialized path string algebra shared by the folder
// operations. Paths are rendered "/name1/name2/.../thisName"; the parent
// prefix of a root-level folder is the empty string.

// ChildPath renders the path of a folder named name under parentPath.
//
// Examples:
//   - ChildPath("", "Biology") → "/Biology"
//   - ChildPath("/Biology", "Exam1") → "/Biology/Exam1"
func ChildPath(parentPath, name string) string {
	return parentPath + "/" + name
}

// ParentPrefix returns the path of a folder's parent.
// Returns "" for root-level paths ("/Biology" → "").
func ParentPrefix(path string) string {
	i := strings.LastIndex(path, "/")
	if i <= 0 {
		return ""
	}
	return path[:i]
}

// IsWithin reports whether path sits strictly inside the subtree rooted at
// ancestorPath. The separator keeps sibling prefixes apart: "/Biology/Exam1"
// is within "/Biology" but not within "/Bio".
func IsWithin(path, ancestorPath string) bool {
	return strings.HasPrefix(path, ancestorPath+"/")
}

// ReplacePathPrefix swaps oldPrefix for newPrefix at the start of path,
// preserving the suffix byte for byte. The path itself and everything in its
// subtree rewrite with the same rule; paths outside come back unchanged.
func ReplacePathPrefix(path, oldPrefix, newPrefix string) string {
	if path == oldPrefix {
		return newPrefix
	}
	if IsWithin(path, oldPrefix) {
		return newPrefix + path[len(oldPrefix):]
	}
	return path
}
