package errors

import (
	"path/filepath"
	"strings"
	"unicode"
)

// MaxIDLength bounds object and correlation identifiers.
const MaxIDLength = 256

// ValidateID validates an object or correlation identifier.
// kind names the entity in the message ("object", "correlation", "target").
//
// The validation rules are intentionally conservative:
//   - No empty identifiers
//   - No control characters or null bytes
//   - Maximum length of MaxIDLength bytes
func ValidateID(kind, id string) error {
	if id == "" {
		return New(ErrCodeInvalidID, "%s id cannot be empty", kind)
	}

	if len(id) > MaxIDLength {
		return New(ErrCodeInvalidID, "%s id too long (max %d characters)", kind, MaxIDLength)
	}

	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidID, "%s id contains invalid control characters", kind)
		}
	}

	return nil
}

// datasetExtensions lists the file extensions accepted for datasets.
var datasetExtensions = map[string]bool{
	".json": true,
	".yaml": true,
	".yml":  true,
	".toml": true,
}

// ValidateDatasetPath validates a dataset file path.
// The path must be non-empty, free of null bytes, and carry one of the
// supported extensions (.json, .yaml, .yml, .toml).
func ValidateDatasetPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "dataset path cannot be empty")
	}

	if strings.ContainsRune(path, '\x00') {
		return New(ErrCodeInvalidPath, "dataset path contains invalid characters")
	}

	ext := strings.ToLower(filepath.Ext(path))
	if !datasetExtensions[ext] {
		return New(ErrCodeInvalidFormat, "unsupported dataset extension %q (want .json, .yaml, .yml or .toml)", ext)
	}

	return nil
}
