package io

import (
	"path/filepath"
	"strings"

	apperrors "github.com/metasystem/steering/pkg/errors"
)

// Format is a dataset encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// FormatFromPath returns the format implied by the extension of path.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return "", apperrors.New(apperrors.ErrCodeInvalidFormat,
			"unsupported dataset extension %q (want .json, .yaml, .yml or .toml)", filepath.Ext(path))
	}
}
