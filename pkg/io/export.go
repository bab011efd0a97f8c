package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	apperrors "github.com/metasystem/steering/pkg/errors"
)

// WriteDataset encodes d in the given format and writes it to w.
// The output can be re-read with [ReadDataset].
func WriteDataset(d *Dataset, w io.Writer, format Format) error {
	switch format {
	case FormatJSON, "":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(d); err != nil {
			return fmt.Errorf("encode: %w", err)
		}
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(d); err != nil {
			return fmt.Errorf("encode: %w", err)
		}
		return enc.Close()
	case FormatTOML:
		if err := toml.NewEncoder(w).Encode(d); err != nil {
			return fmt.Errorf("encode: %w", err)
		}
	default:
		return apperrors.New(apperrors.ErrCodeInvalidFormat, "unknown dataset format %q", format)
	}
	return nil
}

// ExportDataset writes d to path in the format implied by its extension.
// The file is created with 0644 permissions.
func ExportDataset(d *Dataset, path string) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WriteDataset(d, f, format); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
