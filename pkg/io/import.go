package io

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/metasystem/steering/pkg/cyber"
	apperrors "github.com/metasystem/steering/pkg/errors"
)

// Dataset is a complete control graph.
type Dataset struct {
	Objects      []cyber.Object      `json:"objects" yaml:"objects" toml:"objects"`
	Correlations []cyber.Correlation `json:"correlations" yaml:"correlations" toml:"correlations"`
}

// Validate checks every object and correlation. Duplicate object ids and
// dangling correlation endpoints are accepted.
func (d *Dataset) Validate() error {
	if err := cyber.ValidateObjects(d.Objects); err != nil {
		return err
	}
	return cyber.ValidateCorrelations(d.Correlations)
}

// ReadDataset decodes a dataset in the given format from r and validates it.
// ReadDataset does not close r.
func ReadDataset(r io.Reader, format Format) (*Dataset, error) {
	var d Dataset
	var err error
	switch format {
	case FormatJSON, "":
		err = json.NewDecoder(r).Decode(&d)
	case FormatYAML:
		err = yaml.NewDecoder(r).Decode(&d)
		if errors.Is(err, io.EOF) {
			err = nil
		}
	case FormatTOML:
		_, err = toml.NewDecoder(r).Decode(&d)
	default:
		return nil, apperrors.New(apperrors.ErrCodeInvalidFormat, "unknown dataset format %q", format)
	}
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInvalidFormat, err, "decode %s dataset", format)
	}

	if err := d.Validate(); err != nil {
		return nil, err
	}
	return &d, nil
}

// ImportDataset reads the dataset file at path, choosing the format from its
// extension.
func ImportDataset(path string) (*Dataset, error) {
	if err := apperrors.ValidateDatasetPath(path); err != nil {
		return nil, err
	}
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, apperrors.Wrap(apperrors.ErrCodeFileNotFound, err, "dataset %s", path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	d, err := ReadDataset(f, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return d, nil
}

// ReadObjects decodes and validates a JSON array of objects.
func ReadObjects(r io.Reader) ([]cyber.Object, error) {
	var objects []cyber.Object
	if err := json.NewDecoder(r).Decode(&objects); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInvalidObject, err, "failed to parse objects")
	}
	if err := cyber.ValidateObjects(objects); err != nil {
		return nil, err
	}
	return objects, nil
}

// ReadCorrelations decodes and validates a JSON array of correlations.
func ReadCorrelations(r io.Reader) ([]cyber.Correlation, error) {
	var correlations []cyber.Correlation
	if err := json.NewDecoder(r).Decode(&correlations); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInvalidCorrelation, err, "failed to parse correlations")
	}
	if err := cyber.ValidateCorrelations(correlations); err != nil {
		return nil, err
	}
	return correlations, nil
}

// ImportObjects reads a JSON file holding an array of objects.
func ImportObjects(path string) ([]cyber.Object, error) {
	f, err := openPayload(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadObjects(f)
}

// ImportCorrelations reads a JSON file holding an array of correlations.
func ImportCorrelations(path string) ([]cyber.Correlation, error) {
	f, err := openPayload(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadCorrelations(f)
}

func openPayload(path string) (*os.File, error) {
	f, err := os.Open(path)
	if err == nil {
		return f, nil
	}
	if os.IsNotExist(err) {
		return nil, apperrors.Wrap(apperrors.ErrCodeFileNotFound, err, "payload %s", path)
	}
	return nil, fmt.Errorf("open %s: %w", path, err)
}
