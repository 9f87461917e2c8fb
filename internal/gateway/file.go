package gateway

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/bryan-cox/taskboard/internal/errors"
	"github.com/bryan-cox/taskboard/internal/model"
)

// FileSource reads a dataset exported to a local file. Files ending in
// .json are decoded as JSON, anything else as YAML.
type FileSource struct {
	Path string
}

// Name implements Source.
func (s *FileSource) Name() string {
	return "file"
}

// Fetch implements Source.
func (s *FileSource) Fetch(ctx context.Context) (model.Dataset, error) {
	if s.Path == "" {
		return nil, errors.Wrap(errors.ErrSourceNotConfigured, "no dataset file given")
	}
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, errors.Wrapf(err, "could not read file '%s'", s.Path)
	}

	var (
		dataset model.Dataset
		skipped []Skipped
	)
	if strings.EqualFold(filepath.Ext(s.Path), ".json") {
		dataset, skipped, err = DecodeJSON(bytes.NewReader(data))
	} else {
		dataset, skipped, err = DecodeYAML(data)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "could not parse '%s'", s.Path)
	}
	logSkipped(ctx, s.Name(), skipped)
	return dataset, nil
}
