package metadata

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/vivekkrish/neo4j/schemas"
	"gopkg.in/yaml.v3"
)

// Load builds a Model from path. An empty path loads the embedded default
// model; a directory has all of its YAML files merged into one schema.
func Load(path string) (*Model, error) {
	if path == "" {
		slog.Debug("loading embedded default schema")
		return LoadFS(schemas.Files)
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat schema path: %w", err)
	}
	if info.IsDir() {
		return LoadFS(os.DirFS(path))
	}
	return LoadFile(path)
}

// LoadFile builds a Model from a single YAML file.
func LoadFile(path string) (*Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema file: %w", err)
	}
	m, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	slog.Info("loaded metadata model", "path", path, "types", len(m.types), "relationships", len(m.relationships))
	return m, nil
}

// LoadFS walks fsys and merges every YAML schema file into one Model.
// Classes and relationships may be spread over several files but each
// name must be declared once.
func LoadFS(fsys fs.FS) (*Model, error) {
	merged := &Schema{
		Classes:       make(map[string]*ClassSchema),
		Relationships: make(map[string]*RelationshipSchema),
	}
	origin := make(map[string]string)

	err := fs.WalkDir(fsys, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if !strings.HasSuffix(d.Name(), ".yaml") && !strings.HasSuffix(d.Name(), ".yml") {
			return nil
		}

		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			slog.Error("failed to read schema file", "path", path, "error", err)
			return err
		}

		var s Schema
		if err := yaml.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("%s: failed to parse YAML: %w", path, err)
		}

		for name, c := range s.Classes {
			if prev, ok := origin["class:"+name]; ok {
				return fmt.Errorf("%s: class %s already declared in %s", path, name, prev)
			}
			origin["class:"+name] = path
			merged.Classes[name] = c
		}
		for name, r := range s.Relationships {
			if prev, ok := origin["rel:"+name]; ok {
				return fmt.Errorf("%s: relationship %s already declared in %s", path, name, prev)
			}
			origin["rel:"+name] = path
			merged.Relationships[name] = r
		}

		slog.Debug("loaded schema file", "path", path, "classes", len(s.Classes), "relationships", len(s.Relationships))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk schema files: %w", err)
	}

	m, err := Build(merged)
	if err != nil {
		return nil, err
	}
	slog.Info("loaded metadata model", "types", len(m.types), "relationships", len(m.relationships))
	return m, nil
}
