package content

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Store holds all content definitions, loaded once from a directory of
// YAML files. Records are immutable after load, so reads need no lock.
type Store struct {
	path string
	defs map[string]*Definition
}

func NewStore(path string) (*Store, error) {
	s := &Store{
		path: path,
		defs: map[string]*Definition{},
	}

	err := s.load()
	if err != nil {
		return nil, err
	}

	return s, nil
}

func (s *Store) load() error {
	return filepath.Walk(s.path, func(path string, info os.FileInfo, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}

		ext := filepath.Ext(path)
		if info.IsDir() || (ext != ".yaml" && ext != ".yml") {
			return nil
		}

		id := strings.TrimSuffix(filepath.Base(path), ext)
		def, err := s.loadDefinition(path)
		if err != nil {
			return err
		}

		err = def.Validate()
		if err != nil {
			return fmt.Errorf("validating %s: %w", filepath.Base(path), err)
		}

		// Error if the key is already in use (e.g. a.yaml next to a.yml)
		_, ok := s.defs[id]
		if ok {
			return fmt.Errorf("duplicate definition id: %s", id)
		}

		s.defs[id] = def
		return nil
	})
}

func (s *Store) loadDefinition(path string) (*Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file: %w", err)
	}

	var def Definition
	err = yaml.Unmarshal(data, &def)
	if err != nil {
		return nil, fmt.Errorf("unmarshalling %s: %w", filepath.Base(path), err)
	}

	return &def, nil
}

// Get returns the definition under id, or nil when absent.
func (s *Store) Get(id string) *Definition {
	return s.defs[id]
}

// GetAll returns a copy of the definition map.
func (s *Store) GetAll() map[string]*Definition {
	defs := make(map[string]*Definition, len(s.defs))
	for id, d := range s.defs {
		defs[id] = d
	}
	return defs
}
