// Package content holds the immutable reference content rendered by the guide.
//
// The content ships as a YAML document embedded in the binary. It is decoded
// and validated once; a defect in the document is a programming error and
// panics at startup rather than surfacing at request time.
package content

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"gopkg.in/yaml.v3"
)

// ErrInvalidContent wraps every validation problem found in a content document.
var ErrInvalidContent = errors.New("content: invalid document")

//go:embed junit.yaml
var embedded []byte

var defaultStore = sync.OnceValue(func() *Store {
	s, err := Load(bytes.NewReader(embedded))
	if err != nil {
		panic(fmt.Sprintf("content: embedded document: %v", err))
	}
	return s
})

// Default returns the store built from the embedded document.
func Default() *Store {
	return defaultStore()
}

// document is the on-disk shape of a content file.
type document struct {
	Versions []VersionContent `yaml:"versions"`
}

// Store is a read-only lookup from Version to VersionContent.
type Store struct {
	entries map[Version]VersionContent
}

// Load decodes and validates a content document.
func Load(r io.Reader) (*Store, error) {
	var doc document
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: decode: %w", ErrInvalidContent, err)
	}

	if err := validate(doc); err != nil {
		return nil, err
	}

	s := &Store{entries: make(map[Version]VersionContent, len(doc.Versions))}
	for _, vc := range doc.Versions {
		s.entries[vc.Version] = vc.clone()
	}
	return s, nil
}

// LoadFile reads a content document from path.
func LoadFile(path string) (*Store, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open content %s: %w", path, err)
	}
	defer f.Close()

	s, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("load content %s: %w", path, err)
	}
	return s, nil
}

// Get returns the content for v. It panics if v has no entry, which can only
// happen for a value outside the closed Version enumeration.
func (s *Store) Get(v Version) VersionContent {
	vc, ok := s.Lookup(v)
	if !ok {
		panic(fmt.Sprintf("content: no entry for version %q", v))
	}
	return vc
}

// Lookup returns the content for v and whether it exists.
func (s *Store) Lookup(v Version) (VersionContent, bool) {
	vc, ok := s.entries[v]
	if !ok {
		return VersionContent{}, false
	}
	return vc.clone(), true
}

// Len returns the number of entries.
func (s *Store) Len() int {
	return len(s.entries)
}

func validate(doc document) error {
	var errs []error
	seen := make(map[Version]bool)

	for i, vc := range doc.Versions {
		if !vc.Version.Valid() {
			errs = append(errs, fmt.Errorf("versions[%d]: unknown version %q", i, vc.Version))
			continue
		}
		if seen[vc.Version] {
			errs = append(errs, fmt.Errorf("versions[%d]: duplicate entry for %q", i, vc.Version))
			continue
		}
		seen[vc.Version] = true

		if vc.Overview == "" {
			errs = append(errs, fmt.Errorf("%s: overview is required", vc.Version))
		}
		if vc.Dependency.Maven == "" {
			errs = append(errs, fmt.Errorf("%s: maven dependency is required", vc.Version))
		}
		if vc.Dependency.Gradle == "" {
			errs = append(errs, fmt.Errorf("%s: gradle dependency is required", vc.Version))
		}

		for _, group := range []struct {
			name     string
			features []Feature
		}{
			{"assertions", vc.Assertions},
			{"assumptions", vc.Assumptions},
			{"annotations", vc.Annotations},
		} {
			for j, f := range group.features {
				if f.Title == "" {
					errs = append(errs, fmt.Errorf("%s: %s[%d]: title is required", vc.Version, group.name, j))
				}
				for k, sn := range f.Snippets {
					if !sn.Language.Valid() {
						errs = append(errs, fmt.Errorf("%s: %s[%d].snippets[%d]: unsupported language %q",
							vc.Version, group.name, j, k, sn.Language))
					}
				}
			}
		}
	}

	for _, v := range Versions() {
		if !seen[v] {
			errs = append(errs, fmt.Errorf("missing entry for %q", v))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidContent, errors.Join(errs...))
	}
	return nil
}
