package parser

import (
	"os"
	"path/filepath"

	"github.com/cruciblehq/chariotd/internal/crex"
	"github.com/cruciblehq/chariotd/internal/recipe"
)

// Parse reads path and every file it @imports, returning the combined,
// unresolved recipe set. Call recipe.Resolve on the result to bind forward
// references.
func Parse(path string) (*recipe.Set, error) {
	set := recipe.NewSet()
	if err := parseFile(path, set); err != nil {
		return nil, err
	}
	return set, nil
}

// ParseString parses data as a single file named name, with @import paths
// resolved relative to dir. It is mainly useful for tests and for
// expanding an in-memory recipe snippet without touching disk.
func ParseString(name, dir string, data []byte) (*recipe.Set, error) {
	set := recipe.NewSet()
	if err := parseBuffer(name, dir, data, set); err != nil {
		return nil, err
	}
	return set, nil
}

func parseFile(path string, set *recipe.Set) error {
	buf, err := os.ReadFile(path)
	if err != nil {
		return crex.Wrapf(ErrImport, "reading `%s`: %v", path, err)
	}
	return parseBuffer(path, filepath.Dir(path), buf, set)
}

func parseBuffer(name, dir string, buf []byte, set *recipe.Set) error {
	s := newScanner(name, buf)

	for {
		s.skipSpace()
		if s.eof() {
			break
		}

		if s.matchChar('@') {
			if !s.matchString("import") {
				return s.syntaxErrorf("unknown directive")
			}
			s.skipSpace()
			relative := s.parseToEOL()
			if err := parseFile(filepath.Join(dir, relative), set); err != nil {
				return err
			}
			continue
		}

		if s.matchString("//") {
			s.parseToEOL()
			continue
		}

		r, err := s.parseRecipe()
		if err != nil {
			return err
		}
		if err := recipe.Validate(r); err != nil {
			return err
		}
		if err := set.Add(r); err != nil {
			return err
		}
	}

	return nil
}
