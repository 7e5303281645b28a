package parser

import (
	"github.com/cruciblehq/chariotd/internal/recipe"
)

func (s *scanner) parseNamespace() (recipe.Namespace, error) {
	switch {
	case s.matchString("source"):
		return recipe.Source, nil
	case s.matchString("host"):
		return recipe.Host, nil
	case s.matchString("target"):
		return recipe.Target, nil
	default:
		return 0, s.syntaxErrorf("invalid namespace")
	}
}

func (s *scanner) parseDependencies() ([]recipe.Dependency, []recipe.ImageDependency, error) {
	var deps []recipe.Dependency
	var imageDeps []recipe.ImageDependency

	if err := s.expectChar('['); err != nil {
		return nil, nil, err
	}
	for !s.matchChar(']') {
		s.skipSpace()

		runtime := s.matchChar('*')
		if s.matchString("image") {
			if err := s.expectChar('/'); err != nil {
				return nil, nil, err
			}
			name, err := s.parseIdentifier()
			if err != nil {
				return nil, nil, err
			}
			imageDeps = append(imageDeps, recipe.ImageDependency{Name: name, Runtime: runtime})
		} else {
			ns, err := s.parseNamespace()
			if err != nil {
				return nil, nil, err
			}
			if err := s.expectChar('/'); err != nil {
				return nil, nil, err
			}
			name, err := s.parseIdentifier()
			if err != nil {
				return nil, nil, err
			}
			deps = append(deps, recipe.Dependency{Namespace: ns, Name: name, Runtime: runtime})
		}

		s.skipSpace()
	}

	return deps, imageDeps, nil
}

func (s *scanner) parseSourceType() (recipe.SourceType, error) {
	switch {
	case s.matchString("tar.gz"):
		return recipe.TarGz, nil
	case s.matchString("tar.xz"):
		return recipe.TarXz, nil
	case s.matchString("git"):
		return recipe.Git, nil
	case s.matchString("local"):
		return recipe.Local, nil
	default:
		return 0, s.syntaxErrorf("invalid type")
	}
}

func (s *scanner) parseRecipe() (*recipe.Recipe, error) {
	ns, err := s.parseNamespace()
	if err != nil {
		return nil, err
	}
	if err := s.expectChar('/'); err != nil {
		return nil, err
	}
	name, err := s.parseIdentifier()
	if err != nil {
		return nil, err
	}

	r := &recipe.Recipe{Namespace: ns, Name: name}

	s.skipSpace()
	if err := s.expectChar('{'); err != nil {
		return nil, err
	}

	switch ns {
	case recipe.Source:
		if err := s.parseSourceFields(r); err != nil {
			return nil, err
		}
	case recipe.Host, recipe.Target:
		if err := s.parseHostTargetFields(r); err != nil {
			return nil, err
		}
	default:
		return nil, s.syntaxErrorf("unsupported namespace")
	}

	return r, nil
}

func (s *scanner) parseSourceFields(r *recipe.Recipe) error {
	body := &recipe.SourceBody{}
	r.SourceBody = body

	var foundURL, foundType bool

	for {
		s.skipSpace()
		switch {
		case s.matchString("url"):
			if err := s.expectFieldSep(); err != nil {
				return err
			}
			body.URL = s.parseToEOL()
			foundURL = true
		case s.matchString("type"):
			if err := s.expectFieldSep(); err != nil {
				return err
			}
			t, err := s.parseSourceType()
			if err != nil {
				return err
			}
			body.Type = t
			foundType = true
		case s.matchString("patch"):
			if err := s.expectFieldSep(); err != nil {
				return err
			}
			body.Patch = s.parseToEOL()
		case s.matchString("b2sum"):
			if err := s.expectFieldSep(); err != nil {
				return err
			}
			body.B2Sum = s.parseToEOL()
		case s.matchString("commit"):
			if err := s.expectFieldSep(); err != nil {
				return err
			}
			body.Commit = s.parseToEOL()
		case s.matchString("dependencies"):
			s.skipSpace()
			deps, imageDeps, err := s.parseDependencies()
			if err != nil {
				return err
			}
			r.Dependencies = deps
			r.ImageDeps = imageDeps
		case s.matchString("strap"):
			s.skipSpace()
			block, err := s.parseBlock()
			if err != nil {
				return err
			}
			body.Strap = block
		default:
			if err := s.expectChar('}'); err != nil {
				return err
			}
			goto done
		}
	}
done:
	if !foundURL {
		return s.syntaxErrorf("missing url")
	}
	if !foundType {
		return s.syntaxErrorf("missing type")
	}
	return nil
}

func (s *scanner) parseHostTargetFields(r *recipe.Recipe) error {
	body := &recipe.HostTargetBody{}
	r.HostTargetBody = body

	for {
		s.skipSpace()
		switch {
		case s.matchString("source"):
			if err := s.expectFieldSep(); err != nil {
				return err
			}
			name, err := s.parseIdentifier()
			if err != nil {
				return err
			}
			body.SourceName = name
		case s.matchString("configure"):
			s.skipSpace()
			block, err := s.parseBlock()
			if err != nil {
				return err
			}
			body.Configure = block
		case s.matchString("build"):
			s.skipSpace()
			block, err := s.parseBlock()
			if err != nil {
				return err
			}
			body.Build = block
		case s.matchString("install"):
			s.skipSpace()
			block, err := s.parseBlock()
			if err != nil {
				return err
			}
			body.Install = block
		case s.matchString("dependencies"):
			s.skipSpace()
			deps, imageDeps, err := s.parseDependencies()
			if err != nil {
				return err
			}
			r.Dependencies = deps
			r.ImageDeps = imageDeps
		default:
			if err := s.expectChar('}'); err != nil {
				return err
			}
			return nil
		}
	}
}

// expectFieldSep consumes the `:` separator between a field name and its
// value, skipping whitespace on both sides.
func (s *scanner) expectFieldSep() error {
	s.skipSpace()
	if err := s.expectChar(':'); err != nil {
		return err
	}
	s.skipSpace()
	return nil
}
