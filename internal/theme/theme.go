package theme

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

// ErrUnknownTheme is returned when a name matches neither a user file nor a
// bundled theme.
var ErrUnknownTheme = errors.New("unknown theme")

// importPattern matches @import "x.css", @import 'x.css' and @import url("x.css").
var importPattern = regexp.MustCompile(`@import\s+(?:url\s*\(\s*)?["']([^"']+)["']\s*\)?;?`)

// Theme is a resolved stylesheet with its imports inlined.
type Theme struct {
	Name    string
	Path    string // empty for bundled themes
	CSS     string
	ModTime time.Time
}

// Bundled reports whether the theme came from the embedded set.
func (t *Theme) Bundled() bool {
	return t.Path == ""
}

// Resolve finds a theme by name. A file in dir wins over a bundled theme of
// the same name so users can override the defaults.
func Resolve(name, dir string) (*Theme, error) {
	if name == "" {
		name = DefaultThemeName
	}

	if dir != "" {
		p := filepath.Join(dir, name+".css")
		if _, err := os.Stat(p); err == nil {
			return Load(name, p)
		}
	}

	css, ok := Embedded(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTheme, name)
	}
	return &Theme{Name: name, CSS: Inline(css, "")}, nil
}

// Default returns the bundled default theme.
func Default() *Theme {
	css, _ := Embedded(DefaultThemeName)
	return &Theme{Name: DefaultThemeName, CSS: Inline(css, "")}
}

// Load reads a theme file and inlines its imports.
func Load(name, path string) (*Theme, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat theme: %w", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read theme: %w", err)
	}

	return &Theme{
		Name:    name,
		Path:    path,
		CSS:     Inline(string(data), filepath.Dir(path)),
		ModTime: info.ModTime(),
	}, nil
}

// Refresh re-reads a user theme if its file changed and reports whether the
// resulting CSS differs. Bundled themes never change.
func (t *Theme) Refresh() (bool, error) {
	if t.Bundled() {
		return false, nil
	}

	fresh, err := Load(t.Name, t.Path)
	if err != nil {
		return false, err
	}
	changed := fresh.CSS != t.CSS
	*t = *fresh
	return changed, nil
}

// Inline replaces @import statements with the imported CSS. Relative paths
// resolve against dir; a missing file falls back to a bundled partial or
// theme of the same base name. Each file is inlined at most once.
func Inline(css, dir string) string {
	return (&inliner{seen: make(map[string]bool)}).inline(css, dir)
}

type inliner struct {
	seen map[string]bool
}

func (in *inliner) inline(css, dir string) string {
	return importPattern.ReplaceAllStringFunc(css, func(stmt string) string {
		m := importPattern.FindStringSubmatch(stmt)
		if len(m) < 2 {
			return stmt
		}
		ref := m[1]

		full := ref
		if !filepath.IsAbs(full) {
			full = filepath.Join(dir, ref)
		}
		if in.seen[full] {
			return "/* circular import prevented: " + ref + " */"
		}
		in.seen[full] = true

		data, err := os.ReadFile(full)
		if err == nil {
			return "/* imported: " + ref + " */\n" + in.inline(string(data), filepath.Dir(full))
		}

		base := filepath.Base(ref)
		if strings.HasPrefix(base, "_") {
			if partial, ok := EmbeddedPartial(base); ok {
				return "/* imported (embedded): " + ref + " */\n" + partial
			}
		}
		if bundledCSS, ok := Embedded(strings.TrimSuffix(base, ".css")); ok {
			return "/* imported (embedded): " + ref + " */\n" + in.inline(bundledCSS, "")
		}
		return "/* import failed: " + ref + " - " + err.Error() + " */"
	})
}

// Info describes an available theme.
type Info struct {
	Name    string
	Path    string
	Bundled bool
}

// List returns bundled themes followed by user themes in dir. A user file
// overriding a bundled theme is reported once, with its path.
func List(dir string) ([]Info, error) {
	var infos []Info
	index := make(map[string]int)
	for _, name := range ListEmbedded() {
		index[name] = len(infos)
		infos = append(infos, Info{Name: name, Bundled: true})
	}

	if dir == "" {
		return infos, nil
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return infos, nil
		}
		return infos, fmt.Errorf("failed to read themes directory: %w", err)
	}

	for _, entry := range entries {
		name, ok := themeName(entry)
		if !ok {
			continue
		}
		p := filepath.Join(dir, entry.Name())
		if i, exists := index[name]; exists {
			infos[i].Path = p
			continue
		}
		index[name] = len(infos)
		infos = append(infos, Info{Name: name, Path: p})
	}
	return infos, nil
}
