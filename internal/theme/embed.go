package theme

import (
	"embed"
	"io/fs"
	"path"
	"strings"
)

//go:embed themes/*.css
var bundled embed.FS

// DefaultThemeName is the theme used when none is configured.
const DefaultThemeName = "default"

// BundledThemes lists the embedded theme names.
var BundledThemes = []string{"default", "minimal"}

// Embedded returns the raw CSS of a bundled theme. Imports are not inlined.
func Embedded(name string) (string, bool) {
	data, err := bundled.ReadFile(path.Join("themes", name+".css"))
	if err != nil {
		return "", false
	}
	return string(data), true
}

// EmbeddedPartial returns a bundled partial. The leading underscore and the
// .css suffix are optional.
func EmbeddedPartial(name string) (string, bool) {
	name = strings.TrimSuffix(strings.TrimPrefix(name, "_"), ".css")
	data, err := bundled.ReadFile(path.Join("themes", "_"+name+".css"))
	if err != nil {
		return "", false
	}
	return string(data), true
}

// ListEmbedded returns the bundled theme names, partials excluded.
func ListEmbedded() []string {
	entries, err := fs.ReadDir(bundled, "themes")
	if err != nil {
		return BundledThemes
	}

	var names []string
	for _, entry := range entries {
		name, ok := themeName(entry)
		if ok {
			names = append(names, name)
		}
	}
	return names
}

// IsEmbedded reports whether name is a bundled theme.
func IsEmbedded(name string) bool {
	_, ok := Embedded(name)
	return ok
}

// themeName maps a directory entry to a theme name. Directories, partials
// and non-CSS files are skipped.
func themeName(entry fs.DirEntry) (string, bool) {
	if entry.IsDir() {
		return "", false
	}
	name := entry.Name()
	if strings.HasPrefix(name, "_") || path.Ext(name) != ".css" {
		return "", false
	}
	return strings.TrimSuffix(name, ".css"), true
}
