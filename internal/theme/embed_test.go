package theme

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbedded(t *testing.T) {
	css, ok := Embedded(DefaultThemeName)
	require.True(t, ok)
	assert.Contains(t, css, ".igt-timer")

	_, ok = Embedded("nonexistent")
	assert.False(t, ok)
}

func TestEmbeddedPartial(t *testing.T) {
	for _, name := range []string{"_outline.css", "outline", "_outline", "outline.css"} {
		t.Run(name, func(t *testing.T) {
			css, ok := EmbeddedPartial(name)
			require.True(t, ok)
			assert.Contains(t, css, "text-shadow")
		})
	}

	css, ok := EmbeddedPartial("_nonexistent.css")
	assert.False(t, ok)
	assert.Empty(t, css)
}

func TestListEmbedded(t *testing.T) {
	names := ListEmbedded()
	assert.ElementsMatch(t, BundledThemes, names)
	for _, name := range names {
		assert.False(t, strings.HasPrefix(name, "_"), "partial listed: %s", name)
	}
}

func TestIsEmbedded(t *testing.T) {
	tests := []struct {
		name     string
		expected bool
	}{
		{"default", true},
		{"minimal", true},
		{"_outline", false},
		{"nonexistent", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsEmbedded(tt.name))
		})
	}
}

func TestBundledThemes_HaveRequiredClasses(t *testing.T) {
	required := []string{
		".igt-label",
		".igt-timer",
		".igt-timer.move-mode",
		".igt-timer.invalid",
		".igt-notification",
		"text-shadow",
	}

	for _, name := range BundledThemes {
		t.Run(name, func(t *testing.T) {
			th, err := Resolve(name, "")
			require.NoError(t, err)
			for _, class := range required {
				assert.Contains(t, th.CSS, class, "theme %s", name)
			}
		})
	}
}

func TestBundledThemes_BalancedBraces(t *testing.T) {
	for _, name := range BundledThemes {
		t.Run(name, func(t *testing.T) {
			th, err := Resolve(name, "")
			require.NoError(t, err)
			assert.Equal(t, strings.Count(th.CSS, "{"), strings.Count(th.CSS, "}"))
			assert.NotContains(t, th.CSS, "import failed")
		})
	}
}
