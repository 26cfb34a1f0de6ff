package theme

import (
	"fmt"
	"strconv"
	"strings"
)

// LabelRule returns a CSS rule giving the widget with the given name its font
// family and pixel size. Themes style colors through classes; size comes
// from the overlay layout and so is generated.
func LabelRule(name, family string, sizePx float64) string {
	var b strings.Builder
	fmt.Fprintf(&b, "#%s {\n", name)
	if family != "" {
		fmt.Fprintf(&b, "  font-family: %s;\n", quoteFamily(family))
	}
	fmt.Fprintf(&b, "  font-size: %spx;\n", strconv.FormatFloat(sizePx, 'f', 1, 64))
	b.WriteString("}\n")
	return b.String()
}

func quoteFamily(family string) string {
	family = strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(family)
	return `"` + family + `"`
}
