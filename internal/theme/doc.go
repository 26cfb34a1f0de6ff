// Package theme loads the CSS that styles the GTK overlay. Bundled themes
// are embedded; a file of the same name in the user's themes directory
// overrides them and is hot-reloaded on change.
package theme
