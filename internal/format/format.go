package format

import "strings"

// folderNameReplacer maps characters Windows rejects in folder names to a space.
var folderNameReplacer = strings.NewReplacer(
	"/", " ",
	"\\", " ",
	":", " ",
	"*", " ",
	"?", " ",
	"\"", " ",
	"<", " ",
	">", " ",
	"|", " ",
)

// SafeFolderName replaces every disallowed character with a single space.
// Whitespace is otherwise preserved so the result is stable under reapplication.
func SafeFolderName(name string) string {
	return folderNameReplacer.Replace(name)
}

// FolderName returns the sanitized folder name for a resolved title, falling
// back to the app ID when nothing usable is left.
func FolderName(id, name string) string {
	safe := SafeFolderName(name)
	switch strings.TrimSpace(safe) {
	case "", ".", "..":
		return SafeFolderName(id)
	}
	return safe
}
