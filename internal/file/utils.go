package file

import (
	"fmt"
	"path"
	"strings"

	"github.com/gosimple/slug"
)

// displayName returns the stored name reduced to a single path segment, or
// file_<id> when nothing usable is left.
func displayName(fileID int64, stored string) string {
	name := strings.NewReplacer("/", "", "\\", "", "\x00", "").Replace(strings.TrimSpace(stored))
	if name == "" || name == "." || name == ".." {
		return fmt.Sprintf("file_%d", fileID)
	}
	return name
}

// asciiName transliterates name for the plain filename parameter, keeping
// the extension intact.
func asciiName(fileID int64, name string) string {
	ext := path.Ext(name)
	base := strings.TrimSuffix(name, ext)

	s := slug.Make(base)
	if s == "" {
		s = fmt.Sprintf("file_%d", fileID)
	}
	ext = slug.Make(strings.TrimPrefix(ext, "."))
	if ext == "" {
		return s
	}
	return s + "." + ext
}
