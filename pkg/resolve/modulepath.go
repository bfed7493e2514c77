// SPDX-License-Identifier: MPL-2.0

package resolve

import (
	"path"
	"strings"
)

// splitModule implements C2: it normalizes path separators in name, splits
// on the separator, and rejoins the first two segments with a forward
// slash when the first segment begins with `@` (scoped packages, e.g.
// "@scope/pkg/lib" -> pkg="@scope/pkg", sub="lib").
func splitModule(name string) (pkg, sub string) {
	normalized := path.Clean(strings.ReplaceAll(name, `\`, "/"))
	segments := strings.Split(normalized, "/")

	if len(segments) == 0 || segments[0] == "" {
		return normalized, ""
	}

	if strings.HasPrefix(segments[0], "@") && len(segments) > 1 {
		pkg = segments[0] + "/" + segments[1]
		sub = strings.Join(segments[2:], "/")
		return pkg, sub
	}

	pkg = segments[0]
	sub = strings.Join(segments[1:], "/")
	return pkg, sub
}
