package patch

import (
	"strings"

	"github.com/toabctl/obs-service-set-version/internal/detect"
)

var dscPatcher = Patcher{
	Name:    "dsc",
	Matches: func(name string) bool { return strings.HasSuffix(name, ".dsc") },
	apply: func(content string, v Versions) (string, bool) {
		out, n := setTag(content, "Version", v.Upstream)
		return out, n > 0
	},
}

var changelogPatcher = Patcher{
	Name:    "changelog",
	Matches: func(name string) bool { return strings.HasSuffix(name, "debian.changelog") },
	apply:   applyChangelog,
}

// applyChangelog replaces the current version in the changelog's
// header line with the new one. Only the first line is touched; older
// entries keep their versions.
func applyChangelog(content string, v Versions) (string, bool) {
	first, rest := content, ""
	if idx := strings.IndexByte(content, '\n'); idx >= 0 {
		first, rest = content[:idx], content[idx:]
	}

	current, ok := detect.ChangelogVersion(first, "")
	if !ok {
		return content, false
	}

	first = strings.Replace(first, current, v.Upstream, 1)
	return first + rest, true
}
