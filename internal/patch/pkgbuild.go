package patch

import "strings"

var pkgbuildPatcher = Patcher{
	Name:    "pkgbuild",
	Matches: func(name string) bool { return strings.HasSuffix(name, "PKGBUILD") },
	apply:   applyPKGBUILD,
}

// applyPKGBUILD sets pkgver and resets pkgrel. md5sums gets the SKIP
// sentinel because the patched sources no longer match any recorded
// checksum; computing new ones is left to the package build.
func applyPKGBUILD(content string, v Versions) (string, bool) {
	out, n1 := setAssignment(content, "pkgver", v.Upstream)
	out, n2 := setAssignment(out, "pkgrel", "0")
	out, n3 := setAssignment(out, "md5sums", "('SKIP')")
	return out, n1+n2+n3 > 0
}
