package detect

import (
	"path"
	"strings"
)

// Type classifies the package kind found in the local sources.
type Type string

const (
	// TypeNone means no recognized package marker was found.
	TypeNone Type = ""
	// TypePython marks a Python source distribution.
	TypePython Type = "python"
)

// PackageType inspects the archives in files and returns TypePython
// when any archive contains an `egg-info/PKG-INFO` member, the marker
// of a Python sdist. Unreadable archives are skipped.
func PackageType(files []string) Type {
	for _, file := range files {
		if !hasArchiveSuffix(file) {
			continue
		}
		members, err := archiveMembers(file)
		if err != nil {
			continue
		}
		for _, member := range members {
			if strings.HasSuffix(path.Clean(member), "egg-info/PKG-INFO") {
				return TypePython
			}
		}
	}
	return TypeNone
}
