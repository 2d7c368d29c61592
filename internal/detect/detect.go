// Package detect finds a package's upstream version in local source
// artifacts: archive filenames, archive member names, and Debian
// changelog headers.
package detect

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
)

// suffixAlternation is the archive suffix set as a regex alternation,
// longest variants first.
const suffixAlternation = `tar\.gz|tar\.bz2|tar\.xz|tgz|tbz2|tar|zip`

// strategy tries to find a version in the given files. basename may be
// empty, in which case any package name is accepted.
type strategy func(files []string, basename string) (string, bool)

// strategies are tried in order; the first match wins. Errors along
// the way (unreadable files, malformed archives) count as non-matches.
var strategies = []strategy{
	versionFromFilename,
	versionFromArchive,
	versionFromChangelog,
}

// Detect runs the detection strategies over files and returns the
// first version found.
func Detect(files []string, basename string) (string, bool) {
	for _, s := range strategies {
		if version, ok := s(files, basename); ok {
			return version, true
		}
	}
	return "", false
}

// versionFromFilename matches `<basename>...[-_]<version>.<suffix>`
// against each filename. The version is the numeric-leading token
// between the last separator and the archive suffix.
func versionFromFilename(files []string, basename string) (string, bool) {
	re := regexp.MustCompile(fmt.Sprintf(`^%s.*[-_](\d.*)\.(?:%s)$`,
		regexp.QuoteMeta(basename), suffixAlternation))

	for _, file := range files {
		if m := re.FindStringSubmatch(filepath.Base(file)); m != nil {
			return m[1], true
		}
	}
	return "", false
}

// versionFromArchive scans the member names of each tar/zip archive
// for `<basename>...[-_]<version>`, typically matching the top-level
// source directory.
func versionFromArchive(files []string, basename string) (string, bool) {
	re := regexp.MustCompile(fmt.Sprintf(`^%s.*[-_](\d[^/]*)`,
		regexp.QuoteMeta(basename)))

	for _, file := range files {
		if !hasArchiveSuffix(file) {
			continue
		}
		members, err := archiveMembers(file)
		if err != nil {
			continue
		}
		for _, member := range members {
			if m := re.FindStringSubmatch(member); m != nil {
				return m[1], true
			}
		}
	}
	return "", false
}

// versionFromChangelog reads the first line of a file literally named
// debian.changelog and extracts the parenthesized version from its
// `name (version) distribution;` header.
func versionFromChangelog(files []string, basename string) (string, bool) {
	for _, file := range files {
		if filepath.Base(file) != "debian.changelog" {
			continue
		}
		f, err := os.Open(file)
		if err != nil {
			continue
		}
		scanner := bufio.NewScanner(f)
		var line string
		if scanner.Scan() {
			line = scanner.Text()
		}
		f.Close()

		if version, ok := ChangelogVersion(line, basename); ok {
			return version, true
		}
	}
	return "", false
}

// ChangelogVersion extracts the version from a Debian changelog header
// line of the form `name (version) distribution-list; ...`. The
// package name match is case-insensitive; an empty basename accepts
// any name.
func ChangelogVersion(line, basename string) (string, bool) {
	name := `\S+`
	if basename != "" {
		name = regexp.QuoteMeta(basename)
	}
	re := regexp.MustCompile(fmt.Sprintf(`(?i)^%s \(([^)]+)\) [^;]+;`, name))
	if m := re.FindStringSubmatch(line); m != nil {
		return m[1], true
	}
	return "", false
}
