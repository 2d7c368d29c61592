// Package patch copies build description files into an output
// directory and rewrites their version fields with line-anchored
// regex substitutions.
package patch

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
)

// Versions carries the two version forms the patchers work with.
// RPM equals Upstream unless PEP 440 conversion changed it.
type Versions struct {
	// Upstream is the version as detected or supplied.
	Upstream string
	// RPM is the version written into spec files.
	RPM string
}

// converted reports whether the spec-file version differs from the
// upstream form, which triggers the %define/%setup rewrite.
func (v Versions) converted() bool {
	return v.RPM != v.Upstream
}

// A Patcher rewrites one build description file format. Matches
// selects files by name; apply performs the substitutions on the
// whole file content and reports whether anything matched.
type Patcher struct {
	Name    string
	Matches func(name string) bool
	apply   func(content string, v Versions) (string, bool)
}

// Patchers lists the supported file formats. Adding a format means
// adding an entry here, not new control flow in the driver.
var Patchers = []Patcher{
	specPatcher,
	dscPatcher,
	changelogPatcher,
	pkgbuildPatcher,
}

// Patch copies src verbatim into outdir under the same name, then
// applies the patcher's substitutions to the copy. The copy is only
// rewritten when at least one substitution matched; a file without
// the expected tags keeps its verbatim copy.
func (p Patcher) Patch(src, outdir string, v Versions) error {
	content, err := os.ReadFile(src)
	if err != nil {
		return fmt.Errorf("read %s: %w", src, err)
	}

	dst := filepath.Join(outdir, filepath.Base(src))
	if err := os.WriteFile(dst, content, 0644); err != nil {
		return fmt.Errorf("copy to %s: %w", dst, err)
	}

	patched, changed := p.apply(string(content), v)
	if !changed {
		return nil
	}
	if err := os.WriteFile(dst, []byte(patched), 0644); err != nil {
		return fmt.Errorf("write %s: %w", dst, err)
	}
	return nil
}

// setTag replaces the value of a `Tag: value` line, preserving the
// whitespace between the colon and the value. Lines whose value
// contains a `%` macro reference are left alone so a literal
// `%{version}` is never clobbered. Returns the substitution count.
func setTag(content, tag, value string) (string, int) {
	re := regexp.MustCompile(`(?m)^(` + regexp.QuoteMeta(tag) + `:\s*)[^%\n]*$`)
	n := 0
	out := re.ReplaceAllStringFunc(content, func(line string) string {
		n++
		sub := re.FindStringSubmatch(line)
		return sub[1] + value
	})
	return out, n
}

// setAssignment replaces the value of a shell-style `key=value` line.
func setAssignment(content, key, value string) (string, int) {
	re := regexp.MustCompile(`(?m)^` + regexp.QuoteMeta(key) + `=.*$`)
	n := 0
	out := re.ReplaceAllStringFunc(content, func(string) string {
		n++
		return key + "=" + value
	})
	return out, n
}
