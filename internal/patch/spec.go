package patch

import (
	"regexp"
	"strings"
)

// Pre-compiled regexes for RPM spec rewriting
var (
	defineUnconvertedRe = regexp.MustCompile(`(?m)^%define version_unconverted .*$`)
	nameLineRe          = regexp.MustCompile(`(?m)^Name:.*$`)
	setupLineRe         = regexp.MustCompile(`(?m)^%setup\b.*$`)
)

var specPatcher = Patcher{
	Name:    "spec",
	Matches: func(name string) bool { return strings.HasSuffix(name, ".spec") },
	apply:   applySpec,
}

// applySpec sets Version and Release. When PEP 440 conversion changed
// the version, the original upstream form is preserved in a
// `version_unconverted` macro and the %setup source directory is
// rewritten to use it, since the extracted archive still carries the
// upstream version in its directory name.
func applySpec(content string, v Versions) (string, bool) {
	out, n1 := setTag(content, "Version", v.RPM)
	out, n2 := setTag(out, "Release", "0")
	changed := n1+n2 > 0

	if v.converted() {
		var defined, rewritten bool
		out, defined = defineUnconverted(out, v.Upstream)
		out, rewritten = rewriteSetup(out)
		changed = changed || defined || rewritten
	}

	return out, changed
}

// defineUnconverted updates an existing `%define version_unconverted`
// line or inserts one directly before the Name tag.
func defineUnconverted(content, upstream string) (string, bool) {
	line := "%define version_unconverted " + upstream
	if defineUnconvertedRe.MatchString(content) {
		return defineUnconvertedRe.ReplaceAllString(content, line), true
	}
	if loc := nameLineRe.FindStringIndex(content); loc != nil {
		return content[:loc[0]] + line + "\n" + content[loc[0]:], true
	}
	return content, false
}

// rewriteSetup points the %setup source directory at the
// version_unconverted macro. An implicit directory (no -n) becomes an
// explicit `-n %{name}-%{version_unconverted}`; an explicit one gets
// its `%{version}` reference swapped. Other flags, -q included, stay
// untouched.
func rewriteSetup(content string) (string, bool) {
	loc := setupLineRe.FindStringIndex(content)
	if loc == nil {
		return content, false
	}
	line := rewriteSetupLine(content[loc[0]:loc[1]])
	return content[:loc[0]] + line + content[loc[1]:], true
}

func rewriteSetupLine(line string) string {
	fields := strings.Fields(line)
	for i, f := range fields {
		if f == "-n" && i+1 < len(fields) {
			fields[i+1] = strings.ReplaceAll(fields[i+1], "%{version}", "%{version_unconverted}")
			return strings.Join(fields, " ")
		}
		if strings.HasPrefix(f, "-n") && len(f) > len("-n") {
			fields[i] = "-n" + strings.ReplaceAll(f[len("-n"):], "%{version}", "%{version_unconverted}")
			return strings.Join(fields, " ")
		}
	}
	return strings.Join(append(fields, "-n", "%{name}-%{version_unconverted}"), " ")
}
