// Package service orchestrates version detection, conversion, and
// file patching for a single run.
package service

import (
	"fmt"
	"io"
	"os"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/toabctl/obs-service-set-version/internal/detect"
	"github.com/toabctl/obs-service-set-version/internal/patch"
	"github.com/toabctl/obs-service-set-version/internal/pep440"
)

// Options configures a run.
type Options struct {
	// OutDir is the destination for all patched file copies. Required.
	OutDir string
	// Version, when set, skips detection entirely.
	Version string
	// BaseName constrains filename and archive-member detection to
	// files starting with this prefix.
	BaseName string
	// Files restricts processing to these files instead of the full
	// directory listing. Entries may be glob patterns.
	Files []string
	// Converter maps the detected version to its RPM spec form when
	// the sources are a Python sdist. A nil Converter degrades to an
	// identity mapping with a warning.
	Converter pep440.Converter
	// Diag receives warnings. Defaults to os.Stderr.
	Diag io.Writer
}

// Run executes one detect-convert-patch pass.
func Run(opts Options) error {
	diag := opts.Diag
	if diag == nil {
		diag = os.Stderr
	}

	if opts.OutDir == "" {
		return fmt.Errorf("no output directory given")
	}

	files, err := resolveFiles(opts.Files)
	if err != nil {
		return err
	}

	version := opts.Version
	if version == "" {
		detected, ok := detect.Detect(files, opts.BaseName)
		if !ok {
			return fmt.Errorf("no version given and no version found in local files")
		}
		version = detected
	}

	versions := patch.Versions{Upstream: version, RPM: version}
	if detect.PackageType(files) == detect.TypePython {
		converter := opts.Converter
		if converter == nil {
			fmt.Fprintln(diag, "warning: PEP 440 version conversion unavailable, using version unchanged")
			converter = pep440.Identity{}
		}
		versions.RPM = converter.Convert(version)
	}

	for _, file := range files {
		for _, p := range patch.Patchers {
			if !p.Matches(file) {
				continue
			}
			if err := p.Patch(file, opts.OutDir, versions); err != nil {
				return err
			}
		}
	}

	return nil
}

// resolveFiles expands the --file arguments, treating each as a glob
// pattern against the working directory. An argument matching nothing
// is kept literally so a missing explicit file surfaces as a read
// error later. Without arguments the full directory listing is used,
// newest first.
func resolveFiles(args []string) ([]string, error) {
	if len(args) == 0 {
		return detect.List(".")
	}

	var files []string
	for _, arg := range args {
		matches, err := doublestar.FilepathGlob(arg)
		if err != nil {
			return nil, fmt.Errorf("bad file pattern %q: %w", arg, err)
		}
		if len(matches) == 0 {
			files = append(files, arg)
			continue
		}
		files = append(files, matches...)
	}
	return files, nil
}
