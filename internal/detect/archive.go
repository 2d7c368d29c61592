package detect

import (
	"archive/tar"
	"archive/zip"
	"compress/bzip2"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ulikunitz/xz"
)

// archiveSuffixes is the fixed set of recognized source archive
// suffixes, longest first so suffix matching picks ".tar.gz" over
// ".gz"-style partial matches.
var archiveSuffixes = []string{
	".tar.gz", ".tar.bz2", ".tar.xz", ".tgz", ".tbz2", ".tar", ".zip",
}

// hasArchiveSuffix reports whether name ends in one of the recognized
// archive suffixes.
func hasArchiveSuffix(name string) bool {
	for _, suffix := range archiveSuffixes {
		if strings.HasSuffix(name, suffix) {
			return true
		}
	}
	return false
}

// archiveMembers returns the member names of a tar or zip archive.
// The caller treats any error as "not a usable archive".
func archiveMembers(path string) ([]string, error) {
	if strings.HasSuffix(path, ".zip") {
		return zipMembers(path)
	}
	return tarMembers(path)
}

// zipMembers lists the member names of a zip archive.
func zipMembers(path string) ([]string, error) {
	r, err := zip.OpenReader(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	names := make([]string, 0, len(r.File))
	for _, f := range r.File {
		names = append(names, f.Name)
	}
	return names, nil
}

// tarMembers lists the member names of a tar archive, transparently
// decompressing gzip, bzip2 and xz containers.
func tarMembers(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var reader io.Reader = f
	switch {
	case strings.HasSuffix(path, ".tar.gz"), strings.HasSuffix(path, ".tgz"):
		gz, err := gzip.NewReader(f)
		if err != nil {
			return nil, err
		}
		defer gz.Close()
		reader = gz
	case strings.HasSuffix(path, ".tar.bz2"), strings.HasSuffix(path, ".tbz2"):
		reader = bzip2.NewReader(f)
	case strings.HasSuffix(path, ".tar.xz"):
		xzr, err := xz.NewReader(f)
		if err != nil {
			return nil, err
		}
		reader = xzr
	case strings.HasSuffix(path, ".tar"):
	default:
		return nil, fmt.Errorf("not a recognized archive: %s", path)
	}

	tr := tar.NewReader(reader)
	var names []string
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		names = append(names, hdr.Name)
	}
	return names, nil
}
