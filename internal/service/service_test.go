package service

import (
	"archive/tar"
	"bytes"
	"compress/gzip"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toabctl/obs-service-set-version/internal/pep440"
)

func writeTarGz(t *testing.T, path string, members ...string) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	gz := gzip.NewWriter(f)
	tw := tar.NewWriter(gz)
	for _, member := range members {
		require.NoError(t, tw.WriteHeader(&tar.Header{
			Name: member,
			Mode: 0644,
			Size: 0,
		}))
	}
	require.NoError(t, tw.Close())
	require.NoError(t, gz.Close())
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestRunMissingOutDir(t *testing.T) {
	t.Chdir(t.TempDir())

	err := Run(Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "output directory")
}

func TestRunDetectionFailure(t *testing.T) {
	t.Chdir(t.TempDir())

	err := Run(Options{OutDir: t.TempDir()})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no version")
}

func TestRunEndToEnd(t *testing.T) {
	t.Chdir(t.TempDir())
	outDir := t.TempDir()

	writeTarGz(t, "foo-0.2.tar.gz", "foo-0.2/README")
	writeFile(t, "foo.spec", "Name: foo\nVersion: 0.1\nRelease: 3\n")
	writeFile(t, "foo.dsc", "Source: foo\nVersion: 0.1\n")
	writeFile(t, "debian.changelog", "foo (0.1) unstable; urgency=low\n\n  * old entry\n")
	writeFile(t, "PKGBUILD", "pkgver=0.1\npkgrel=2\nmd5sums=('abc')\n")
	writeFile(t, "README", "not a build description\n")

	require.NoError(t, Run(Options{
		OutDir:    outDir,
		Converter: pep440.RPMConverter{},
	}))

	assert.Equal(t, "Name: foo\nVersion: 0.2\nRelease: 0\n",
		readFile(t, filepath.Join(outDir, "foo.spec")))
	assert.Equal(t, "Source: foo\nVersion: 0.2\n",
		readFile(t, filepath.Join(outDir, "foo.dsc")))
	assert.Equal(t, "foo (0.2) unstable; urgency=low\n\n  * old entry\n",
		readFile(t, filepath.Join(outDir, "debian.changelog")))
	assert.Equal(t, "pkgver=0.2\npkgrel=0\nmd5sums=('SKIP')\n",
		readFile(t, filepath.Join(outDir, "PKGBUILD")))

	_, err := os.Stat(filepath.Join(outDir, "README"))
	assert.True(t, os.IsNotExist(err), "unrelated files are not copied")
}

func TestRunPythonConversion(t *testing.T) {
	t.Chdir(t.TempDir())
	outDir := t.TempDir()

	writeTarGz(t, "foo-1.0rc1.tar.gz",
		"foo-1.0rc1/setup.py", "foo-1.0rc1/foo.egg-info/PKG-INFO")
	writeFile(t, "foo.spec", "Name: foo\nVersion: 0.9\nRelease: 1\n\n%setup -q\n")
	writeFile(t, "PKGBUILD", "pkgver=0.9\npkgrel=1\nmd5sums=('abc')\n")

	require.NoError(t, Run(Options{
		OutDir:    outDir,
		BaseName:  "foo",
		Converter: pep440.RPMConverter{},
	}))

	spec := readFile(t, filepath.Join(outDir, "foo.spec"))
	assert.Contains(t, spec, "Version: 1.0~rc1")
	assert.Contains(t, spec, "%define version_unconverted 1.0rc1")
	assert.Contains(t, spec, "%setup -q -n %{name}-%{version_unconverted}")

	// Non-RPM formats keep the upstream form.
	pkgbuild := readFile(t, filepath.Join(outDir, "PKGBUILD"))
	assert.Contains(t, pkgbuild, "pkgver=1.0rc1")
}

func TestRunNilConverterWarns(t *testing.T) {
	t.Chdir(t.TempDir())
	outDir := t.TempDir()

	writeTarGz(t, "foo-1.0rc1.tar.gz", "foo-1.0rc1/foo.egg-info/PKG-INFO")
	writeFile(t, "foo.spec", "Name: foo\nVersion: 0.9\nRelease: 1\n")

	var diag bytes.Buffer
	require.NoError(t, Run(Options{
		OutDir: outDir,
		Diag:   &diag,
	}))

	assert.Contains(t, diag.String(), "warning")
	spec := readFile(t, filepath.Join(outDir, "foo.spec"))
	assert.Contains(t, spec, "Version: 1.0rc1", "identity fallback writes the version unchanged")
	assert.NotContains(t, spec, "version_unconverted")
}

func TestRunExplicitVersionSkipsDetection(t *testing.T) {
	t.Chdir(t.TempDir())
	outDir := t.TempDir()

	// No archives present; detection would fail.
	writeFile(t, "foo.spec", "Name: foo\nVersion: 0.1\nRelease: 1\n")

	require.NoError(t, Run(Options{
		OutDir:  outDir,
		Version: "9.9",
	}))

	assert.Equal(t, "Name: foo\nVersion: 9.9\nRelease: 0\n",
		readFile(t, filepath.Join(outDir, "foo.spec")))
}

func TestRunFileRestriction(t *testing.T) {
	t.Chdir(t.TempDir())
	outDir := t.TempDir()

	writeFile(t, "foo.spec", "Name: foo\nVersion: 0.1\n")
	writeFile(t, "PKGBUILD", "pkgver=0.1\n")

	require.NoError(t, Run(Options{
		OutDir:  outDir,
		Version: "0.2",
		Files:   []string{"*.spec"},
	}))

	assert.Equal(t, "Name: foo\nVersion: 0.2\n",
		readFile(t, filepath.Join(outDir, "foo.spec")))

	_, err := os.Stat(filepath.Join(outDir, "PKGBUILD"))
	assert.True(t, os.IsNotExist(err), "files outside --file are not processed")
}
