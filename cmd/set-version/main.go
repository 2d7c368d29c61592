// Command set-version detects a package's version from local source
// artifacts and writes it into build description files (RPM spec,
// Debian dsc/changelog, Arch PKGBUILD) in an output directory.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/toabctl/obs-service-set-version/internal/config"
	"github.com/toabctl/obs-service-set-version/internal/pep440"
	"github.com/toabctl/obs-service-set-version/internal/service"
	"github.com/toabctl/obs-service-set-version/internal/version"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		outDir     string
		setVersion string
		baseName   string
		files      []string
		configPath string
	)

	cmd := &cobra.Command{
		Use:   "set-version",
		Short: "Set the package version in build description files",
		Long: `set-version detects a package's version from local source artifacts
(archive filenames, archive contents, debian.changelog) and rewrites it
into copies of the build description files found alongside them. For
Python source distributions the version is converted to an
RPM-compatible form before it is written into spec files.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if outDir == "" {
				outDir = cfg.OutDir
			}
			if baseName == "" {
				baseName = cfg.BaseName
			}
			if len(files) == 0 {
				files = cfg.Files
			}

			return service.Run(service.Options{
				OutDir:    outDir,
				Version:   setVersion,
				BaseName:  baseName,
				Files:     files,
				Converter: pep440.RPMConverter{},
			})
		},
	}

	cmd.Flags().StringVar(&outDir, "outdir", "", "destination directory for patched file copies (required)")
	cmd.Flags().StringVar(&setVersion, "version", "", "version to set; skips detection")
	cmd.Flags().StringVar(&baseName, "basename", "", "package name prefix for filename and archive detection")
	cmd.Flags().StringArrayVar(&files, "file", nil, "file to process instead of the local listing; repeatable, accepts glob patterns")
	cmd.Flags().StringVar(&configPath, "config", ".set-version.yaml", "optional YAML defaults file")

	cmd.AddCommand(newVersionCmd())
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(version.Full())
		},
	}
}
