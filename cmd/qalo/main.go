package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/Gejsi/qalo/pkg/driver"
)

const cliToolVersion = "qalo 0.1.0"

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	runner := driver.NewRunner()

	var files []string
	for _, arg := range args {
		switch arg {
		case "--help", "-h":
			printUsage()
			return 0
		case "--version", "-V":
			fmt.Fprintln(os.Stdout, cliToolVersion)
			return 0
		case "--keep-going", "-k":
			runner.ContinueOnError = true
		default:
			files = append(files, arg)
		}
	}

	if len(files) == 0 {
		manifest, err := driver.LoadManifest(driver.ManifestName)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				fmt.Fprintf(os.Stderr, "qalo requires source files or a %s manifest\n", driver.ManifestName)
				printUsage()
				return 1
			}
			fmt.Fprintf(os.Stderr, "failed to load manifest: %v\n", err)
			return 1
		}
		files = manifest.ResolveFiles()
		if manifest.ContinueOnError {
			runner.ContinueOnError = true
		}
	}

	if err := runner.Run(files); err != nil {
		return 1
	}
	return 0
}

func printUsage() {
	fmt.Fprintln(os.Stderr, "Usage:")
	fmt.Fprintln(os.Stderr, "  qalo <file.ql> [file.ql ...]")
	fmt.Fprintln(os.Stderr, "  qalo -k <file.ql> [file.ql ...]   continue past failing files")
	fmt.Fprintln(os.Stderr, "  qalo                              run the files listed in qalo.yml")
}
