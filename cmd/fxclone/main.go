// Command fxclone clones effect modules under allocation accounting.
//
// Usage:
//
//	fxclone [flags] <command> <fixture>
//
// Examples:
//
//	fxclone clone testdata/bloom.toml               # Clone, release, report
//	fxclone clone --budget 4096 testdata/bloom.toml # Clone under a byte budget
//	fxclone sweep testdata/bloom.toml               # Fail every allocation once
//	fxclone check --wgpu testdata/bloom.toml        # Validate and check WebGPU mapping
//	fxclone dump --clone testdata/bloom.toml        # Print the cloned module
package main

import (
	"context"
	"errors"
	"os"

	"github.com/charmbracelet/fang"
)

func main() {
	root := newRootCommand()
	if err := fang.Execute(
		context.Background(),
		root,
		fang.WithVersion(versionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		os.Exit(1)
	}
}
