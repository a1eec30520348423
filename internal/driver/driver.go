// Package driver implements the per-run file/stdio iteration: for each
// positional argument (or "-" once if none given), dispatch to the
// seekable or pipe half of the processor and aggregate failures.
package driver

import (
	"io"
	"os"

	"github.com/sargunv/gbheaderfix/internal/reporter"
	"github.com/sargunv/gbheaderfix/lib/gbrom"
)

// Run processes every path in paths (stdio, via "-", if paths is empty)
// against plan, writing diagnostics to diagOut. It returns true only if
// every file completed without a fatal error.
func Run(plan *gbrom.HeaderPatchPlan, paths []string, diagOut io.Writer) bool {
	if len(paths) == 0 {
		paths = []string{"-"}
	}

	ok := true
	for _, path := range paths {
		if !processOne(plan, path, diagOut) {
			ok = false
		}
	}
	return ok
}

func processOne(plan *gbrom.HeaderPatchPlan, path string, diagOut io.Writer) bool {
	rep := reporter.New(diagOut, path)

	if path == "-" {
		if err := gbrom.ProcessPipe(plan, os.Stdin, os.Stdout); err != nil {
			rep.Fatal("%s", err)
		}
		return !rep.Failed()
	}

	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		rep.Fatal("opening file: %s", err)
		return false
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		rep.Fatal("statting file: %s", err)
		return false
	}
	if !info.Mode().IsRegular() {
		rep.Fatal("not a regular file")
		return false
	}

	if err := gbrom.ProcessSeekable(plan, f, info.Size()); err != nil {
		rep.Fatal("%s", err)
		return false
	}
	return true
}
