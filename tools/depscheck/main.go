// Command depscheck fails the build when a package crosses the layering
// rules of the simulation core: the deterministic packages must stay free
// of clocks, entropy and transport, and the exported content package must
// not reach into internal code.
package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"sort"
	"strings"
)

type packageInfo struct {
	ImportPath string
	Imports    []string
}

// corePrefixes are the packages whose outputs must be reproducible from
// (catalog, loadout, seed) alone.
var corePrefixes = []string{
	"growfortress/simcore/fixed",
	"growfortress/simcore/internal/sim",
	"growfortress/simcore/internal/modifier",
}

// coreForbidden are imports that smuggle wall clocks, entropy or transport
// into the core.
var coreForbidden = []string{
	"time",
	"math/rand",
	"math/rand/v2",
	"crypto/rand",
	"os",
	"net/http",
	"growfortress/simcore/logging",
	"growfortress/simcore/internal/net",
}

func main() {
	cmd := exec.Command("go", "list", "-json", "./...")
	cmd.Env = os.Environ()
	output, err := cmd.Output()
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			os.Stderr.Write(exitErr.Stderr)
		}
		fmt.Fprintf(os.Stderr, "depscheck: failed to list packages: %v\n", err)
		os.Exit(1)
	}

	decoder := json.NewDecoder(bytes.NewReader(output))

	var violations []string
	for {
		var pkg packageInfo
		if err := decoder.Decode(&pkg); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			fmt.Fprintf(os.Stderr, "depscheck: failed to decode package info: %v\n", err)
			os.Exit(1)
		}

		for _, imp := range pkg.Imports {
			if violatesCore(pkg.ImportPath, imp) || violatesContent(pkg.ImportPath, imp) {
				violations = append(violations, fmt.Sprintf("%s -> %s", pkg.ImportPath, imp))
			}
		}
	}

	if len(violations) > 0 {
		sort.Strings(violations)
		fmt.Fprintln(os.Stderr, "depscheck: found forbidden imports:")
		for _, violation := range violations {
			fmt.Fprintf(os.Stderr, "  %s\n", violation)
		}
		os.Exit(1)
	}
}

func violatesCore(pkg, imp string) bool {
	if !hasAnyPrefix(pkg, corePrefixes) {
		return false
	}
	for _, forbidden := range coreForbidden {
		if imp == forbidden {
			return true
		}
	}
	return false
}

func violatesContent(pkg, imp string) bool {
	return strings.HasPrefix(pkg, "growfortress/simcore/content") &&
		strings.HasPrefix(imp, "growfortress/simcore/internal/")
}

func hasAnyPrefix(path string, prefixes []string) bool {
	for _, prefix := range prefixes {
		if path == prefix || strings.HasPrefix(path, prefix+"/") {
			return true
		}
	}
	return false
}
