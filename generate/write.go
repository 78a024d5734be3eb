package generate

import (
	"bytes"
	"os"
	"path/filepath"

	"github.com/teranos/arbgen/derive/emit"
	"github.com/teranos/arbgen/errors"
	"github.com/teranos/arbgen/version"
)

// Action is what Write did to one file.
type Action string

const (
	Written   Action = "written"
	Unchanged Action = "unchanged"
	Removed   Action = "removed"
)

// Change records one file Write considered.
type Change struct {
	File   string `json:"file" yaml:"file"`
	Action Action `json:"action" yaml:"action"`
}

// Write brings the package's generated files in line with res.Output.
// Files with identical content are left untouched. A file that is no longer
// produced is removed, but only if arbgen wrote it.
func Write(res *Result, opts Options) ([]Change, error) {
	var changes []Change
	for _, f := range files(res, opts) {
		c, err := writeOne(f.path, f.want)
		if err != nil {
			return changes, err
		}
		if c != nil {
			changes = append(changes, *c)
		}
	}
	return changes, nil
}

type file struct {
	path string
	want []byte
}

// files pairs each output path with its expected content (nil: absent).
func files(res *Result, opts Options) []file {
	var src, test []byte
	if res.Output != nil {
		src, test = res.Output.Source, res.Output.Test
	}
	return []file{
		{filepath.Join(res.Package.Dir, opts.OutputFile), src},
		{filepath.Join(res.Package.Dir, opts.TestFile), test},
	}
}

func writeOne(path string, want []byte) (*Change, error) {
	have, err := os.ReadFile(path)
	exists := err == nil
	if err != nil && !os.IsNotExist(err) {
		return nil, errors.Wrapf(err, "failed to read %s", path)
	}

	if want == nil {
		if !exists || !generated(have) {
			return nil, nil
		}
		if err := os.Remove(path); err != nil {
			return nil, errors.Wrapf(err, "failed to remove stale %s", path)
		}
		return &Change{File: path, Action: Removed}, nil
	}

	if exists && bytes.Equal(have, want) {
		return &Change{File: path, Action: Unchanged}, nil
	}
	if err := os.WriteFile(path, want, 0644); err != nil {
		return nil, errors.Wrapf(err, "failed to write %s", path)
	}
	return &Change{File: path, Action: Written}, nil
}

func generated(src []byte) bool {
	_, ok := emit.ParseHeader(src)
	return ok
}

// Stale describes a generated file that does not match fresh output.
type Stale struct {
	File   string `json:"file" yaml:"file"`
	Reason string `json:"reason" yaml:"reason"`
}

// Check compares fresh output with what is on disk without writing. Header
// versions are compared by semver major: output from a compatible arbgen
// counts as current when the bodies match.
func Check(res *Result, opts Options) ([]Stale, error) {
	var stale []Stale
	for _, f := range files(res, opts) {
		have, err := os.ReadFile(f.path)
		if err != nil && !os.IsNotExist(err) {
			return nil, errors.Wrapf(err, "failed to read %s", f.path)
		}
		exists := err == nil

		reason := ""
		switch {
		case f.want == nil && exists && generated(have):
			reason = "no longer generated"
		case f.want == nil:
		case !exists:
			reason = "missing"
		default:
			reason = compare(have, f.want, opts.Version)
		}
		if reason != "" {
			stale = append(stale, Stale{File: f.path, Reason: reason})
		}
	}
	return stale, nil
}

func compare(have, want []byte, current string) string {
	written, ok := emit.ParseHeader(have)
	if !ok {
		return "not generated by arbgen"
	}
	compatible, err := version.Compatible(written, current)
	if err != nil {
		return "unreadable header version " + written
	}
	if !compatible {
		return "written by arbgen " + written + ", incompatible with " + current
	}
	if !bytes.Equal(body(have), body(want)) {
		return "content differs"
	}
	return ""
}

// body drops the header line.
func body(src []byte) []byte {
	if i := bytes.IndexByte(src, '\n'); i >= 0 {
		return src[i+1:]
	}
	return nil
}
