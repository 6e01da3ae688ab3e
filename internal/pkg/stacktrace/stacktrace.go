// Package stacktrace trims runtime stacks down to this module's own frames.
package stacktrace

import "strings"

const marker = "internal/"

// InternalPaths returns "internal/.../file.go:line" for every frame in a
// runtime/debug.Stack dump that points into an internal package.
func InternalPaths(stack []byte) []string {
	var paths []string
	for line := range strings.SplitSeq(string(stack), "\n") {
		// file lines are tab indented, function lines are not
		if !strings.HasPrefix(line, "\t") {
			continue
		}

		frame := strings.TrimSpace(line)
		frame, _, _ = strings.Cut(frame, " +0x")

		i := strings.Index(frame, "/"+marker)
		if i < 0 || !strings.Contains(frame, ".go:") {
			continue
		}
		paths = append(paths, frame[i+1:])
	}
	return paths
}
