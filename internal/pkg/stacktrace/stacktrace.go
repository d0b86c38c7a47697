package stacktrace

import "strings"

// InternalPaths extracts the "internal/<pkg>/<file>.go:<line>" frames of a
// debug.Stack dump. Frames outside internal/ are dropped.
func InternalPaths(stack []byte) []string {
	lines := strings.Split(string(stack), "\n")
	paths := make([]string, 0, len(lines)/2)

	for _, line := range lines {
		line = strings.TrimSpace(line)

		_, after, found := strings.Cut(line, "/internal/")
		if !found {
			continue
		}

		loc, _, _ := strings.Cut(after, " ")
		if !strings.Contains(loc, ".go:") {
			continue
		}

		paths = append(paths, "internal/"+loc)
	}

	return paths
}
