package sizing

import (
	"fmt"
	"strconv"
)

// trail collects rationale lines in the order stages emit them.
type trail struct {
	lines []string
}

func (t *trail) add(line string) {
	t.lines = append(t.lines, line)
}

func (t *trail) addf(format string, args ...any) {
	t.lines = append(t.lines, fmt.Sprintf(format, args...))
}

// snapshot returns a copy so results never share backing arrays with the trail.
func (t *trail) snapshot() []string {
	out := make([]string, len(t.lines))
	copy(out, t.lines)
	return out
}

func trimFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
