package cli

import (
	"fmt"
	"io"

	"github.com/custodia-labs/ghtask/internal/core/domain"
)

// progressMonitor prints connector progress as a single line per task.
type progressMonitor struct {
	w     io.Writer
	name  string
	total int
	done  int
}

var _ domain.ProgressMonitor = (*progressMonitor)(nil)

// newProgressMonitor returns a monitor writing to w, or a null monitor
// when structured output is requested.
func newProgressMonitor(w io.Writer) domain.ProgressMonitor {
	if outputFormat() != formatText {
		return domain.NullMonitor{}
	}
	return &progressMonitor{w: w}
}

func (m *progressMonitor) BeginTask(name string, totalWork int) {
	m.name, m.total, m.done = name, totalWork, 0
	fmt.Fprintf(m.w, "%s...\n", name)
}

func (m *progressMonitor) Worked(work int) {
	m.done += work
	if m.total > 0 {
		fmt.Fprintf(m.w, "  %d/%d\n", m.done, m.total)
	}
}

func (m *progressMonitor) Done() {
	if m.name != "" {
		fmt.Fprintf(m.w, "%s: done\n", m.name)
	}
}
