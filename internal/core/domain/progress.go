package domain

// ProgressMonitor receives progress of long-running connector operations.
type ProgressMonitor interface {
	BeginTask(name string, totalWork int)
	Worked(work int)
	Done()
}

// NullMonitor ignores all progress.
type NullMonitor struct{}

func (NullMonitor) BeginTask(string, int) {}
func (NullMonitor) Worked(int)            {}
func (NullMonitor) Done()                 {}

// MonitorOrNull returns m, or a NullMonitor when m is nil.
func MonitorOrNull(m ProgressMonitor) ProgressMonitor {
	if m == nil {
		return NullMonitor{}
	}
	return m
}
