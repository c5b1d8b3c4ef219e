package opmon

import (
	"fmt"
	"io"
	"sort"
	"sync"
	"time"

	"github.com/lunabridge/lunabridge/engine/lblog"
)

// OpInfo is the accumulated statistics of one operation name
type OpInfo struct {
	Count         uint64
	TotalDuration time.Duration
	MaxDuration   time.Duration
}

// Avg returns the average duration
func (info OpInfo) Avg() time.Duration {
	if info.Count == 0 {
		return 0
	}
	return info.TotalDuration / time.Duration(info.Count)
}

// Monitor records durations of named operations
type Monitor struct {
	sync.Mutex
	opInfos map[string]*OpInfo
	now     func() time.Time
}

// NewMonitor creates a monitor using the wall clock
func NewMonitor() *Monitor {
	return NewMonitorWithClock(time.Now)
}

// NewMonitorWithClock creates a monitor reading time from now
func NewMonitorWithClock(now func() time.Time) *Monitor {
	return &Monitor{
		opInfos: map[string]*OpInfo{},
		now:     now,
	}
}

func (monitor *Monitor) record(opname string, duration time.Duration) {
	monitor.Lock()
	info := monitor.opInfos[opname]
	if info == nil {
		info = &OpInfo{}
		monitor.opInfos[opname] = info
	}
	info.Count += 1
	info.TotalDuration += duration
	if duration > info.MaxDuration {
		info.MaxDuration = duration
	}
	monitor.Unlock()
}

// Get returns a copy of the statistics of opname
func (monitor *Monitor) Get(opname string) (OpInfo, bool) {
	monitor.Lock()
	defer monitor.Unlock()
	info, ok := monitor.opInfos[opname]
	if !ok {
		return OpInfo{}, false
	}
	return *info, true
}

// Dump writes all statistics sorted by name to w and clears them
func (monitor *Monitor) Dump(w io.Writer) {
	type _T struct {
		name string
		info *OpInfo
	}
	var opInfos map[string]*OpInfo
	monitor.Lock()
	opInfos = monitor.opInfos
	monitor.opInfos = map[string]*OpInfo{} // clear to be empty
	monitor.Unlock()

	var copyOpInfos []_T
	for name, opinfo := range opInfos {
		copyOpInfos = append(copyOpInfos, _T{name, opinfo})
	}
	sort.Slice(copyOpInfos, func(i, j int) bool {
		return copyOpInfos[i].name < copyOpInfos[j].name
	})
	fmt.Fprint(w, "=====================================================================================\n")
	for _, _t := range copyOpInfos {
		opname, opinfo := _t.name, _t.info
		fmt.Fprintf(w, "%-30sx%-10d AVG %-10s MAX %-10s\n", opname, opinfo.Count, opinfo.Avg(), opinfo.MaxDuration)
	}
}

// Operation is the type of operation to be monitored
type Operation struct {
	monitor   *Monitor
	name      string
	startTime time.Time
}

// StartOperation creates a new operation
func (monitor *Monitor) StartOperation(operationName string) *Operation {
	return &Operation{
		monitor:   monitor,
		name:      operationName,
		startTime: monitor.now(),
	}
}

// Finish finishes the operation and records the duration of operation
func (op *Operation) Finish(warnThreshold time.Duration) time.Duration {
	takeTime := op.monitor.now().Sub(op.startTime)
	op.monitor.record(op.name, takeTime)
	if warnThreshold > 0 && takeTime >= warnThreshold {
		lblog.Warnf("opmon: operation %s takes %s > %s", op.name, takeTime, warnThreshold)
	}
	return takeTime
}
