package shell

import (
	"fmt"
	"runtime"
	"strconv"

	"github.com/dustin/go-humanize"

	"opshell/internal/discovery"
	"opshell/pkg/optypes"
)

// Check status cells.
const (
	StatusPass = "✔ Pass"
	StatusFail = "✘ Fail"
)

// StatusRows describes the running process and session.
func (c *Controller) StatusRows() []optypes.KeyValue {
	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	return []optypes.KeyValue{
		{Label: "Environment", Value: c.settings.Environment},
		{Label: "Version", Value: c.settings.Version},
		{Label: "Build", Value: c.settings.Build},
		{Label: "Go Version", Value: runtime.Version()},
		{Label: "Platform", Value: runtime.GOOS + "/" + runtime.GOARCH},
		{Label: "Memory In Use", Value: humanize.IBytes(mem.HeapAlloc)},
		{Label: "Memory Reserved", Value: humanize.IBytes(mem.Sys)},
		{Label: "Goroutines", Value: strconv.Itoa(runtime.NumGoroutine())},
		{Label: "Session", Value: c.session.ID()},
		{Label: "Session Age", Value: humanize.Time(c.session.CreatedAt())},
		{Label: "Variables", Value: strconv.Itoa(c.session.VariableCount())},
		{Label: "Safety Confirmation", Value: onOff(c.settings.Production && c.settings.SafeMode && !c.settings.SafeModeOverride)},
	}
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

// CheckTableRows flattens check rows into (Check, Status, Message) cells.
func CheckTableRows(rows []discovery.CheckRow) [][]string {
	out := make([][]string, 0, len(rows))
	for _, row := range rows {
		status := StatusFail
		if row.Result.Successful {
			status = StatusPass
		}
		out = append(out, []string{row.Check, status, row.Result.Message})
	}
	return out
}

// SystemStatus shows the process summary and runs every system check.
func (c *Controller) SystemStatus() {
	c.out.Println("📊 System Status")
	c.out.KeyValues(c.StatusRows())

	c.out.Info("Running system checks...")
	checks := c.checks.Checks()
	if len(checks) == 0 {
		c.out.Note("No custom system checks configured.")
		c.out.Pause(pauseContinue)
		return
	}

	rows := c.checks.RunAll()
	if len(rows) == 0 {
		c.out.Note("All checks ran, but returned no results.")
	} else {
		c.out.Table([]string{"Check", "Status", "Message"}, CheckTableRows(rows))
		failed := 0
		for _, row := range rows {
			if !row.Result.Successful {
				failed++
			}
		}
		if failed > 0 {
			c.out.Warning(fmt.Sprintf("%d of %d checks failed.", failed, len(rows)))
		}
	}
	c.out.Pause(pauseContinue)
}

// ShowHistory lists the executed scripts, oldest first.
func (c *Controller) ShowHistory() {
	history := c.session.History()
	if len(history) == 0 {
		c.out.Info("No command history available.")
		return
	}

	c.out.Println("📜 Command History")
	for i, entry := range history {
		c.out.Println(fmt.Sprintf("  %d. %s", i+1, entry))
	}
	c.out.Pause(pauseContinue)
}
