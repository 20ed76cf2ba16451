package console

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/samber/lo"
	"github.com/shirou/gopsutil/process"

	"github.com/Tyrowin/neochat/internal/server"
)

type processUsage struct {
	RSS uint64
	CPU float64
}

func selfUsage() (processUsage, error) {
	p, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return processUsage{}, err
	}
	mem, err := p.MemoryInfo()
	if err != nil {
		return processUsage{}, err
	}
	cpu, err := p.CPUPercent()
	if err != nil {
		return processUsage{}, err
	}
	return processUsage{RSS: mem.RSS, CPU: cpu}, nil
}

func (c *Console) runCommand(line string) {
	fields := strings.Fields(line)
	switch strings.ToLower(fields[0]) {
	case "/list":
		c.printMembers()
	case "/stats":
		c.printStats()
	case "/help":
		fmt.Fprintln(c.out, "可用命令: /list, /stats, /help")
	default:
		fmt.Fprintf(c.out, "未知命令: %s，输入 /help 查看帮助\n", fields[0])
	}
}

func (c *Console) printMembers() {
	members := c.relay.Members()
	if len(members) == 0 {
		fmt.Fprintln(c.out, "当前无在线用户")
		return
	}

	now := time.Now()
	table := newTable(c)
	table.SetHeader([]string{"Name", "Address", "Online"})
	table.AppendBulk(lo.Map(members, func(m server.Member, _ int) []string {
		return []string{m.Name, m.RemoteAddr, now.Sub(m.Since).Truncate(time.Second).String()}
	}))
	table.Render()
}

func (c *Console) printStats() {
	stats := c.relay.Stats()
	rows := [][]string{
		{"Uptime", stats.Uptime.Truncate(time.Second).String()},
		{"Connections", strconv.Itoa(stats.Open)},
		{"Members", strconv.Itoa(stats.Named)},
		{"Relayed", strconv.FormatUint(stats.Relayed, 10)},
	}
	if usage, err := c.usage(); err == nil {
		rows = append(rows,
			[]string{"RSS", fmt.Sprintf("%.1f MiB", float64(usage.RSS)/(1<<20))},
			[]string{"CPU", fmt.Sprintf("%.1f%%", usage.CPU)},
		)
	}

	table := newTable(c)
	table.SetHeader([]string{"Metric", "Value"})
	table.AppendBulk(rows)
	table.Render()
}

func newTable(c *Console) *tablewriter.Table {
	table := tablewriter.NewWriter(c.out)
	table.SetAutoWrapText(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetBorder(false)
	return table
}
