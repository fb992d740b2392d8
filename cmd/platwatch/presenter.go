package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"

	"platwatch/internal/model"
)

// consolePresenter renders watcher output to the terminal, standing in for
// the data grid and status bar of a desktop client.
type consolePresenter struct {
	out io.Writer
}

func newConsolePresenter(out io.Writer) *consolePresenter {
	return &consolePresenter{out: out}
}

func (p *consolePresenter) Status(text string) {
	fmt.Fprintln(p.out, text)
}

func (p *consolePresenter) ShowOrders(orders []model.RankedOrder) {
	if len(orders) == 0 {
		return
	}
	table := tablewriter.NewWriter(p.out)
	table.SetHeader([]string{"Platform", "Type", "Platinum", "Qty", "Status", "User", "Rank"})
	for _, o := range orders {
		table.Append([]string{
			o.Platform,
			o.OrderType,
			strconv.Itoa(o.Platinum),
			strconv.Itoa(o.Quantity),
			o.UserStatus,
			o.UserName,
			o.ModRank,
		})
	}
	table.Render()
}

func (p *consolePresenter) ShowSummary(summary model.Summary) {
	if !summary.HasData {
		fmt.Fprintln(p.out, "lowest: -  average: -")
		return
	}
	fmt.Fprintf(p.out, "lowest: %v  average: %.1f\n", summary.Lowest, summary.Average)
}
