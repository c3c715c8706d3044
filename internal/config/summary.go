package config

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// MaskSecret hides all but the last four characters of a credential.
func MaskSecret(s string) string {
	switch {
	case s == "":
		return "(not set)"
	case len(s) <= 4:
		return strings.Repeat("*", len(s))
	default:
		return strings.Repeat("*", len(s)-4) + s[len(s)-4:]
	}
}

// WriteSummary renders cfg as a table to w. Credentials are masked.
func (cfg *RootConfig) WriteSummary(w io.Writer) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetTitle("ATERE CONFIGURATION")
	t.SetStyle(table.StyleRounded)

	t.AppendRows([]table.Row{
		{"Log Level", cfg.LogLevel},
		{"Data Directory", cfg.DataDirectory},
	})
	t.AppendSeparator()

	names := make([]string, 0, len(cfg.Exchanges))
	for name := range cfg.Exchanges {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		ex := cfg.Exchanges[name]
		mode := "live"
		if ex.Sandbox {
			mode = "sandbox"
		}
		t.AppendRows([]table.Row{
			{"Exchange", fmt.Sprintf("%s (%s)", ex.Name, mode)},
			{"  API Key", MaskSecret(ex.APIKey)},
			{"  API Secret", MaskSecret(ex.APISecret)},
			{"  Timeout", ex.Timeout.Std().String()},
		})
	}
	t.AppendSeparator()

	t.AppendRows([]table.Row{
		{"Min Backtest Days", cfg.Research.MinBacktestDays},
		{"Strategies / Generation", cfg.Research.MaxStrategiesPerGeneration},
		{"Virtual Budget", fmt.Sprintf("$%.2f", cfg.Research.VirtualBudget)},
		{"Risk-free Rate", fmt.Sprintf("%.2f%%", cfg.Research.RiskFreeRate*100)},
	})
	t.AppendSeparator()

	persistence := "disabled"
	if cfg.Firebase.Enabled() {
		persistence = cfg.Firebase.ProjectID
		if cfg.Firebase.UseEmulator {
			persistence += " @ " + cfg.Firebase.EmulatorHost
		}
	}
	t.AppendRows([]table.Row{
		{"Persistence", persistence},
	})
	t.AppendSeparator()

	t.AppendRows([]table.Row{
		{"Min Sharpe", fmt.Sprintf("%.2f", cfg.MinSharpeRatio)},
		{"Max Drawdown", fmt.Sprintf("%.2f%%", cfg.MaxDrawdownPct)},
		{"Min Win Rate", fmt.Sprintf("%.2f%%", cfg.MinWinRate*100)},
	})

	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, WidthMin: 24, Align: text.AlignLeft},
		{Number: 2, WidthMin: 30, Align: text.AlignLeft},
	})

	t.Render()
}
