package console

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"

	"github.com/daniilsolovey/trading-admin/internal/domain"
)

func newTable(w io.Writer, header ...string) *tablewriter.Table {
	t := tablewriter.NewWriter(w)
	t.SetHeader(header)
	t.SetAutoWrapText(false)
	t.SetAutoFormatHeaders(false)
	t.SetAlignment(tablewriter.ALIGN_LEFT)
	return t
}

func renderMeta(w io.Writer, m domain.PaginationMeta, selected int) {
	fmt.Fprintf(w, "page %d/%d, %d total", m.CurrentPage, max(m.TotalPages, 1), m.Total)
	if selected > 0 {
		fmt.Fprintf(w, ", %d selected", selected)
	}
	fmt.Fprintln(w)
}

func mark(selected bool) string {
	if selected {
		return "*"
	}
	return ""
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return ""
}

func date(t *time.Time) string {
	if t == nil || t.IsZero() {
		return "-"
	}
	return t.Format("2006-01-02")
}

func i64(n int64) string { return strconv.FormatInt(n, 10) }

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

func join(items []string) string { return strings.Join(items, ",") }
