// Command report prints the submission report for a period as a table.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"vendor-tracker/internal/database"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/olekukonko/tablewriter"
)

func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func main() {
	_ = godotenv.Load()

	period := flag.String("period", "week", "day, week, month or year")
	driver := flag.String("driver", getEnv("DB_DRIVER", "postgres"), "database driver (postgres or sqlite)")
	dsn := flag.String("dsn", os.Getenv("DB_DSN"), "database DSN")
	flag.Parse()

	if *dsn == "" {
		color.Red("DB_DSN is not set; pass -dsn or set it in .env")
		os.Exit(2)
	}

	db, err := database.Open(*driver, *dsn)
	if err != nil {
		color.Red("Could not connect to database: %v", err)
		os.Exit(1)
	}

	report, err := database.BuildSubmissionReport(db, *period, time.Now())
	if err != nil {
		color.Red("Could not build report: %v", err)
		os.Exit(1)
	}

	render(os.Stdout, report)
}

func render(w io.Writer, report *database.SubmissionReport) {
	heading := color.New(color.FgCyan, color.Bold)
	heading.Fprintf(w, "\n=== Submissions: last %s (since %s) ===\n",
		report.Period, report.Since.Format("2006-01-02"))

	if len(report.ConsultantSummary) == 0 {
		color.New(color.FgYellow).Fprintln(w, "No submissions in this period.")
		return
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Rank", "Consultant", "ID", "Submissions"})
	for i, row := range report.ConsultantSummary {
		table.Append([]string{
			strconv.Itoa(i + 1),
			row.ConsultantName,
			strconv.FormatUint(uint64(row.ConsultantID), 10),
			strconv.FormatInt(row.Count, 10),
		})
	}
	table.SetFooter([]string{"", "", "Total", strconv.FormatInt(report.TotalSubmissions, 10)})
	table.Render()

	fmt.Fprintln(w)
}
