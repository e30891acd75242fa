// Command inspect prints the moderation incident ledger as a table.
package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"mood-chat/domain"
	"mood-chat/repositories"
	"os"
	"strings"

	"github.com/dgraph-io/badger/v4"
	"github.com/mama165/sdk-go/database"
	"github.com/olekukonko/tablewriter"
	"github.com/samber/lo"
)

func main() {
	dbPath := flag.String("db", database.DefaultPath, "Path to badger DB")
	limit := flag.Int("limit", 50, "Maximum number of incidents, newest first")
	outcome := flag.String("outcome", "", "Only show this outcome (unsafe, unavailable, cleared)")
	flag.Parse()

	db, err := badger.Open(badger.DefaultOptions(*dbPath).
		WithReadOnly(true).
		WithLogger(nil).
		WithBypassLockGuard(true))
	if err != nil {
		log.Fatal("Error while opening Badger: ", err)
	}
	defer db.Close()

	incidents, err := repositories.NewIncidentRepository(db, slog.Default()).List(*limit)
	if err != nil {
		log.Fatal(err)
	}
	if *outcome != "" {
		incidents = lo.Filter(incidents, func(i domain.Incident, _ int) bool {
			return string(i.Outcome) == strings.ToLower(*outcome)
		})
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"At", "Outcome", "Score", "Lang", "Keywords", "Room", "Incident"})
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")

	for _, i := range incidents {
		table.Append([]string{
			i.At.Local().Format("2006-01-02 15:04:05"),
			string(i.Outcome),
			fmt.Sprintf("%.2f", i.Score),
			i.Lang,
			strings.Join(i.Keywords, ", "),
			shortID(string(i.Room)),
			shortID(i.ID.String()),
		})
	}
	table.Render()
	fmt.Printf("\n%d incident(s)\n", len(incidents))
}

// shortID keeps the first 8 characters for readability.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
