// Command sheetstub serves an in-memory spreadsheet over the sheet RPC
// convention, for running the server locally without a real spreadsheet.
//
//	SHEET_ENDPOINT=http://localhost:8090/exec SHEET_ID=local go run ./cmd/server
package main

import (
	"flag"
	"log/slog"
	"net/http"
	"os"

	"github.com/JonMunkholm/sheetsync/internal/core"
	"github.com/JonMunkholm/sheetsync/internal/logging"
	"github.com/JonMunkholm/sheetsync/internal/sheet/sheettest"
)

func main() {
	addr := flag.String("addr", ":8090", "listen address")
	sheetID := flag.String("sheet", "local", "spreadsheet id to accept")
	flag.Parse()

	logging.Setup("info", "text")

	fake := sheettest.New(*sheetID)
	fake.Seed("Customers", []string{
		core.ColCustomerID, core.ColCustomerName, core.ColContactName,
		core.ColContactNumber, core.ColDate, core.ColAddress, core.ColItemIDs,
	})
	fake.Seed("Items", []string{
		core.ColItemID, core.ColItemCode, core.ColItemDescription,
		core.ColQty, core.ColRate, core.ColAmount, core.ColCustomerID,
	})
	fake.Seed("Records", []string{"Name", "Grade", "Email"},
		[]string{"Ann Lee", "A", "ann@example.com"},
		[]string{"Bob Ray", "B", "bob@example.com"},
	)

	slog.Info("sheet stub listening", "addr", *addr, "sheet_id", *sheetID)
	if err := http.ListenAndServe(*addr, fake); err != nil {
		slog.Error("sheet stub stopped", "error", err)
		os.Exit(1)
	}
}
