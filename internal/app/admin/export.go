package admin

import (
	"fmt"
	"io"
	"strings"
	"time"

	"archatara/internal/domain/catalog"
	"archatara/internal/domain/reservation"
)

// exportHeader is the fixed CSV header of the bulk export.
var exportHeader = []string{"Date", "Type", "Unit", "Customer Name", "Phone", "Email", "Status"}

// ExportFilename names the download: archatara_bookings_<ISO-date>.csv.
func ExportFilename(now time.Time) string {
	return "archatara_bookings_" + now.Format(reservation.DateLayout) + ".csv"
}

// ExportCSV writes all reservations as UTF-8 CSV with a byte-order
// mark, every string field double-quoted. The Type column carries the
// catalog display name when the type id still resolves.
func ExportCSV(w io.Writer, items []reservation.Reservation, cat *catalog.Catalog) error {
	if _, err := io.WriteString(w, "\ufeff"); err != nil {
		return err
	}
	if err := writeRow(w, exportHeader); err != nil {
		return err
	}
	for _, r := range items {
		typeName := r.TypeID
		if typ, err := cat.TypeByID(r.TypeID); err == nil {
			typeName = typ.Name
		}
		row := []string{r.Date, typeName, r.UnitID, r.CustomerName, r.CustomerPhone, r.CustomerEmail, string(r.Status)}
		if err := writeRow(w, row); err != nil {
			return err
		}
	}
	return nil
}

// writeRow quotes every field unconditionally; encoding/csv quotes only
// when required, which breaks the fixed export contract consumed by the
// venue's spreadsheet templates.
func writeRow(w io.Writer, fields []string) error {
	quoted := make([]string, len(fields))
	for i, f := range fields {
		quoted[i] = `"` + strings.ReplaceAll(f, `"`, `""`) + `"`
	}
	_, err := fmt.Fprintf(w, "%s\r\n", strings.Join(quoted, ","))
	return err
}
