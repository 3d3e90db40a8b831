// Package export renders the completed-bookings ledger as CSV for download.
package export

import (
	"bytes"
	"encoding/csv"
	"errors"
	"strconv"

	"github.com/b-sukumar/salondost-dashboard/models"
)

// ErrNoData is returned when there is nothing to export; callers must reject
// the request before producing any file.
var ErrNoData = errors.New("no completed bookings to export")

var csvHeader = []string{"Date", "Client", "Service", "Stylist", "Amount"}

// PaymentsCSV encodes the records as UTF-8 CSV without a byte-order mark.
// Fields are quoted per RFC 4180, so commas or quotes in client names stay
// inside their column.
func PaymentsCSV(records []models.PaymentRecord) ([]byte, error) {
	if len(records) == 0 {
		return nil, ErrNoData
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(csvHeader); err != nil {
		return nil, err
	}
	for _, r := range records {
		row := []string{r.BookingDate, r.ClientName, r.ServiceName, r.StaffName, "₹" + strconv.Itoa(r.Amount)}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Filename is the attachment name for an export generated on date
// (YYYY-MM-DD).
func Filename(date string) string {
	return "SalonDost_Payments_" + date + ".csv"
}
