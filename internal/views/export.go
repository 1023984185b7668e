package views

import (
	"fmt"
	"io"
	"time"

	"jobtracker-engine/internal/domain"
	"jobtracker-engine/internal/store"
)

// WriteCSV writes rows in the same layout as the local data file.
func WriteCSV(w io.Writer, rows domain.Table) error {
	return store.WriteCSV(w, store.RowsOf(rows))
}

func ExportFilename(now time.Time) string {
	return fmt.Sprintf("job_applications_%s.csv", now.Format("20060102_150405"))
}
