package store

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"

	"jobtracker-engine/internal/domain"
)

// ErrNoLocalData means the local tabular file does not exist yet.
var ErrNoLocalData = errors.New("no local data file")

const lockRetry = 25 * time.Millisecond

// LocalFiles is the local tier: a CSV file that is the source of truth for
// fallback loads and a JSON backup written alongside it.
type LocalFiles struct {
	CSVPath  string
	JSONPath string
}

func NewLocalFiles(csvPath, jsonPath string) *LocalFiles {
	return &LocalFiles{CSVPath: csvPath, JSONPath: jsonPath}
}

func (l *LocalFiles) lock() *flock.Flock {
	return flock.New(l.CSVPath + ".lock")
}

// Exists reports whether the CSV file is present.
func (l *LocalFiles) Exists() bool {
	_, err := os.Stat(l.CSVPath)
	return err == nil
}

// Read parses the CSV file under a shared lock.
func (l *LocalFiles) Read(ctx context.Context) (domain.Table, error) {
	if !l.Exists() {
		return nil, ErrNoLocalData
	}
	fl := l.lock()
	if _, err := fl.TryRLockContext(ctx, lockRetry); err != nil {
		return nil, fmt.Errorf("lock %s: %w", l.CSVPath, err)
	}
	defer func() { _ = fl.Unlock() }()

	f, err := os.Open(l.CSVPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNoLocalData
		}
		return nil, err
	}
	defer f.Close()

	raws, err := ReadCSV(f)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", l.CSVPath, err)
	}
	table, err := DecodeRows(raws)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", l.CSVPath, err)
	}
	return table, nil
}

// Write replaces both local files under an exclusive lock. Each file is
// written to a temp file and renamed into place.
func (l *LocalFiles) Write(ctx context.Context, t domain.Table) error {
	if err := os.MkdirAll(filepath.Dir(l.CSVPath), 0o755); err != nil {
		return err
	}

	fl := l.lock()
	if _, err := fl.TryLockContext(ctx, lockRetry); err != nil {
		return fmt.Errorf("lock %s: %w", l.CSVPath, err)
	}
	defer func() { _ = fl.Unlock() }()

	rows := RowsOf(t)

	var csvBuf bytes.Buffer
	if err := WriteCSV(&csvBuf, rows); err != nil {
		return err
	}
	if err := writeAtomic(l.CSVPath, csvBuf.Bytes()); err != nil {
		return fmt.Errorf("write %s: %w", l.CSVPath, err)
	}

	js, err := json.MarshalIndent(rows, "", "  ")
	if err != nil {
		return err
	}
	if err := writeAtomic(l.JSONPath, js); err != nil {
		return fmt.Errorf("write %s: %w", l.JSONPath, err)
	}
	return nil
}

// WriteCSV writes a header row and one line per row in Columns order.
func WriteCSV(w io.Writer, rows []Row) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Columns); err != nil {
		return err
	}
	for _, r := range rows {
		if err := cw.Write(r.Record()); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadCSV maps each data line onto the header names. Columns missing from
// the header read as empty.
func ReadCSV(r io.Reader) ([]RawRow, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	var out []RawRow
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if len(rec) > len(header) {
			line, _ := cr.FieldPos(0)
			return nil, fmt.Errorf("line %d: %d fields for %d columns", line, len(rec), len(header))
		}
		row := make(RawRow, len(header))
		for i, name := range header {
			if i < len(rec) {
				row[name] = rec[i]
			}
		}
		out = append(out, row)
	}
	return out, nil
}

func writeAtomic(path string, b []byte) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
