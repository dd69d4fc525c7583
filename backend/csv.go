package backend

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"

	"git.sr.ht/~whereswaldon/graphkit/series"
)

var (
	ErrNoHeadings = errors.New("backend: missing heading row")
	ErrNoSeries   = errors.New("backend: no value columns")
)

// Decoder turns CSV records into a dataset. The first record names the
// columns. The first column holds x values and every other column is one
// series. If the first x value parses as a number the series are numeric,
// otherwise x values are used as category labels.
type Decoder struct {
	csv      *csv.Reader
	headings []string
	kindSet  bool
	data     series.Dataset
	row      int
}

// NewDecoder decodes CSV from r. Use a LineReader for r when the input is
// still being written.
func NewDecoder(r io.Reader) *Decoder {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1
	return &Decoder{csv: cr}
}

// Decode reads every record currently available. It returns nil once the
// input is exhausted; a later call picks up records written since.
func (d *Decoder) Decode() error {
	for {
		rec, err := d.csv.Read()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("reading csv: %w", err)
		}
		d.row++
		if d.headings == nil {
			if err := d.readHeadings(rec); err != nil {
				return err
			}
			continue
		}
		d.readRecord(rec)
	}
}

// Dataset returns a snapshot of everything decoded so far.
func (d *Decoder) Dataset() series.Dataset {
	out := series.Dataset{Series: make([]series.Series, len(d.data.Series))}
	for i, s := range d.data.Series {
		s.Points = append([]series.Point(nil), s.Points...)
		out.Series[i] = s
	}
	return out
}

// Headings returns the column names, or nil before the heading row is read.
func (d *Decoder) Headings() []string {
	return d.headings
}

func (d *Decoder) readHeadings(rec []string) error {
	if len(rec) < 2 {
		return fmt.Errorf("%w: found %d columns", ErrNoSeries, len(rec))
	}
	d.headings = make([]string, len(rec))
	for i, h := range rec {
		h = strings.TrimSpace(h)
		if h == "" && i > 0 {
			h = "series " + strconv.Itoa(i)
		}
		d.headings[i] = h
	}
	d.data.Series = make([]series.Series, len(rec)-1)
	for i := range d.data.Series {
		d.data.Series[i].Name = d.headings[i+1]
	}
	return nil
}

func (d *Decoder) readRecord(rec []string) {
	if len(rec) == 0 {
		return
	}
	xCell := strings.TrimSpace(rec[0])
	x, xErr := strconv.ParseFloat(xCell, 64)
	if !d.kindSet {
		kind := series.Numeric
		if xErr != nil {
			kind = series.Categorical
		}
		for i := range d.data.Series {
			d.data.Series[i].Kind = kind
		}
		d.kindSet = true
	}
	categorical := d.data.Series[0].Kind == series.Categorical
	if !categorical && xErr != nil {
		log.Printf("skipping row %d: x value %q is not a number", d.row, xCell)
		return
	}
	for i := 1; i < len(rec) && i < len(d.headings); i++ {
		cell := strings.TrimSpace(rec[i])
		if cell == "" {
			// Skip null cells.
			continue
		}
		y, err := strconv.ParseFloat(cell, 64)
		if err != nil {
			log.Printf("skipping row %d column %q: %v", d.row, d.headings[i], err)
			continue
		}
		s := &d.data.Series[i-1]
		if categorical {
			s.AppendLabeled(xCell, y)
		} else {
			s.Append(x, y)
		}
	}
}

// ParseCSV decodes a complete CSV document into a dataset.
func ParseCSV(r io.Reader) (series.Dataset, error) {
	d := NewDecoder(r)
	if err := d.Decode(); err != nil {
		return series.Dataset{}, err
	}
	if d.headings == nil {
		return series.Dataset{}, ErrNoHeadings
	}
	return d.Dataset(), nil
}
