// Package export writes a recorded playback history as JSON or CSV.
package export

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/san-kum/algoviz/internal/grid"
	"github.com/san-kum/algoviz/internal/playback"
)

var ErrUnknownFormat = errors.New("export: unknown format")

type Format string

const (
	JSON Format = "json"
	CSV  Format = "csv"
)

func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case JSON, CSV:
		return f, nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnknownFormat, s)
}

type Trace struct {
	Family    string             `json:"family"`
	Algorithm string             `json:"algorithm"`
	Outcome   string             `json:"outcome,omitempty"`
	Steps     int                `json:"steps"`
	Code      []string           `json:"code,omitempty"`
	Metrics   map[string]float64 `json:"metrics,omitempty"`
	Entries   []playback.Entry   `json:"entries"`
}

func Write(w io.Writer, f Format, t Trace) error {
	switch f {
	case JSON:
		return WriteJSON(w, t)
	case CSV:
		return WriteCSV(w, t.Entries)
	}
	return fmt.Errorf("%w: %s", ErrUnknownFormat, f)
}

func WriteFile(path string, f Format, t Trace) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Write(file, f, t); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

func WriteJSON(w io.Writer, t Trace) error {
	if t.Entries == nil {
		t.Entries = []playback.Entry{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(t)
}

var csvHeader = []string{"index", "line", "kind", "comparing", "found", "pivot", "node", "array", "visited", "path"}

// WriteCSV writes one row per entry. Array cells hold the published array
// as space separated values; grid entries report their visited and path
// node counts instead.
func WriteCSV(w io.Writer, entries []playback.Entry) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, e := range entries {
		s := e.Step
		row := []string{
			strconv.Itoa(e.Index),
			strconv.Itoa(s.Line),
			s.Kind().String(),
			joinInts(s.Comparing),
			optInt(s.Found),
			optInt(s.Pivot),
			optInt(s.Node),
			joinInts(e.Array),
			"",
			"",
		}
		if e.Grid != nil {
			row[8] = strconv.Itoa(e.Grid.Count(func(n grid.Node) bool { return n.IsVisited }))
			row[9] = strconv.Itoa(e.Grid.Count(func(n grid.Node) bool { return n.IsPath }))
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func joinInts(v []int) string {
	parts := make([]string, len(v))
	for i, x := range v {
		parts[i] = strconv.Itoa(x)
	}
	return strings.Join(parts, " ")
}

func optInt(p *int) string {
	if p == nil {
		return ""
	}
	return strconv.Itoa(*p)
}
