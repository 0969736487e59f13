// Package loader reads entrant records from CSV.
//
// Accepted layout is one "name,tickets" row per entrant. Blank rows and rows
// whose first cell starts with '#' are skipped, as is a header row whose
// second cell reads "tickets".
package loader

import (
	"encoding/csv"
	"errors"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/ArowuTest/lottery-odds/internal/models"
)

// MinTickets is the fewest tickets an entrant may hold.
const MinTickets = 1

// ErrInvalidRow is returned for a malformed row, a repeated name or an entrant below MinTickets.
var ErrInvalidRow = errors.New("invalid entrant row")

// LoadFile opens path and parses it with Parse.
func LoadFile(path string) ([]models.Entrant, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "opening entrants file %s", path)
	}
	defer f.Close()

	entrants, err := Parse(f)
	if err != nil {
		return nil, eris.Wrapf(err, "reading %s", path)
	}
	return entrants, nil
}

// Parse reads entrants from r.
func Parse(r io.Reader) ([]models.Entrant, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	var entrants []models.Entrant
	firstLine := make(map[string]int)
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, eris.Wrap(err, "parsing csv")
		}
		line, _ := reader.FieldPos(0)

		if isBlank(row) || strings.HasPrefix(strings.TrimSpace(row[0]), "#") {
			continue
		}
		if len(row) > 1 && strings.EqualFold(strings.TrimSpace(row[1]), "tickets") {
			continue
		}
		if len(row) < 2 {
			return nil, eris.Wrapf(ErrInvalidRow, "line %d: expected name,tickets", line)
		}

		name := strings.TrimSpace(row[0])
		if name == "" {
			return nil, eris.Wrapf(ErrInvalidRow, "line %d: empty name", line)
		}
		tickets, err := strconv.ParseFloat(strings.TrimSpace(row[1]), 64)
		if err != nil {
			return nil, eris.Wrapf(ErrInvalidRow, "line %d: tickets %q for %s is not a number", line, row[1], name)
		}
		if math.IsInf(tickets, 0) {
			return nil, eris.Wrapf(ErrInvalidRow, "line %d: tickets for %s must be finite", line, name)
		}
		if !(tickets >= MinTickets) {
			return nil, eris.Wrapf(ErrInvalidRow, "line %d: entrant %s must have at least %d ticket", line, name, MinTickets)
		}
		if prev, dup := firstLine[name]; dup {
			return nil, eris.Wrapf(ErrInvalidRow, "line %d: entrant %s already listed on line %d", line, name, prev)
		}
		firstLine[name] = line
		entrants = append(entrants, models.Entrant{Name: name, Tickets: tickets})
	}
	return entrants, nil
}

func isBlank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
