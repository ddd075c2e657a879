// Package command turns free-text chat messages into typed stock commands.
package command

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	// ErrInvalidUpdateFormat marks an update command whose payload does not
	// match `update <item>: <quantity><unit>`. It must never fall through to
	// the bulk-insert path.
	ErrInvalidUpdateFormat = errors.New("invalid update format")

	// ErrMissingDeleteItem marks a delete command with no item token.
	ErrMissingDeleteItem = errors.New("missing delete item")
)

var (
	lineRe   = regexp.MustCompile(`^(\w+):\s*(\d+(?:\.\d+)?)([a-zA-Z]+)$`)
	updateRe = regexp.MustCompile(`(?i)^update (\w+):\s*(\d+(?:\.\d+)?)([a-zA-Z]+)$`)
)

type Kind int

const (
	KindQuery Kind = iota
	KindDelete
	KindUpdate
	KindBulkInsert
)

// Line is one parsed stock assertion. Item and Unit are lowercased.
type Line struct {
	Item     string
	Quantity decimal.Decimal
	Unit     string
}

func (l Line) String() string {
	return fmt.Sprintf("%s: %s%s", l.Item, l.Quantity, l.Unit)
}

type Command struct {
	Kind  Kind
	Item  string // delete target
	Entry *Line  // update payload
	Lines []Line // bulk-insert payload, only the lines that parsed
}

// ParseLine extracts (item, quantity, unit) from one line of text. A line
// that does not match reports ok=false and is ignorable, not an error: a
// multi-line message may mix stock entries with commentary.
func ParseLine(raw string) (Line, bool) {
	m := lineRe.FindStringSubmatch(strings.TrimSpace(raw))
	if m == nil {
		return Line{}, false
	}
	qty, err := decimal.NewFromString(m[2])
	if err != nil {
		return Line{}, false
	}
	return Line{
		Item:     strings.ToLower(m[1]),
		Quantity: qty,
		Unit:     strings.ToLower(m[3]),
	}, true
}

// Classify routes a full message to exactly one command. Matching is
// case-insensitive; anything that is not /stock, delete or update is treated
// as a bulk insert of its parseable lines.
func Classify(text string) (Command, error) {
	trimmed := strings.TrimSpace(text)
	lower := strings.ToLower(trimmed)

	switch {
	case lower == "/stock":
		return Command{Kind: KindQuery}, nil

	case lower == "delete" || strings.HasPrefix(lower, "delete "):
		fields := strings.Fields(trimmed)
		if len(fields) < 2 {
			return Command{}, ErrMissingDeleteItem
		}
		return Command{Kind: KindDelete, Item: strings.ToLower(fields[1])}, nil

	case lower == "update" || strings.HasPrefix(lower, "update "):
		m := updateRe.FindStringSubmatch(trimmed)
		if m == nil {
			return Command{}, ErrInvalidUpdateFormat
		}
		qty, err := decimal.NewFromString(m[2])
		if err != nil {
			return Command{}, ErrInvalidUpdateFormat
		}
		return Command{
			Kind: KindUpdate,
			Entry: &Line{
				Item:     strings.ToLower(m[1]),
				Quantity: qty,
				Unit:     strings.ToLower(m[3]),
			},
		}, nil

	default:
		var lines []Line
		for _, raw := range strings.Split(text, "\n") {
			if l, ok := ParseLine(raw); ok {
				lines = append(lines, l)
			}
		}
		return Command{Kind: KindBulkInsert, Lines: lines}, nil
	}
}
