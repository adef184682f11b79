package netdev

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
)

// headerLines is the number of leading lines that are skipped unconditionally.
const headerLines = 2

// minFields is the number of counter fields required after the colon.
const minFields = 9

const (
	rxField = 0
	txField = 8
)

var (
	// ErrNoSeparator is returned when a data line has no colon.
	ErrNoSeparator = errors.New("no colon separator")
	// ErrMalformedCounters is returned when a data line has too few counter fields.
	ErrMalformedCounters = errors.New("malformed counters")
	// ErrInvalidNumber is returned when the rx or tx byte field is not a uint64.
	ErrInvalidNumber = errors.New("invalid number")
)

// ParseError describes the line that made a parse fail.
type ParseError struct {
	Line int    // 1-based line number in the input
	Text string // raw line
	Err  error  // one of ErrNoSeparator, ErrMalformedCounters, ErrInvalidNumber
	Msg  string
}

func (e *ParseError) Error() string {
	if e.Msg != "" {
		return fmt.Sprintf("line %d: %v: %s: %q", e.Line, e.Err, e.Msg, e.Text)
	}
	return fmt.Sprintf("line %d: %v: %q", e.Line, e.Err, e.Text)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Parser turns /proc/net/dev formatted text into a Snapshot.
type Parser struct {
	logger logrus.FieldLogger
}

// NewParser creates a parser that traces through logger. A nil logger disables tracing.
func NewParser(logger logrus.FieldLogger) *Parser {
	if logger == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		logger = l
	}
	return &Parser{logger: logger}
}

var defaultParser = NewParser(nil)

// Parse parses lines with a non-tracing parser.
func Parse(lines []string) (Snapshot, error) {
	return defaultParser.Parse(lines)
}

// ParseReader parses r with a non-tracing parser.
func ParseReader(r io.Reader) (Snapshot, error) {
	return defaultParser.ParseReader(r)
}

// ParseReader reads all lines from r and parses them.
func (p *Parser) ParseReader(r io.Reader) (Snapshot, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("cannot read counters: %w", err)
	}
	return p.Parse(lines)
}

// Parse builds a Snapshot from lines. The first two lines are the column header and
// are ignored. Any malformed data line fails the whole parse.
func (p *Parser) Parse(lines []string) (Snapshot, error) {
	p.logger.WithField("lines", len(lines)).Trace("Parsing counters")

	snap := make(Snapshot)
	for i, line := range lines {
		if i < headerLines {
			continue
		}
		p.logger.WithField("line", i+1).Trace(line)

		name, counters, perr := parseLine(line)
		if perr != nil {
			perr.Line = i + 1
			perr.Text = line
			p.logger.WithFields(logrus.Fields{
				"line":  perr.Line,
				"error": perr.Err,
			}).Debug("Invalid counter line")
			return nil, perr
		}
		snap[name] = counters
	}
	return snap, nil
}

func parseLine(line string) (string, Counters, *ParseError) {
	name, rest, ok := strings.Cut(line, ":")
	if !ok {
		return "", Counters{}, &ParseError{Err: ErrNoSeparator}
	}

	fields := strings.Fields(rest)
	if len(fields) < minFields {
		return "", Counters{}, &ParseError{
			Err: ErrMalformedCounters,
			Msg: fmt.Sprintf("%d fields, want at least %d", len(fields), minFields),
		}
	}

	rx, err := strconv.ParseUint(fields[rxField], 10, 64)
	if err != nil {
		return "", Counters{}, &ParseError{Err: ErrInvalidNumber, Msg: "rx bytes " + strconv.Quote(fields[rxField])}
	}
	tx, err := strconv.ParseUint(fields[txField], 10, 64)
	if err != nil {
		return "", Counters{}, &ParseError{Err: ErrInvalidNumber, Msg: "tx bytes " + strconv.Quote(fields[txField])}
	}

	return strings.TrimSpace(name), Counters{RxBytes: rx, TxBytes: tx}, nil
}
