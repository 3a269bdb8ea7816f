package mockfile

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/getmockd/filemock/pkg/logging"
)

const sectionSeparator = "\n\n"

// Status codes a mock may declare. net/http rejects anything else.
const (
	MinStatus = 100
	MaxStatus = 999
)

// Parser turns mock file text into a Mock.
type Parser struct {
	logger *slog.Logger
}

// NewParser creates a parser. A nil logger discards diagnostics.
func NewParser(logger *slog.Logger) *Parser {
	if logger == nil {
		logger = logging.Nop()
	}
	return &Parser{logger: logger}
}

// ParseFile reads and parses the mock file at path.
func (p *Parser) ParseFile(path string) (*Mock, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ParseError{File: path, Err: err}
	}
	return p.Parse(data, path)
}

// Parse parses the content of one mock file. filename is used only for
// diagnostics and is recorded as the mock's Source.
func (p *Parser) Parse(content []byte, filename string) (*Mock, error) {
	text := strings.ReplaceAll(string(content), "\r\n", "\n")

	sections := strings.SplitN(text, sectionSeparator, 3)
	if len(sections) < 2 {
		return nil, &ParseError{File: filename, Err: ErrMissingSection}
	}

	method, url, err := parseRequestLine(sections[0])
	if err != nil {
		return nil, &ParseError{File: filename, Err: err}
	}

	status, headers, err := p.parseStatusAndHeaders(sections[1], filename)
	if err != nil {
		return nil, &ParseError{File: filename, Err: err}
	}

	var remainder string
	if len(sections) == 3 {
		remainder = sections[2]
	}

	target, wildcard := splitTarget(url)
	return &Mock{
		Method:   method,
		URL:      target,
		Wildcard: wildcard,
		Spec: Spec{
			Status:    status,
			Headers:   headers,
			Remainder: remainder,
		},
		Source: filename,
	}, nil
}

// parseRequestLine parses "METHOD URL" from the first line of the section.
func parseRequestLine(section string) (method, url string, err error) {
	firstLine, _, _ := strings.Cut(strings.TrimSpace(section), "\n")
	if firstLine == "" {
		return "", "", fmt.Errorf("%w: missing request line", ErrBadRequestLine)
	}

	parts := strings.Fields(firstLine)
	if len(parts) != 2 {
		return "", "", fmt.Errorf("%w, got: %q", ErrBadRequestLine, firstLine)
	}

	return strings.ToUpper(parts[0]), parts[1], nil
}

// parseStatusAndHeaders parses the status code line and the header lines
// that follow it. Header lines without a colon are skipped.
func (p *Parser) parseStatusAndHeaders(section, filename string) (int, map[string]string, error) {
	var lines []string
	for _, line := range strings.Split(section, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}

	if len(lines) == 0 {
		return 0, nil, fmt.Errorf("%w: missing status code", ErrBadStatus)
	}

	status, err := strconv.Atoi(lines[0])
	if err != nil {
		return 0, nil, fmt.Errorf("%w: %q", ErrBadStatus, lines[0])
	}
	if status < MinStatus || status > MaxStatus {
		return 0, nil, fmt.Errorf("%w: %d is outside %d-%d", ErrBadStatus, status, MinStatus, MaxStatus)
	}

	headers := make(map[string]string, len(lines)-1)
	for _, line := range lines[1:] {
		name, value, ok := strings.Cut(line, ":")
		if !ok {
			p.logger.Warn("skipping malformed header", "file", filename, "line", line)
			continue
		}
		headers[strings.TrimSpace(name)] = strings.TrimSpace(value)
	}

	return status, headers, nil
}
