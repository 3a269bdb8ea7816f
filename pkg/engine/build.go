package engine

import (
	"log/slog"

	"github.com/getmockd/filemock/pkg/logging"
	"github.com/getmockd/filemock/pkg/mockfile"
	"github.com/getmockd/filemock/pkg/store"
)

// LoadMocks reads and parses files in the given order. A file that fails
// is reported in errs and does not affect the others.
func LoadMocks(files []string, readFile ReadFileFunc, parser *mockfile.Parser) (mocks []*mockfile.Mock, errs []error) {
	if parser == nil {
		parser = mockfile.NewParser(nil)
	}
	for _, path := range files {
		data, err := readFile(path)
		if err != nil {
			errs = append(errs, &mockfile.ParseError{File: path, Err: err})
			continue
		}
		m, err := parser.Parse(data, path)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		mocks = append(mocks, m)
	}
	return mocks, errs
}

// BuildStore builds a store from files in the given order, which callers
// keep sorted by path. Later exact mocks replace earlier ones with the
// same key; wildcard mocks keep file order.
func BuildStore(files []string, readFile ReadFileFunc, parser *mockfile.Parser, logger *slog.Logger) *store.Store {
	if logger == nil {
		logger = logging.Nop()
	}

	mocks, errs := LoadMocks(files, readFile, parser)
	for _, err := range errs {
		logger.Warn("skipping mock file", "error", err)
	}

	s := store.New()
	for _, m := range mocks {
		s.Add(m)
		if m.Wildcard {
			logger.Debug("loaded wildcard mock", "method", m.Method, "pattern", m.URL, "file", m.Source)
		} else {
			logger.Debug("loaded exact mock", "method", m.Method, "url", m.URL, "file", m.Source)
		}
	}
	return s
}
