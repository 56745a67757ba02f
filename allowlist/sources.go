package allowlist

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ethereum/go-ethereum/log"
	"github.com/pkg/errors"
	"github.com/zkarcade/campaign-tools/adapters/csvfile"
	"github.com/zkarcade/campaign-tools/metrics"
	"github.com/zkarcade/campaign-tools/types"
)

// Loader reads the exclusion sources. Failures never abort a run: they are logged
// and the offending source contributes no addresses.
type Loader struct {
	log     log.Logger
	metrics *metrics.Recorder
}

func NewLoader(logger log.Logger, recorder *metrics.Recorder) *Loader {
	if recorder == nil {
		recorder = metrics.NewRecorder()
	}
	return &Loader{log: logger, metrics: recorder}
}

// History returns the union of the address columns of every file in dir.
// Symlinks are followed.
func (l *Loader) History(dir string) types.AddressSet {
	addresses := types.NewAddressSet()

	files, err := l.historyFiles(dir)
	if err != nil {
		l.log.Warn("Could not list history directory", "dir", dir, "error", err)
		return addresses
	}

	for _, path := range files {
		l.log.Debug("Processing history file", "file", path)
		fileAddresses, err := readAddresses(path)
		if err != nil {
			l.log.Warn("Skipping history file", "file", path, "error", err)
			l.metrics.IncHistoryFileSkipped()
			continue
		}
		addresses.Merge(types.NewAddressSet(fileAddresses...))
	}

	l.metrics.SetHistoryAddresses(addresses.Len())
	return addresses
}

// Sanctions returns the addresses of the sanctioned-address file.
func (l *Loader) Sanctions(path string) types.AddressSet {
	addresses := types.NewAddressSet()

	list, err := readAddresses(path)
	if err != nil {
		l.log.Warn("Could not read sanctioned addresses, continuing without them", "file", path, "error", err)
		l.metrics.IncSanctionsLoadError()
		return addresses
	}
	addresses.Merge(types.NewAddressSet(list...))

	l.metrics.SetSanctionedAddresses(addresses.Len())
	return addresses
}

// historyFiles lists the non-hidden files of dir sorted by name. Directories are
// ignored; entries that cannot be resolved to a regular file are skipped with a warning.
func (l *Loader) historyFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	files := make([]string, 0, len(entries))
	for _, entry := range entries {
		if strings.HasPrefix(entry.Name(), ".") || entry.IsDir() {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		info, err := os.Stat(path)
		if err != nil {
			l.log.Warn("Skipping history file", "file", path, "error", err)
			l.metrics.IncHistoryFileSkipped()
			continue
		}
		if info.IsDir() {
			continue
		}
		if !info.Mode().IsRegular() {
			l.log.Warn("Skipping history file", "file", path, "error", "not a regular file", "mode", info.Mode().String())
			l.metrics.IncHistoryFileSkipped()
			continue
		}
		files = append(files, path)
	}
	sort.Strings(files)
	return files, nil
}

func readAddresses(path string) ([]string, error) {
	table, err := csvfile.Read(path)
	if err != nil {
		return nil, err
	}
	addresses, ok := table.Column(AddressColumn)
	if !ok {
		return nil, errors.Wrap(ErrMissingAddressColumn, path)
	}
	return addresses, nil
}
