package allowlist

import (
	"github.com/pkg/errors"
	"github.com/zkarcade/campaign-tools/adapters/csvfile"
	"github.com/zkarcade/campaign-tools/types"
)

const (
	AddressColumn = "address"
	ReasonColumn  = "reason"
)

var ErrMissingAddressColumn = errors.New("missing address column")

// Result is the partition of a whitelist into accepted and removed rows.
type Result struct {
	Header   []string
	Accepted []types.Entry
	Removed  []types.RemovedEntry
	Summary  types.Summary
}

// Filter lowercases the whitelist address column in place and partitions its rows.
//
// Each address keeps its first row only; later rows are removed as
// duplicate_current_whitelist. The remaining rows are removed as ofac when
// sanctioned, else as duplicate_previous_campaign when seen in a previous
// campaign. Removed rows list the in-file duplicates first, both groups in
// their original order.
func Filter(whitelist *csvfile.Table, history, sanctioned types.AddressSet) (*Result, error) {
	col, ok := whitelist.ColumnIndex(AddressColumn)
	if !ok {
		return nil, ErrMissingAddressColumn
	}

	seen := make(map[string]bool, whitelist.Len())
	candidates := make([]types.Entry, 0, whitelist.Len())
	var duplicates []types.RemovedEntry

	for i, row := range whitelist.Rows {
		row[col] = types.NormalizeAddress(row[col])
		entry := types.Entry{Row: i, Address: row[col], Values: row}

		if seen[entry.Address] {
			duplicates = append(duplicates, types.RemovedEntry{Entry: entry, Reason: types.ReasonDuplicateCurrentWhitelist})
			continue
		}
		seen[entry.Address] = true
		candidates = append(candidates, entry)
	}

	result := &Result{
		Header:  whitelist.Header,
		Summary: types.NewSummary(),
	}
	var excluded []types.RemovedEntry
	for _, entry := range candidates {
		switch {
		case sanctioned.Contains(entry.Address):
			excluded = append(excluded, types.RemovedEntry{Entry: entry, Reason: types.ReasonOFAC})
		case history.Contains(entry.Address):
			excluded = append(excluded, types.RemovedEntry{Entry: entry, Reason: types.ReasonDuplicatePreviousCampaign})
		default:
			result.Accepted = append(result.Accepted, entry)
		}
	}
	result.Removed = append(duplicates, excluded...)

	result.Summary.Total = whitelist.Len()
	result.Summary.Accepted = len(result.Accepted)
	for _, removed := range result.Removed {
		result.Summary.Reject(removed.Reason)
	}
	return result, nil
}

// AcceptedTable returns the accepted rows with the whitelist header.
func (r *Result) AcceptedTable() *csvfile.Table {
	rows := make([][]string, len(r.Accepted))
	for i, entry := range r.Accepted {
		rows[i] = append([]string(nil), entry.Values...)
	}
	return &csvfile.Table{Header: append([]string(nil), r.Header...), Rows: rows}
}

// RemovedTable returns the removed rows with their reason. An existing reason
// column is overwritten, otherwise one is appended.
func (r *Result) RemovedTable() *csvfile.Table {
	header := append([]string(nil), r.Header...)
	reasonCol := -1
	for i, h := range header {
		if h == ReasonColumn {
			reasonCol = i
			break
		}
	}
	if reasonCol < 0 {
		reasonCol = len(header)
		header = append(header, ReasonColumn)
	}

	rows := make([][]string, len(r.Removed))
	for i, removed := range r.Removed {
		row := make([]string, len(header))
		copy(row, removed.Values)
		row[reasonCol] = removed.Reason.String()
		rows[i] = row
	}
	return &csvfile.Table{Header: header, Rows: rows}
}
