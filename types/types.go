package types

// Reason tells why a whitelist row was not accepted
type Reason string

const (
	ReasonDuplicateCurrentWhitelist Reason = "duplicate_current_whitelist"
	ReasonDuplicatePreviousCampaign Reason = "duplicate_previous_campaign"
	ReasonOFAC                      Reason = "ofac"
)

// Reasons lists every rejection reason in precedence order.
var Reasons = []Reason{
	ReasonDuplicateCurrentWhitelist,
	ReasonOFAC,
	ReasonDuplicatePreviousCampaign,
}

func (r Reason) String() string {
	return string(r)
}

// Entry is one data row of a whitelist file.
type Entry struct {
	Row     int      // 0-based index among the data rows
	Address string   // normalized
	Values  []string // every column, address already lowercased
}

type RemovedEntry struct {
	Entry
	Reason Reason
}

// Summary holds the counts reported at the end of a filter run
type Summary struct {
	Total    int
	Accepted int
	Rejected int
	ByReason map[Reason]int
}

func NewSummary() Summary {
	s := Summary{ByReason: make(map[Reason]int, len(Reasons))}
	for _, r := range Reasons {
		s.ByReason[r] = 0
	}
	return s
}

// Reject counts one rejected row.
func (s *Summary) Reject(reason Reason) {
	s.Rejected++
	s.ByReason[reason]++
}
