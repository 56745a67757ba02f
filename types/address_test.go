package types

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAddressSetContains(t *testing.T) {
	set := NewAddressSet("0x53b6936513e738f44FB50d2b9476730c0ab3bfc1")

	tests := map[string]struct {
		address string
		want    bool
	}{
		"Check different cases": {
			address: "0x53b6936513e738f44FB50d2b9476730c0ab3bfc1",
			want:    true,
		},
		"Check upper cases": {
			address: "0X53B6936513E738F44FB50D2B9476730C0AB3BFC1",
			want:    true,
		},
		"Check unknown": {
			address: "0X5",
			want:    false,
		},
	}
	for testName, testCase := range tests {
		t.Run(testName, func(t *testing.T) {
			require.Equal(t, testCase.want, set.Contains(testCase.address))
		})
	}
}

func TestAddressSetLowercase(t *testing.T) {
	set := NewAddressSet("0xABC", "0xdef", "0xAbC")
	require.Equal(t, 2, set.Len())
	for v := range set {
		require.Equal(t, NormalizeAddress(v), v)
	}
}

func TestAddressSetMergeSorted(t *testing.T) {
	a := NewAddressSet("0xc", "0xa")
	a.Merge(NewAddressSet("0xB", "0xa"))
	require.Equal(t, []string{"0xa", "0xb", "0xc"}, a.Sorted())
}

func TestNormalizeAddressKeepsWhitespace(t *testing.T) {
	require.Equal(t, " 0xab ", NormalizeAddress(" 0xAB "))
}

func TestSummaryReject(t *testing.T) {
	s := NewSummary()
	require.Len(t, s.ByReason, 3)

	s.Reject(ReasonOFAC)
	s.Reject(ReasonOFAC)
	s.Reject(ReasonDuplicateCurrentWhitelist)
	require.Equal(t, 3, s.Rejected)
	require.Equal(t, 2, s.ByReason[ReasonOFAC])
	require.Equal(t, 0, s.ByReason[ReasonDuplicatePreviousCampaign])
}
