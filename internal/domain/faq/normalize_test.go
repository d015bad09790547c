package faq

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseKeywords(t *testing.T) {
	cases := []struct {
		name string
		in   string
		out  Keywords
	}{
		{name: "splits and trims", in: " phone , contact ", out: Keywords{"phone", "contact"}},
		{name: "drops blanks", in: "help,, ,faq", out: Keywords{"help", "faq"}},
		{name: "drops duplicates", in: "help,help", out: Keywords{"help"}},
		{name: "empty", in: "   ", out: nil},
		{name: "only separators", in: ",,,", out: nil},
	}

	for _, tc := range cases {
		if got := ParseKeywords(tc.in); !equalKeywords(got, tc.out) {
			t.Fatalf("%s: expected %q got %q", tc.name, tc.out, got)
		}
	}
}

func TestKeywordsUnmarshalAcceptsStringAndArray(t *testing.T) {
	var fromString struct {
		Keywords Keywords `json:"keywords"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"keywords":"phone, contact"}`), &fromString))
	require.Equal(t, Keywords{"phone", "contact"}, fromString.Keywords)

	var fromArray struct {
		Keywords Keywords `json:"keywords"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"keywords":["phone"," ","a,b"]}`), &fromArray))
	require.Equal(t, Keywords{"phone", "a", "b"}, fromArray.Keywords)

	var invalid struct {
		Keywords Keywords `json:"keywords"`
	}
	require.Error(t, json.Unmarshal([]byte(`{"keywords":42}`), &invalid))
}

func TestMatchTermsNormalizes(t *testing.T) {
	got := matchTerms(Keywords{" Contact Us ", "", "A,B"})
	require.Equal(t, []string{"contact us", "a", "b"}, got)
}

func equalKeywords(a, b Keywords) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
