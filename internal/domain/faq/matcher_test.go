package faq

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestMatch_EndToEndExamples(t *testing.T) {
	candidates := []Entry{
		{ID: 1, Keywords: Keywords{"phone", "contact"}, Language: "en", IsActive: true, Answer: "Call us!"},
		{ID: 2, Keywords: Keywords{"email"}, Language: "en", IsActive: true, Answer: "Email us!"},
	}

	answer, ok := Match("How can I contact support?", "en", candidates)
	require.True(t, ok)
	require.Equal(t, "Call us!", answer)

	answer, ok = Match("What are your hours?", "en", candidates)
	require.False(t, ok)
	require.Empty(t, answer)
}

func TestMatch_IgnoresInactiveEntries(t *testing.T) {
	candidates := []Entry{
		{ID: 1, Keywords: Keywords{"refund"}, Language: "en", IsActive: false, Answer: "inactive"},
	}
	_, ok := Match("I want a refund", "en", candidates)
	require.False(t, ok)
}

func TestMatch_IgnoresOtherLanguages(t *testing.T) {
	candidates := []Entry{
		{ID: 1, Keywords: Keywords{"refund"}, Language: "ru", IsActive: true, Answer: "ru answer"},
		{ID: 2, Keywords: Keywords{"refund"}, Language: "EN", IsActive: true, Answer: "wrong case"},
	}
	_, ok := Match("I want a refund", "en", candidates)
	require.False(t, ok)
}

func TestMatch_CaseInsensitive(t *testing.T) {
	candidates := []Entry{
		{ID: 1, Keywords: Keywords{"Delivery"}, Language: "en", IsActive: true, Answer: "Two days."},
		{ID: 2, Keywords: Keywords{"доставка"}, Language: "ru", IsActive: true, Answer: "Два дня."},
	}

	answer, ok := Match("WHEN IS DELIVERY?", "en", candidates)
	require.True(t, ok)
	require.Equal(t, "Two days.", answer)

	answer, ok = Match("Сколько идёт ДОСТАВКА?", "ru", candidates)
	require.True(t, ok)
	require.Equal(t, "Два дня.", answer)
}

func TestMatch_LongestKeywordWins(t *testing.T) {
	now := time.Now()
	candidates := []Entry{
		{ID: 1, Keywords: Keywords{"contact"}, Language: "en", IsActive: true, Answer: "generic", CreatedAt: now},
		{ID: 2, Keywords: Keywords{"contact us"}, Language: "en", IsActive: true, Answer: "specific", CreatedAt: now.Add(-time.Hour)},
	}
	answer, ok := Match("please contact us today", "en", candidates)
	require.True(t, ok)
	require.Equal(t, "specific", answer)
}

func TestMatch_RecencyBreaksTies(t *testing.T) {
	older := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	newer := older.Add(24 * time.Hour)
	candidates := []Entry{
		{ID: 1, Keywords: Keywords{"help"}, Language: "en", IsActive: true, Answer: "old", CreatedAt: older},
		{ID: 2, Keywords: Keywords{"help"}, Language: "en", IsActive: true, Answer: "new", CreatedAt: newer},
	}
	answer, ok := Match("I need help", "en", candidates)
	require.True(t, ok)
	require.Equal(t, "new", answer)
}

func TestMatch_LowestIDBreaksFullTies(t *testing.T) {
	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	candidates := []Entry{
		{ID: 7, Keywords: Keywords{"help"}, Language: "en", IsActive: true, Answer: "seven", CreatedAt: created},
		{ID: 3, Keywords: Keywords{"help"}, Language: "en", IsActive: true, Answer: "three", CreatedAt: created},
	}
	result, ok := BestMatch("help", "en", candidates)
	require.True(t, ok)
	require.Equal(t, int64(3), result.Entry.ID)
	require.Equal(t, "help", result.Term)
}

func TestMatch_EmptyMessageNeverMatches(t *testing.T) {
	candidates := []Entry{
		{ID: 1, Keywords: Keywords{"a"}, Language: "en", IsActive: true, Answer: "x"},
	}
	_, ok := Match("", "en", candidates)
	require.False(t, ok)
}

func TestMatch_BlankKeywordsNeverMatch(t *testing.T) {
	candidates := []Entry{
		{ID: 1, Keywords: Keywords{"  ", ""}, Language: "en", IsActive: true, Answer: "blank"},
		{ID: 2, Keywords: nil, Language: "en", IsActive: true, Answer: "none"},
	}
	_, ok := Match("anything at all", "en", candidates)
	require.False(t, ok)
}

func TestMatch_SubstringInsideLongerWord(t *testing.T) {
	candidates := []Entry{
		{ID: 1, Keywords: Keywords{"cat"}, Language: "en", IsActive: true, Answer: "meow"},
	}
	answer, ok := Match("Show me the catalogue", "en", candidates)
	require.True(t, ok)
	require.Equal(t, "meow", answer)
}

func TestMatch_DoesNotMutateCandidates(t *testing.T) {
	candidates := []Entry{
		{ID: 1, Keywords: Keywords{" Phone ", "Contact"}, Language: "en", IsActive: true, Answer: "Call us!"},
	}
	_, ok := Match("contact", "en", candidates)
	require.True(t, ok)
	require.Equal(t, Keywords{" Phone ", "Contact"}, candidates[0].Keywords)
}
