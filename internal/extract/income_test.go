package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jatin/yojana-sahayak/internal/types"
)

func wantIncome(t *testing.T, text string, want int64) {
	t.Helper()
	got := ParseIncome(text)
	require.NotNil(t, got, "input %q", text)
	assert.Equal(t, want, *got, "input %q", text)
}

func TestParseIncome_BPLMarkerWins(t *testing.T) {
	wantIncome(t, "bpl family", types.IncomeBPL)
	wantIncome(t, "we are below poverty line", types.IncomeBPL)
	// BPL takes precedence over any number in the text.
	wantIncome(t, "bpl card holder earning 2 lakh", types.IncomeBPL)
}

func TestParseIncome_Units(t *testing.T) {
	wantIncome(t, "2 lakh", 200_000)
	wantIncome(t, "2.5 lakh per annum", 250_000)
	wantIncome(t, "1 lac", 100_000)
	wantIncome(t, "1 crore", 10_000_000)
	wantIncome(t, "0.5 cr", 5_000_000)
	wantIncome(t, "80k salary", 80_000)
}

func TestParseIncome_CurrencyMarkersStripped(t *testing.T) {
	wantIncome(t, "₹3 lakh", 300_000)
	wantIncome(t, "rs. 2,50,000", 250_000)
	wantIncome(t, "rupees 45000", 45_000)
}

func TestParseIncome_RawDigits(t *testing.T) {
	wantIncome(t, "income 300000", 300_000)
	wantIncome(t, "1000 per month", 1_000)
}

func TestParseIncome_ShortDigitRunsDiscarded(t *testing.T) {
	// Three digits or fewer are far more likely an age or a count.
	assert.Nil(t, ParseIncome("21 year old"))
	assert.Nil(t, ParseIncome("999"))
	assert.Nil(t, ParseIncome(""))
	assert.Nil(t, ParseIncome("no income mentioned"))
}

func TestParseSchemeIncome(t *testing.T) {
	got := ParseSchemeIncome("bpl")
	require.NotNil(t, got)
	assert.Equal(t, int64(types.IncomeBPL), *got)

	got = ParseSchemeIncome("250000")
	require.NotNil(t, got)
	assert.Equal(t, int64(250_000), *got)

	got = ParseSchemeIncome("8 lakh")
	require.NotNil(t, got)
	assert.Equal(t, int64(800_000), *got)

	assert.Nil(t, ParseSchemeIncome(""))
	assert.Nil(t, ParseSchemeIncome("no limit"))
}
