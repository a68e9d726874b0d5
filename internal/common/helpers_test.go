package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestDropsToXRP(t *testing.T) {
	cases := map[uint64]string{
		0:          "0.000000",
		1:          "0.000001",
		1_000_000:  "1.000000",
		24_981_836: "24.981836",
		MaxDrops:   "100000000000.000000",
	}
	for drops, want := range cases {
		assert.Equal(t, want, DropsToXRP(drops))
	}
}

func TestXRPToDrops(t *testing.T) {
	valid := map[string]uint64{
		"10":           10_000_000,
		"0.000001":     1,
		"1.5":          1_500_000,
		" 2.25 ":       2_250_000,
		".5":           500_000,
		"3.":           3_000_000,
		"100000000000": MaxDrops,
	}
	for in, want := range valid {
		got, err := XRPToDrops(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	invalid := []string{"", " ", "-1", "+1", "abc", "1.2.3", "0.0000001", "1e6", ".", "100000000000.000001"}
	for _, in := range invalid {
		_, err := XRPToDrops(in)
		assert.Error(t, err, in)
	}
}

func TestDropsRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		drops := rapid.Uint64Range(0, MaxDrops).Draw(t, "drops")
		got, err := XRPToDrops(DropsToXRP(drops))
		if err != nil {
			t.Fatalf("parse %q: %v", DropsToXRP(drops), err)
		}
		if got != drops {
			t.Fatalf("round trip: got %d, want %d", got, drops)
		}
	})
}

func TestCompareXRPAmounts(t *testing.T) {
	cmp, err := CompareXRPAmounts("1.5", "1.500000")
	require.NoError(t, err)
	assert.Equal(t, 0, cmp)

	cmp, err = CompareXRPAmounts("0.1", "2")
	require.NoError(t, err)
	assert.Equal(t, -1, cmp)

	cmp, err = CompareXRPAmounts("20", "2")
	require.NoError(t, err)
	assert.Equal(t, 1, cmp)

	_, err = CompareXRPAmounts("x", "2")
	assert.Error(t, err)
}
