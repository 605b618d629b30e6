package passphrase

import (
	"math"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atinyakov/sentcrypt/internal/secure"
)

func TestEstimatePassphrase(t *testing.T) {
	got, err := EstimatePassphrase(6, 7776)
	require.NoError(t, err)

	want := Estimate{
		Bits:   6 * math.Log2(7776),
		Label:  "Moderate",
		Score:  60,
		Method: MethodPassphrase,
		Note:   passphraseNote,
	}
	if diff := cmp.Diff(want, got, cmpopts.EquateApprox(0, 1e-9)); diff != "" {
		t.Errorf("EstimatePassphrase mismatch (-want +got):\n%s", diff)
	}
}

func TestEstimatePassphrase_MonotonicInWordCount(t *testing.T) {
	for _, size := range []int{2, 512, 7776} {
		prev := -1.0
		for n := 1; n <= 30; n++ {
			e, err := EstimatePassphrase(n, size)
			require.NoError(t, err)
			assert.Greater(t, e.Bits, prev, "size %d, words %d", size, n)
			prev = e.Bits
		}
	}
}

func TestEstimatePassphrase_MonotonicInListSize(t *testing.T) {
	for _, n := range []int{1, 4, 12} {
		prev := -1.0
		for size := 1; size <= 5000; size += 37 {
			e, err := EstimatePassphrase(n, size)
			require.NoError(t, err)
			assert.Greater(t, e.Bits, prev, "words %d, size %d", n, size)
			prev = e.Bits
		}
	}
}

func TestEstimatePassphrase_SingleWordList(t *testing.T) {
	e, err := EstimatePassphrase(10, 1)
	require.NoError(t, err)
	assert.Zero(t, e.Bits)
	assert.Equal(t, "VERY WEAK", e.Label)
}

func TestEstimatePassphrase_InvalidArguments(t *testing.T) {
	for _, tc := range []struct{ words, size int }{{0, 10}, {-1, 10}, {4, 0}, {4, -3}} {
		_, err := EstimatePassphrase(tc.words, tc.size)
		assert.ErrorIs(t, err, secure.ErrInvalidArgument, "%+v", tc)
	}
}

func TestEstimatePassword(t *testing.T) {
	tests := []struct {
		password string
		pool     int
	}{
		{"", 0},
		{"abcdef", 26},
		{"ABCDEF", 26},
		{"123456", 10},
		{"!!!!", 32},
		{"abcDEF", 52},
		{"abc123", 36},
		{"aB3$", 94},
		{"correct horse battery staple", 58},
		{"пароль", 26},
	}
	for _, tc := range tests {
		t.Run(tc.password, func(t *testing.T) {
			e := EstimatePassword(tc.password)
			var want float64
			if tc.pool > 0 {
				want = float64(len([]rune(tc.password))) * math.Log2(float64(tc.pool))
			}
			assert.InDelta(t, want, e.Bits, 1e-9)
			assert.Equal(t, MethodPassword, e.Method)
			assert.NotEmpty(t, e.Note, "password estimates must carry the approximation caveat")
		})
	}
}

func TestEstimatePassword_Empty(t *testing.T) {
	e := EstimatePassword("")
	assert.Zero(t, e.Bits)
	assert.Equal(t, Ratings[0].Label, e.Label)
	assert.Equal(t, Ratings[0].Score, e.Score)
}

func TestEstimatePassword_CountsRunes(t *testing.T) {
	ascii := EstimatePassword("abcd")
	multi := EstimatePassword("äöüß")
	assert.InDelta(t, ascii.Bits, multi.Bits, 1e-9)
}

func TestEstimatePassword_LetterWithoutCase(t *testing.T) {
	// Han characters are letters with no case: no pool is credited.
	e := EstimatePassword("密码")
	assert.Zero(t, e.Bits)
}

func TestEstimatePassword_NeverPanics(t *testing.T) {
	inputs := []string{"\x00", "\xff\xfe", strings.Repeat("a", 10000), "\t\n ", "🔐🔐"}
	for _, in := range inputs {
		assert.NotPanics(t, func() { _ = EstimatePassword(in) })
	}
}

func TestRate(t *testing.T) {
	tests := []struct {
		bits  float64
		label string
		score int
	}{
		{0, "VERY WEAK", 10},
		{29.99, "VERY WEAK", 10},
		{30, "Weak", 25},
		{39.9, "Weak", 25},
		{40, "Okay", 40},
		{59.9, "Okay", 40},
		{60, "Moderate", 60},
		{80, "Strong", 80},
		{99.9, "Strong", 80},
		{100, "VERY STRONG", 95},
		{1e6, "VERY STRONG", 95},
		{math.Inf(1), "VERY STRONG", 95},
	}
	for _, tc := range tests {
		r := Rate(tc.bits)
		assert.Equal(t, tc.label, r.Label, "bits %v", tc.bits)
		assert.Equal(t, tc.score, r.Score, "bits %v", tc.bits)
	}
}

func TestRatings_Ordered(t *testing.T) {
	for i := 1; i < len(Ratings); i++ {
		assert.Less(t, Ratings[i-1].Below, Ratings[i].Below)
		assert.Less(t, Ratings[i-1].Score, Ratings[i].Score)
	}
}

func TestEstimate_String(t *testing.T) {
	e, err := EstimatePassphrase(6, 512)
	require.NoError(t, err)
	assert.Equal(t, "Okay (~54.0 bits, score 40/100)", e.String())
}

func TestEstimatePasswordBytes_MatchesString(t *testing.T) {
	for _, pw := range []string{"", "Tr0ub4dor&3", "correct horse battery staple", "ünïcödé!"} {
		assert.Equal(t, EstimatePassword(pw), EstimatePasswordBytes([]byte(pw)), pw)
	}
}
