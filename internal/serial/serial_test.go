package serial

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatPadsSequence(t *testing.T) {
	assert.Equal(t, "TN01 0000001", Format("TN01", 1))
	assert.Equal(t, "KL02 0012345", Format("KL02", 12345))
	assert.Equal(t, "TN01 1234567", Format("TN01", 1234567))
}

func TestFormatBlockIsContiguous(t *testing.T) {
	got := FormatBlock("TN01", 6, 2)
	assert.Equal(t, []string{"TN01 0000006", "TN01 0000007"}, got)
}

func TestSequence(t *testing.T) {
	cases := []struct {
		name  string
		token string
		want  int64
		ok    bool
	}{
		{"spaced", "TN01 0000005", 5, true},
		{"compact legacy", "TN010000012", 12, true},
		{"lowercase prefix", "tn01 0000003", 3, true},
		{"other series", "KL01 0000005", 0, false},
		{"no digits", "TN01 ", 0, false},
		{"trailing garbage", "TN01 12x", 0, false},
		{"empty", "", 0, false},
		{"bare code", "TN01", 0, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := Sequence("TN01", tc.token)
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestMaxSequenceScansListAndLegacyShapes(t *testing.T) {
	stored := []string{
		"TN01 0000001,TN01 0000002", // legacy comma-joined
		"TN01 0000009",
		"KL01 0000044", // different series, ignored
		"not-a-serial",
	}
	assert.Equal(t, int64(9), MaxSequence("TN01", stored))
}

func TestMaxSequenceEmptyHistory(t *testing.T) {
	assert.Zero(t, MaxSequence("TN01", nil))
}

func TestDecodeStored(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want []string
	}{
		{"json array", `["TN01 0000001","TN01 0000002"]`, []string{"TN01 0000001", "TN01 0000002"}},
		{"json string comma joined", `"TN01 0000001,TN01 0000002"`, []string{"TN01 0000001", "TN01 0000002"}},
		{"raw comma joined", `TN01 0000001,TN01 0000002`, []string{"TN01 0000001", "TN01 0000002"}},
		{"empty", ``, nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, DecodeStored([]byte(tc.raw)))
		})
	}
}

func TestHashDistrictCodeRange(t *testing.T) {
	for _, name := range []string{"", "nowhere", "some very long district name", "chengalpattu"} {
		code := hashDistrictCode(name)
		assert.Len(t, code, 2)
		assert.NotEqual(t, "00", code)
		// determinism
		assert.Equal(t, code, hashDistrictCode(name))
	}
}
