package numeral

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustBig(t *testing.T, s string) *big.Int {
	t.Helper()
	n, ok := new(big.Int).SetString(s, 10)
	require.True(t, ok, "invalid test integer %q", s)
	return n
}

func TestEncodeDefaults(t *testing.T) {
	tests := []struct {
		input any
		want  string
	}{
		{0, "영"},
		{1, "일"},
		{10, "십"},
		{11, "십일"},
		{20, "이십"},
		{100, "백"},
		{110, "백십"},
		{111, "백십일"},
		{1000, "천"},
		{1234, "천이백삼십사"},
		{2021, "이천이십일"},
		{9999, "구천구백구십구"},
		{10000, "만"},
		{10001, "만일"},
		{11000, "만천"},
		{20000, "이만"},
		{21000000, "이천백만"},
		{100000000, "억"},
		{100010000, "억만"},
		{123456789, "억이천삼백사십오만육천칠백팔십구"},
		{int64(1000000000000), "조"},
		{int64(10000000000000000), "경"},
		{"99999999999999999999", "구천구백구십구경구천구백구십구조구천구백구십구억구천구백구십구만구천구백구십구"},
		{-12, "마이너스 십이"},
		{"  -42 ", "마이너스 사십이"},
		{"+7", "칠"},
	}
	for _, tt := range tests {
		got, err := Encode(tt.input, DefaultEncodeOptions())
		require.NoError(t, err, "Encode(%v)", tt.input)
		assert.Equal(t, tt.want, got, "Encode(%v)", tt.input)
	}
}

func TestEncodeSmallUnitOmissionIsPerPosition(t *testing.T) {
	opts := DefaultEncodeOptions()

	got, err := Encode(1111, opts)
	require.NoError(t, err)
	assert.Equal(t, "천백십일", got)

	got, err = Encode(1211, opts)
	require.NoError(t, err)
	assert.Equal(t, "천이백십일", got)

	opts.KeepOneForSmallUnits = true
	got, err = Encode(1111, opts)
	require.NoError(t, err)
	assert.Equal(t, "일천일백일십일", got)

	got, err = Encode(10, opts)
	require.NoError(t, err)
	assert.Equal(t, "일십", got)
}

func TestEncodeLargeUnitOmission(t *testing.T) {
	opts := DefaultEncodeOptions()
	opts.KeepOneForLargeUnits = true

	got, err := Encode(10000, opts)
	require.NoError(t, err)
	assert.Equal(t, "일만", got)

	got, err = Encode(100010000, opts)
	require.NoError(t, err)
	assert.Equal(t, "일억일만", got)

	// only a chunk of exactly 1 is affected
	got, err = Encode(110000, opts)
	require.NoError(t, err)
	assert.Equal(t, "십일만", got)
}

func TestEncodeSpacing(t *testing.T) {
	opts := DefaultEncodeOptions()
	opts.UseSpacingBetweenLargeUnits = true

	got, err := Encode(123456789, opts)
	require.NoError(t, err)
	assert.Equal(t, "억 이천삼백사십오만 육천칠백팔십구", got)

	got, err = Encode(-10001, opts)
	require.NoError(t, err)
	assert.Equal(t, "마이너스 만 일", got)

	// zero chunks do not produce empty groups
	got, err = Encode(100000001, opts)
	require.NoError(t, err)
	assert.Equal(t, "억 일", got)
}

func TestEncodeZeroAndNegativeWords(t *testing.T) {
	opts := EncodeOptions{ZeroChar: "공", NegativeWord: "영하"}

	got, err := Encode(0, opts)
	require.NoError(t, err)
	assert.Equal(t, "공", got)

	got, err = Encode("-0", opts)
	require.NoError(t, err)
	assert.Equal(t, "공", got, "zero is never signed")

	got, err = Encode(-5, opts)
	require.NoError(t, err)
	assert.Equal(t, "영하 오", got)
}

func TestEncodeEmptyWordsFallBackToDefaults(t *testing.T) {
	got, err := Encode(0, EncodeOptions{})
	require.NoError(t, err)
	assert.Equal(t, "영", got)

	got, err = Encode(-3, EncodeOptions{})
	require.NoError(t, err)
	assert.Equal(t, "마이너스 삼", got)
}

func TestEncodeZeroValueOptionsMatchDefaults(t *testing.T) {
	for _, v := range []any{10, 10000, 1111, 100010000, -10001, "12345678901234567890"} {
		want, err := Encode(v, DefaultEncodeOptions())
		require.NoError(t, err)
		got, err := Encode(v, EncodeOptions{})
		require.NoError(t, err)
		assert.Equal(t, want, got, "value %v", v)
	}

	got, err := Encode(10, EncodeOptions{ZeroChar: "공"})
	require.NoError(t, err)
	assert.Equal(t, "십", got)

	got, err = Encode(10000, EncodeOptions{NegativeWord: "영하"})
	require.NoError(t, err)
	assert.Equal(t, "만", got)
}

func TestEncodeRangeLimit(t *testing.T) {
	limit := mustBig(t, "100000000000000000000")
	_, err := EncodeInt(limit, DefaultEncodeOptions())
	assert.ErrorIs(t, err, ErrRange)

	_, err = EncodeInt(new(big.Int).Neg(limit), DefaultEncodeOptions())
	assert.ErrorIs(t, err, ErrRange)

	_, err = Encode(uint64(18446744073709551615), DefaultEncodeOptions())
	assert.NoError(t, err)
}

func TestEncodeDoesNotModifyInput(t *testing.T) {
	n := big.NewInt(-123456789)
	_, err := EncodeInt(n, DefaultEncodeOptions())
	require.NoError(t, err)
	assert.Equal(t, "-123456789", n.String())
}

func TestEncodePropagatesNormalizeErrors(t *testing.T) {
	_, err := Encode("십", DefaultEncodeOptions())
	assert.ErrorIs(t, err, ErrFormat)

	_, err = Encode(2.5, DefaultEncodeOptions())
	assert.ErrorIs(t, err, ErrRange)

	_, err = Encode([]int{1}, DefaultEncodeOptions())
	assert.ErrorIs(t, err, ErrType)
}
