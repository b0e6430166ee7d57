package pdf

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pageSet(pages ...int) PageSet {
	s := PageSet{}
	for _, p := range pages {
		s.Add(p)
	}
	return s
}

func TestParsePageSpecifier(t *testing.T) {
	t.Parallel()

	tests := []struct {
		pages   string
		want    PageSet
		wantErr error
	}{
		{"1,2,3,4,5", pageSet(1, 2, 3, 4, 5), nil},
		{"1,3-5", pageSet(1, 3, 4, 5), nil},
		{"1-,3,4", nil, ErrFormat},
		{"--", nil, ErrFormat},
		{",", pageSet(), nil},
		{"", pageSet(), nil},
		{"-", nil, ErrFormat},
		{"1,", pageSet(1), nil},
		{"1,a,3,4", nil, ErrFormat},
		{"1", pageSet(1), nil},
		{"1.0,2.0", nil, ErrFormat},
		{"1.0-2.0", nil, ErrFormat},
		{"a-c", nil, ErrFormat},
		{"1-3,2-4,3-5", pageSet(1, 2, 3, 4, 5), nil},
		{"1,1,1,1,1,2,2,3", pageSet(1, 2, 3), nil},
		{"1 2 3 4", nil, ErrFormat},
		{"1-2, 3-4, 5-6", pageSet(1, 2, 3, 4, 5, 6), nil},
		{" 2 - 4 ", pageSet(2, 3, 4), nil},
		{"-5", nil, ErrFormat},
		{"-1", nil, ErrFormat},
		{"1-2-3", nil, ErrFormat},
		{"+1", nil, ErrFormat},
		{"5-3", pageSet(), nil},
		{"0", pageSet(0), nil},
		{"0-2", pageSet(0, 1, 2), nil},
		{",,, ,", pageSet(), nil},
		{"7-7", pageSet(7), nil},
		{"99999999999999999999", nil, ErrFormat},
		{"1-99999999999999999999", nil, ErrFormat},
	}

	for _, tt := range tests {
		t.Run(tt.pages, func(t *testing.T) {
			got, err := ParsePageSpecifier(tt.pages)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParsePageSpecifier_FormatErrorNamesTokenAndSpec(t *testing.T) {
	t.Parallel()

	_, err := ParsePageSpecifier("1, a-c ,3")
	require.Error(t, err)

	var pdfErr *Error
	require.True(t, errors.As(err, &pdfErr))
	assert.Equal(t, FormatKind, pdfErr.Kind)
	assert.Equal(t, "'a-c' is not a valid page format in '1, a-c ,3'", pdfErr.Error())
}

func TestParsePageSpecifier_OrderIndependent(t *testing.T) {
	t.Parallel()

	a, err := ParsePageSpecifier("3,1,2")
	require.NoError(t, err)
	b, err := ParsePageSpecifier("1,2,3")
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestPageSet_StringRoundTrip(t *testing.T) {
	t.Parallel()

	for _, spec := range []string{"1,2,3", "9-11,1,4", "1-3,2-4,3-5", "6,5,4"} {
		first, err := ParsePageSpecifier(spec)
		require.NoError(t, err)

		second, err := ParsePageSpecifier(first.String())
		require.NoError(t, err)
		assert.Equal(t, first, second, "spec %q", spec)
	}

	assert.Equal(t, "1,4,9,10,11", pageSet(11, 9, 10, 4, 1).String())
	assert.Equal(t, "", pageSet().String())
}

func TestPageSet_Sorted(t *testing.T) {
	t.Parallel()

	s, err := ParsePageSpecifier("10,2-3,1,2")
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3, 10}, s.Sorted())
	assert.True(t, s.Contains(10))
	assert.False(t, s.Contains(4))
}

func TestParsePageArg(t *testing.T) {
	t.Parallel()

	got, err := ParsePageArg("1,3-4")
	require.NoError(t, err)
	assert.Equal(t, pageSet(1, 3, 4), got)

	for _, v := range []interface{}{1, 1.5, nil, []string{"1"}, map[string]interface{}{}} {
		_, err := ParsePageArg(v)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrType), "value %#v: %v", v, err)
		assert.False(t, errors.Is(err, ErrFormat))
	}

	_, err = ParsePageArg(1)
	assert.EqualError(t, err, "pages argument must be a string but is a 'int'")

	_, err = ParsePageArg("x")
	assert.True(t, errors.Is(err, ErrFormat))
}

func TestParsePageSpecifierMax(t *testing.T) {
	t.Parallel()

	got, err := ParsePageSpecifierMax("8-10, 3", 10)
	require.NoError(t, err)
	assert.Equal(t, pageSet(3, 8, 9, 10), got)

	got, err = ParsePageSpecifierMax("1-3", 0)
	require.NoError(t, err)
	assert.Equal(t, pageSet(1, 2, 3), got)

	for _, spec := range []string{"11", "1-2000000000", "2000000000-1", "1,5-11"} {
		_, err := ParsePageSpecifierMax(spec, 10)
		assert.ErrorIs(t, err, ErrPageRange, spec)
	}

	_, err = ParsePageSpecifierMax("1-2000000000", 10)
	assert.EqualError(t, err, "page out of range: page 2000000000 exceeds the limit of 10 in '1-2000000000'")

	// format errors win over the limit when they come first
	_, err = ParsePageSpecifierMax("a,99", 10)
	assert.ErrorIs(t, err, ErrFormat)

	_, err = ParsePageArgMax("1-99", 10)
	assert.ErrorIs(t, err, ErrPageRange)
	_, err = ParsePageArgMax(7, 10)
	assert.ErrorIs(t, err, ErrType)
}

func TestCheckPageSpecifier(t *testing.T) {
	t.Parallel()

	assert.NoError(t, CheckPageSpecifier("1-5,,9", 9))
	assert.NoError(t, CheckPageSpecifier("", 9))
	assert.NoError(t, CheckPageSpecifier("1-9223372036854775807", 0))
	assert.ErrorIs(t, CheckPageSpecifier("1-10", 9), ErrPageRange)
	assert.ErrorIs(t, CheckPageSpecifier("1 2", 9), ErrFormat)
}

func TestValidatePageNumbers(t *testing.T) {
	t.Parallel()

	assert.NoError(t, ValidatePageNumbers([]int{1, 2, 5}, 5))
	assert.NoError(t, ValidatePageNumbers(nil, 0))

	err := ValidatePageNumbers([]int{0, 1}, 5)
	assert.ErrorIs(t, err, ErrPageRange)
	assert.Contains(t, err.Error(), "must be positive")

	err = ValidatePageNumbers([]int{1, 6}, 5)
	assert.ErrorIs(t, err, ErrPageRange)
	assert.Contains(t, err.Error(), "page 6 exceeds total pages (5)")
}
