package semester

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uwosh/course-combine-api/pkg/config"
	appErrors "github.com/uwosh/course-combine-api/pkg/errors"
)

func testCodec() *Codec {
	return NewCodec(config.SemesterConfig{
		InstitutionTag: "UWOSH",
		BaseYear:       1945,
		FallDigit:      "0",
		SpringDigit:    "5",
		SummerDigit:    "8",
	})
}

func TestEncode(t *testing.T) {
	codec := testCodec()

	cases := []struct {
		name string
		term Term
		year int
		want Code
	}{
		{"fall uses the calendar year", TermFall, 2024, "0790"},
		{"spring closes the prior academic year", TermSpring, 2025, "0795"},
		{"summer closes the prior academic year", TermSummer, 2025, "0798"},
		{"early years are zero padded", TermFall, 1950, "0050"},
		{"first representable year", TermFall, 1945, "0000"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := codec.Encode(tc.term, tc.year)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
			assert.Len(t, string(got), 4)
			for _, r := range string(got) {
				assert.True(t, r >= '0' && r <= '9')
			}
		})
	}
}

func TestEncodeFallAndSpringShareYearDigits(t *testing.T) {
	codec := testCodec()

	fall, err := codec.Encode(TermFall, 2024)
	require.NoError(t, err)
	spring, err := codec.Encode(TermSpring, 2025)
	require.NoError(t, err)

	assert.Equal(t, fall[:3], spring[:3])
	assert.Equal(t, uint8('0'), fall[3])
	assert.Equal(t, uint8('5'), spring[3])
}

func TestEncodeOutOfRangeYears(t *testing.T) {
	codec := testCodec()

	_, err := codec.Encode(TermFall, 1944)
	assert.True(t, appErrors.Is(err, appErrors.ErrMalformedCode))

	_, err = codec.Encode(TermFall, 2945)
	assert.True(t, appErrors.Is(err, appErrors.ErrMalformedCode))

	// Spring of the base year encodes against the prior fall, which is
	// before the epoch.
	_, err = codec.Encode(TermSpring, 1945)
	assert.True(t, appErrors.Is(err, appErrors.ErrMalformedCode))
}

func TestDeriveKey(t *testing.T) {
	key, ok := DeriveKey("UWOSH_0245_14W_CS_101_SEC1_12345")
	require.True(t, ok)
	assert.Equal(t, Code("0245"), key)

	_, ok = DeriveKey("UWOSH_ABCD_14W_CS_101_SEC1_12345")
	assert.False(t, ok)

	_, ok = DeriveKey("short")
	assert.False(t, ok)

	_, ok = DeriveKey("")
	assert.False(t, ok)
}

func TestBuildSectionCodeRoundTrip(t *testing.T) {
	codec := testCodec()

	code := codec.BuildSectionCode("0245", "14W", "CS", "101", "1", "12345")
	assert.Equal(t, "UWOSH_0245_14W_CS_101_SEC1_12345", code)

	key, ok := DeriveKey(code)
	require.True(t, ok)
	assert.Equal(t, Code("0245"), key)

	label, err := ParseDisplayLabel(code)
	require.NoError(t, err)
	assert.Equal(t, "CS 101 SEC1", label)
}

func TestParseDisplayLabelMalformed(t *testing.T) {
	_, err := ParseDisplayLabel("UWOSH_0245_14W")
	assert.True(t, appErrors.Is(err, appErrors.ErrMalformedCode))
}

func TestParseTerm(t *testing.T) {
	term, err := ParseTerm("Fall")
	require.NoError(t, err)
	assert.Equal(t, TermFall, term)

	_, err = ParseTerm("Winter")
	assert.True(t, appErrors.Is(err, appErrors.ErrValidation))
}
