package paf

import (
	"testing"

	"github.com/grailbio/testutil/expect"
)

func TestParseValue(t *testing.T) {
	for _, tc := range []struct {
		code, raw string
		ok        bool
		want      Value
	}{
		{"i", "48730", true, IntValue(48730)},
		{"i", "-12", true, IntValue(-12)},
		{"i", "abc", false, Value{}},
		{"i", "", false, Value{}},
		{"f", "0.0003", true, FloatValue(0.0003)},
		{"f", "x", false, Value{}},
		{"A", "P", true, CharValue('P')},
		{"A", "Pxyz", true, CharValue('P')}, // only the first character counts
		{"A", "", false, Value{}},
		{"Z", "770M", true, StringValue("770M")},
		{"Z", "", true, StringValue("")},
		// Unrecognized codes fall back to text.
		{"B", "i,1,2", true, StringValue("i,1,2")},
		{"", "x", true, StringValue("x")},
	} {
		got, ok := parseValue(tc.code, tc.raw)
		expect.EQ(t, ok, tc.ok, "code=%q raw=%q", tc.code, tc.raw)
		expect.EQ(t, got, tc.want, "code=%q raw=%q", tc.code, tc.raw)
	}
}

func TestValueAccessors(t *testing.T) {
	v := IntValue(7)
	expect.EQ(t, v.Kind(), KindInt)
	i, ok := v.Int()
	expect.True(t, ok)
	expect.EQ(t, i, int64(7))
	_, ok = v.Float()
	expect.False(t, ok)
	_, ok = v.Str()
	expect.False(t, ok)
	_, ok = v.Char()
	expect.False(t, ok)

	f, ok := FloatValue(0.5).Float()
	expect.True(t, ok)
	expect.EQ(t, f, 0.5)
	s, ok := StringValue("x:y").Str()
	expect.True(t, ok)
	expect.EQ(t, s, "x:y")
	c, ok := CharValue('-').Char()
	expect.True(t, ok)
	expect.EQ(t, c, '-')
}

func TestParseTag(t *testing.T) {
	for name := range tagKinds {
		tag, err := ParseTag(name, IntValue(1))
		expect.NoError(t, err)
		expect.EQ(t, tag.Name(), name)
	}

	_, err := ParseTag("xx", IntValue(1))
	expect.HasSubstr(t, err.Error(), `unrecognized tag "xx"`)
	_, err = ParseTag("TP", CharValue('P')) // tags are case-sensitive
	expect.HasSubstr(t, err.Error(), `unrecognized tag "TP"`)
}

func TestValueKindString(t *testing.T) {
	expect.EQ(t, KindInt.String(), "i")
	expect.EQ(t, KindFloat.String(), "f")
	expect.EQ(t, KindString.String(), "Z")
	expect.EQ(t, KindChar.String(), "A")
}
