package paf

import (
	"strconv"
	"unicode/utf8"
)

// ValueKind discriminates the payload types an optional field can carry.
type ValueKind uint8

const (
	// KindInt is a 64-bit signed integer payload (type code 'i').
	KindInt ValueKind = iota
	// KindFloat is a 64-bit float payload (type code 'f').
	KindFloat
	// KindString is a text payload (type code 'Z').
	KindString
	// KindChar is a single-character payload (type code 'A').
	KindChar
)

var kindNames = []string{"i", "f", "Z", "A"}

// String returns the PAF type code for the kind.
func (k ValueKind) String() string {
	if int(k) >= len(kindNames) {
		return "?"
	}
	return kindNames[k]
}

// Value is the payload of one optional field. It is immutable once
// constructed; exactly one of the four payload kinds is set.
type Value struct {
	kind ValueKind
	i    int64
	f    float64
	s    string
	c    rune
}

// IntValue returns a Value holding a 64-bit signed integer.
func IntValue(v int64) Value { return Value{kind: KindInt, i: v} }

// FloatValue returns a Value holding a 64-bit float.
func FloatValue(v float64) Value { return Value{kind: KindFloat, f: v} }

// StringValue returns a Value holding text.
func StringValue(v string) Value { return Value{kind: KindString, s: v} }

// CharValue returns a Value holding a single character.
func CharValue(v rune) Value { return Value{kind: KindChar, c: v} }

// Kind returns the payload kind.
func (v Value) Kind() ValueKind { return v.kind }

// Int returns the integer payload. ok is false if the Value holds a
// different kind.
func (v Value) Int() (int64, bool) {
	if v.kind != KindInt {
		return 0, false
	}
	return v.i, true
}

// Float returns the float payload. ok is false if the Value holds a
// different kind.
func (v Value) Float() (float64, bool) {
	if v.kind != KindFloat {
		return 0, false
	}
	return v.f, true
}

// Str returns the text payload. ok is false if the Value holds a
// different kind.
func (v Value) Str() (string, bool) {
	if v.kind != KindString {
		return "", false
	}
	return v.s, true
}

// Char returns the character payload. ok is false if the Value holds a
// different kind.
func (v Value) Char() (rune, bool) {
	if v.kind != KindChar {
		return 0, false
	}
	return v.c, true
}

// parseValue interprets raw per the given type code: 'i' integer, 'f'
// float, 'A' single character, 'Z' text. Any other code falls back to
// text rather than failing; minimap2 has grown new type codes over time
// and older consumers are expected to pass them through.
func parseValue(code, raw string) (Value, bool) {
	switch code {
	case "i":
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return Value{}, false
		}
		return IntValue(v), true
	case "f":
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return Value{}, false
		}
		return FloatValue(v), true
	case "A":
		if raw == "" {
			return Value{}, false
		}
		r, _ := utf8.DecodeRuneInString(raw)
		return CharValue(r), true
	default: // 'Z' and unrecognized codes
		return StringValue(raw), true
	}
}

// Tag is one recognized optional field: a canonical two-character name
// paired with its Value.
type Tag struct {
	name string
	val  Value
}

// Name returns the canonical two-character identifier, e.g. "NM".
func (t Tag) Name() string { return t.name }

// Value returns the wrapped payload.
func (t Tag) Value() Value { return t.val }

// tagKinds is the closed set of recognized tags and the payload kind each
// conventionally carries (per the minimap2 man page). Membership gates
// ParseTag; the kinds document which typed Record accessor applies.
var tagKinds = map[string]ValueKind{
	"tp": KindChar,   // type of aln: P/primary, S/secondary, I,i/inversion
	"cm": KindInt,    // number of minimizers on the chain
	"s1": KindInt,    // chaining score
	"s2": KindInt,    // chaining score of the best secondary chain
	"NM": KindInt,    // total number of mismatches and gaps in the alignment
	"MD": KindString, // to generate the ref sequence in the alignment
	"AS": KindInt,    // DP alignment score
	"SA": KindString, // list of other supplementary alignments
	"ms": KindInt,    // DP score of the max scoring segment in the alignment
	"nn": KindInt,    // number of ambiguous bases in the alignment
	"ts": KindChar,   // transcript strand (splice mode only)
	"cg": KindString, // CIGAR string
	"cs": KindString, // difference string
	"dv": KindFloat,  // approximate per-base sequence divergence
	"de": KindFloat,  // gap-compressed per-base sequence divergence
	"rl": KindInt,    // length of query regions harboring repetitive seeds
	"zd": KindInt,    // zd
}

// ParseTag pairs a textual identifier with a parsed Value. Identifiers
// outside the recognized set fail with a ParseError naming the tag;
// aligners may emit arbitrary tags in principle, but an unrecognized one
// is treated as fatal for its field rather than silently dropped.
func ParseTag(name string, v Value) (Tag, error) {
	if _, ok := tagKinds[name]; !ok {
		return Tag{}, &ParseError{Msg: "unrecognized tag " + strconv.Quote(name)}
	}
	return Tag{name: name, val: v}, nil
}
