// Package paf contains code for reading and writing PAF (Pairwise mApping
// Format) files, the tab-delimited alignment format emitted by minimap2
// and similar aligners.  Briefly, each line describes one alignment
// between a query and a target sequence: 12 mandatory columns followed by
// any number of TAG:TYPE:VALUE optional fields.  For example:
//
// q1	1000	100	500	+	t1	1500	200	600	300	400	60	NM:i:5	tp:A:P
//
// See https://github.com/lh3/miniasm/blob/master/PAF.md for the column
// definitions and the minimap2 man page for the optional-field set.
package paf

import (
	"fmt"
	"sort"
	"strings"

	"github.com/grailbio/hts/sam"
)

// Record is one parsed PAF alignment line: the 12 mandatory columns plus
// the optional fields, keyed by canonical tag name.  A Record is immutable
// once constructed; it exclusively owns its optional-field map.
type Record struct {
	queryName         string
	queryLen          uint32
	queryStart        uint32
	queryEnd          uint32
	strand            byte
	targetName        string
	targetLen         uint32
	targetStart       uint32
	targetEnd         uint32
	residueMatches    uint32
	alignmentBlockLen uint32
	mapQ              uint8
	optional          map[string]Tag
}

// NewRecord constructs a Record from mandatory-column values and an
// optional-field set.  strand must be '+' or '-'.  The optional map is
// copied and re-keyed by canonical tag name; a nil map means no optional
// fields.  Coordinate ordering is not validated, matching the format's
// own leniency.
func NewRecord(
	queryName string, queryLen, queryStart, queryEnd uint32,
	strand byte,
	targetName string, targetLen, targetStart, targetEnd uint32,
	residueMatches, alignmentBlockLen uint32, mapQ uint8,
	optional map[string]Tag,
) (*Record, error) {
	if strand != '+' && strand != '-' {
		return nil, &ParseError{Msg: fmt.Sprintf("invalid strand character %q", strand)}
	}
	opt := make(map[string]Tag, len(optional))
	for _, t := range optional {
		if t.name == "" {
			return nil, &ParseError{Msg: "zero-valued tag in optional field map"}
		}
		opt[t.name] = t
	}
	return &Record{
		queryName:         queryName,
		queryLen:          queryLen,
		queryStart:        queryStart,
		queryEnd:          queryEnd,
		strand:            strand,
		targetName:        targetName,
		targetLen:         targetLen,
		targetStart:       targetStart,
		targetEnd:         targetEnd,
		residueMatches:    residueMatches,
		alignmentBlockLen: alignmentBlockLen,
		mapQ:              mapQ,
		optional:          opt,
	}, nil
}

// QueryName returns the query sequence name.
func (r *Record) QueryName() string { return r.queryName }

// QueryLen returns the query sequence length.
func (r *Record) QueryLen() uint32 { return r.queryLen }

// QueryStart returns the 0-based query start coordinate.
func (r *Record) QueryStart() uint32 { return r.queryStart }

// QueryEnd returns the query end coordinate.
func (r *Record) QueryEnd() uint32 { return r.queryEnd }

// Strand returns '+' if query and target are on the same strand, '-' if
// opposite.
func (r *Record) Strand() byte { return r.strand }

// TargetName returns the target sequence name.
func (r *Record) TargetName() string { return r.targetName }

// TargetLen returns the target sequence length.
func (r *Record) TargetLen() uint32 { return r.targetLen }

// TargetStart returns the target start coordinate on the original strand.
func (r *Record) TargetStart() uint32 { return r.targetStart }

// TargetEnd returns the target end coordinate on the original strand.
func (r *Record) TargetEnd() uint32 { return r.targetEnd }

// ResidueMatches returns the number of matching bases in the mapping.
func (r *Record) ResidueMatches() uint32 { return r.residueMatches }

// AlignmentBlockLen returns the number of bases, including gaps, in the
// mapping.
func (r *Record) AlignmentBlockLen() uint32 { return r.alignmentBlockLen }

// MapQ returns the mapping quality (0-255, with 255 meaning missing).
func (r *Record) MapQ() uint8 { return r.mapQ }

// OptionalFields returns the optional-field set keyed by canonical tag
// name.  The returned map must not be modified.
func (r *Record) OptionalFields() map[string]Tag { return r.optional }

func (r *Record) tagInt(name string) (int64, bool) {
	t, ok := r.optional[name]
	if !ok {
		return 0, false
	}
	return t.val.Int()
}

func (r *Record) tagFloat(name string) (float64, bool) {
	t, ok := r.optional[name]
	if !ok {
		return 0, false
	}
	return t.val.Float()
}

func (r *Record) tagStr(name string) (string, bool) {
	t, ok := r.optional[name]
	if !ok {
		return "", false
	}
	return t.val.Str()
}

func (r *Record) tagChar(name string) (rune, bool) {
	t, ok := r.optional[name]
	if !ok {
		return 0, false
	}
	return t.val.Char()
}

// The typed accessors below return ok=false when the tag is absent, and
// also when a tag parsed under a lenient type code carries a payload kind
// other than the conventional one (e.g. "cm:x:12" parses as text).  They
// never panic on such a mismatch.

// Tp returns the alignment type: P/primary, S/secondary, I,i/inversion.
func (r *Record) Tp() (rune, bool) { return r.tagChar("tp") }

// Cm returns the number of minimizers on the chain.
func (r *Record) Cm() (int64, bool) { return r.tagInt("cm") }

// S1 returns the chaining score.
func (r *Record) S1() (int64, bool) { return r.tagInt("s1") }

// S2 returns the chaining score of the best secondary chain.
func (r *Record) S2() (int64, bool) { return r.tagInt("s2") }

// NM returns the total number of mismatches and gaps in the alignment.
func (r *Record) NM() (int64, bool) { return r.tagInt("NM") }

// MD returns the string for generating the ref sequence in the alignment.
func (r *Record) MD() (string, bool) { return r.tagStr("MD") }

// AS returns the DP alignment score.
func (r *Record) AS() (int64, bool) { return r.tagInt("AS") }

// SA returns the list of other supplementary alignments.
func (r *Record) SA() (string, bool) { return r.tagStr("SA") }

// Ms returns the DP score of the max scoring segment in the alignment.
func (r *Record) Ms() (int64, bool) { return r.tagInt("ms") }

// Nn returns the number of ambiguous bases in the alignment.
func (r *Record) Nn() (int64, bool) { return r.tagInt("nn") }

// Ts returns the transcript strand (splice mode only).
func (r *Record) Ts() (rune, bool) { return r.tagChar("ts") }

// Cg returns the CIGAR string.
func (r *Record) Cg() (string, bool) { return r.tagStr("cg") }

// Cs returns the difference string.
func (r *Record) Cs() (string, bool) { return r.tagStr("cs") }

// Dv returns the approximate per-base sequence divergence.
func (r *Record) Dv() (float64, bool) { return r.tagFloat("dv") }

// De returns the gap-compressed per-base sequence divergence.
func (r *Record) De() (float64, bool) { return r.tagFloat("de") }

// Rl returns the length of query regions harboring repetitive seeds.
func (r *Record) Rl() (int64, bool) { return r.tagInt("rl") }

// Zd returns the zd tag value.
func (r *Record) Zd() (int64, bool) { return r.tagInt("zd") }

// Cigar parses the cg tag into a sam.Cigar.  It returns (nil, nil) when
// the record carries no cg tag.
func (r *Record) Cigar() (sam.Cigar, error) {
	s, ok := r.Cg()
	if !ok {
		return nil, nil
	}
	return sam.ParseCigar([]byte(s))
}

// String renders the record as a PAF line without the trailing newline.
// Optional fields are sorted by tag name here for readability; Writer
// intentionally does not sort (see Writer.Write).
func (r *Record) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\t%d\t%d\t%d\t%c\t%s\t%d\t%d\t%d\t%d\t%d\t%d",
		r.queryName, r.queryLen, r.queryStart, r.queryEnd, r.strand,
		r.targetName, r.targetLen, r.targetStart, r.targetEnd,
		r.residueMatches, r.alignmentBlockLen, r.mapQ)
	names := make([]string, 0, len(r.optional))
	for name := range r.optional {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		b.WriteByte('\t')
		b.Write(appendTag(nil, r.optional[name]))
	}
	return b.String()
}
