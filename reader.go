package paf

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/grailbio/base/file"
	"github.com/grailbio/base/fileio"
	"github.com/grailbio/base/vcontext"
	"github.com/klauspost/compress/gzip"
	"github.com/pkg/errors"
)

// Reader parses PAF records from a byte stream, one line at a time.
// Readers are not threadsafe.
type Reader struct {
	br *bufio.Reader
	// line counts consumed lines; it is incremented as soon as a line has
	// been read, before any parse error for that line is constructed, so
	// reported line numbers are 1-based and exact.
	line  int
	close func() error
}

// NewReader returns a Reader that parses PAF data from r.
func NewReader(r io.Reader) *Reader {
	return &Reader{br: bufio.NewReader(r)}
}

// NewFromPath opens the file at the given path (any scheme supported by
// grailbio/base/file) and returns a Reader over it.  Gzipped files are
// transparently decompressed based on the path suffix.  The caller must
// Close the Reader when done.
func NewFromPath(path string) (*Reader, error) {
	ctx := vcontext.Background()
	in, err := file.Open(ctx, path)
	if err != nil {
		return nil, err
	}
	src := io.Reader(in.Reader(ctx))
	switch fileio.DetermineType(path) {
	case fileio.Gzip:
		gz, err := gzip.NewReader(src)
		if err != nil {
			_ = in.Close(ctx)
			return nil, errors.Wrapf(err, "paf: open %s", path)
		}
		r := NewReader(gz)
		r.close = func() error {
			err := gz.Close()
			if cerr := in.Close(ctx); err == nil {
				err = cerr
			}
			return err
		}
		return r, nil
	}
	r := NewReader(src)
	r.close = func() error { return in.Close(ctx) }
	return r, nil
}

// Close releases the underlying file for Readers constructed by
// NewFromPath.  It is a no-op for Readers over caller-owned streams.
func (r *Reader) Close() error {
	if r.close == nil {
		return nil
	}
	return r.close()
}

// Line returns the number of lines consumed so far.
func (r *Reader) Line() int { return r.line }

// Read parses and returns the next record.  It returns io.EOF at the
// clean end of the stream.  A parse failure aborts only the offending
// line; the next Read resumes at the following line.
func (r *Reader) Read() (*Record, error) {
	raw, err := r.br.ReadString('\n')
	if err != nil && err != io.EOF {
		return nil, errors.Wrap(err, "paf: read")
	}
	if len(raw) == 0 {
		return nil, io.EOF
	}
	r.line++

	columns := strings.Split(strings.TrimRight(raw, "\r\n"), "\t")
	if len(columns) < 12 {
		return nil, &ParseError{Line: r.line, Msg: "fewer than 12 mandatory fields"}
	}

	queryLen, err := r.parseUint32(columns[1], "query length")
	if err != nil {
		return nil, err
	}
	queryStart, err := r.parseUint32(columns[2], "query start")
	if err != nil {
		return nil, err
	}
	queryEnd, err := r.parseUint32(columns[3], "query end")
	if err != nil {
		return nil, err
	}
	if columns[4] == "" {
		return nil, &ParseError{Line: r.line, Msg: "empty strand field"}
	}
	// Only the first character of the strand column is significant.
	strand := columns[4][0]
	if strand != '+' && strand != '-' {
		return nil, &ParseError{Line: r.line, Msg: fmt.Sprintf("invalid strand character %q", strand)}
	}
	targetLen, err := r.parseUint32(columns[6], "target length")
	if err != nil {
		return nil, err
	}
	targetStart, err := r.parseUint32(columns[7], "target start")
	if err != nil {
		return nil, err
	}
	targetEnd, err := r.parseUint32(columns[8], "target end")
	if err != nil {
		return nil, err
	}
	residueMatches, err := r.parseUint32(columns[9], "residue matches")
	if err != nil {
		return nil, err
	}
	blockLen, err := r.parseUint32(columns[10], "alignment block length")
	if err != nil {
		return nil, err
	}
	mapQ, err := strconv.ParseUint(columns[11], 10, 8)
	if err != nil {
		return nil, &NumericError{Line: r.line, Field: "mapping quality", Err: err}
	}

	optional, err := r.parseOptional(columns[12:])
	if err != nil {
		return nil, err
	}

	return &Record{
		queryName:         columns[0],
		queryLen:          queryLen,
		queryStart:        queryStart,
		queryEnd:          queryEnd,
		strand:            strand,
		targetName:        columns[5],
		targetLen:         targetLen,
		targetStart:       targetStart,
		targetEnd:         targetEnd,
		residueMatches:    residueMatches,
		alignmentBlockLen: blockLen,
		mapQ:              uint8(mapQ),
		optional:          optional,
	}, nil
}

func (r *Reader) parseUint32(col, field string) (uint32, error) {
	v, err := strconv.ParseUint(col, 10, 32)
	if err != nil {
		return 0, &NumericError{Line: r.line, Field: field, Err: err}
	}
	return uint32(v), nil
}

// parseOptional parses the columns after the 12th.  Each must be of the
// form TAG:TYPE:VALUE; only the first two colons are structural, a value
// may contain further colons.  A duplicate tag on the same line silently
// overwrites the earlier one.
func (r *Reader) parseOptional(columns []string) (map[string]Tag, error) {
	optional := make(map[string]Tag, len(columns))
	for _, col := range columns {
		parts := strings.SplitN(col, ":", 3)
		if len(parts) < 3 {
			return nil, &ParseError{Line: r.line, Msg: fmt.Sprintf("invalid optional field %q: too few parts", col)}
		}
		v, ok := parseValue(parts[1], parts[2])
		if !ok {
			return nil, &ParseError{Line: r.line, Msg: fmt.Sprintf("invalid optional field value %q for type code %q", parts[2], parts[1])}
		}
		tag, err := ParseTag(parts[0], v)
		if err != nil {
			if pe, ok := err.(*ParseError); ok {
				pe.Line = r.line
			}
			return nil, err
		}
		optional[tag.Name()] = tag
	}
	return optional, nil
}

// Records returns an iterator over the remaining records.  The iterator
// borrows the Reader, which stays usable (e.g. for Line or further Read
// calls) after iteration ends.
func (r *Reader) Records() *RecordIter {
	return &RecordIter{r: r}
}

// IntoRecords returns an iterator that assumes ownership of the Reader.
// The Reader can be recovered with Unwrap once iteration ends.
func (r *Reader) IntoRecords() *OwnedRecordIter {
	return &OwnedRecordIter{r: r}
}

// RecordIter is a forward-only iterator over a Reader's records.  Each
// Next call consumes exactly one line.  A parse error does not end the
// sequence: the following Next resumes at the next line, so callers may
// skip malformed lines without losing subsequent records.
type RecordIter struct {
	r *Reader
}

// Next returns the next record, or io.EOF at the end of the stream.
func (it *RecordIter) Next() (*Record, error) {
	return it.r.Read()
}

// Reader returns the underlying Reader.
func (it *RecordIter) Reader() *Reader { return it.r }

// OwnedRecordIter is a RecordIter that owns its Reader.  Iteration
// behaves identically; the Reader is recovered via Unwrap.
type OwnedRecordIter struct {
	r *Reader
}

// Next returns the next record, or io.EOF at the end of the stream.
func (it *OwnedRecordIter) Next() (*Record, error) {
	return it.r.Read()
}

// Unwrap returns the underlying Reader, ending iteration.
func (it *OwnedRecordIter) Unwrap() *Reader {
	r := it.r
	it.r = nil
	return r
}
