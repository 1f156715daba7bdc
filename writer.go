package paf

import (
	"io"
	"strconv"

	"github.com/grailbio/base/file"
	"github.com/grailbio/base/fileio"
	"github.com/grailbio/base/tsv"
	"github.com/grailbio/base/vcontext"
	"github.com/klauspost/compress/gzip"
	"github.com/pkg/errors"
)

// Writer serializes records to the canonical tab-delimited PAF text form.
// Writers are buffered; call Flush (or Close) when done.  Writers are not
// threadsafe.
type Writer struct {
	tw    *tsv.Writer
	buf   []byte
	close func() error
}

// NewWriter returns a Writer that emits PAF lines to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{tw: tsv.NewWriter(w)}
}

// CreateFromPath creates the file at the given path (any scheme supported
// by grailbio/base/file) and returns a Writer over it.  Output to paths
// with a gzip suffix is compressed.  The caller must Close the Writer
// when done.
func CreateFromPath(path string) (*Writer, error) {
	ctx := vcontext.Background()
	out, err := file.Create(ctx, path)
	if err != nil {
		return nil, err
	}
	dst := io.Writer(out.Writer(ctx))
	switch fileio.DetermineType(path) {
	case fileio.Gzip:
		gz := gzip.NewWriter(dst)
		w := NewWriter(gz)
		w.close = func() error {
			err := gz.Close()
			if cerr := out.Close(ctx); err == nil {
				err = cerr
			}
			return err
		}
		return w, nil
	}
	w := NewWriter(dst)
	w.close = func() error { return out.Close(ctx) }
	return w, nil
}

// Write emits one record as a PAF line: the 12 mandatory fields in fixed
// order, then one TAG:TYPE:VALUE column per optional field, terminated by
// a single newline.  Optional fields are emitted in map iteration order,
// which is unordered; callers requiring deterministic output must impose
// an ordering of their own.  Values are written verbatim, with no
// escaping of embedded delimiters.  A failed write may leave a truncated
// line in the destination.
func (w *Writer) Write(rec *Record) error {
	tw := w.tw
	tw.WriteString(rec.queryName)
	tw.WriteUint32(rec.queryLen)
	tw.WriteUint32(rec.queryStart)
	tw.WriteUint32(rec.queryEnd)
	tw.WriteByte(rec.strand)
	tw.WriteString(rec.targetName)
	tw.WriteUint32(rec.targetLen)
	tw.WriteUint32(rec.targetStart)
	tw.WriteUint32(rec.targetEnd)
	tw.WriteUint32(rec.residueMatches)
	tw.WriteUint32(rec.alignmentBlockLen)
	tw.WriteUint32(uint32(rec.mapQ))
	for _, tag := range rec.optional {
		w.buf = appendTag(w.buf[:0], tag)
		tw.WriteString(string(w.buf))
	}
	if err := tw.EndLine(); err != nil {
		return errors.Wrap(err, "paf: write")
	}
	return nil
}

// appendTag renders one optional field as TAG:TYPE:VALUE.  Floats carry
// exactly 4 digits after the decimal point, matching minimap2 output.
func appendTag(buf []byte, t Tag) []byte {
	buf = append(buf, t.name...)
	switch t.val.kind {
	case KindInt:
		buf = append(buf, ":i:"...)
		buf = strconv.AppendInt(buf, t.val.i, 10)
	case KindFloat:
		buf = append(buf, ":f:"...)
		buf = strconv.AppendFloat(buf, t.val.f, 'f', 4, 64)
	case KindString:
		buf = append(buf, ":Z:"...)
		buf = append(buf, t.val.s...)
	case KindChar:
		buf = append(buf, ":A:"...)
		buf = append(buf, string(t.val.c)...)
	}
	return buf
}

// Flush writes buffered output to the underlying stream.
func (w *Writer) Flush() error {
	if err := w.tw.Flush(); err != nil {
		return errors.Wrap(err, "paf: flush")
	}
	return nil
}

// Close flushes the Writer and, for Writers constructed by
// CreateFromPath, closes the underlying file.
func (w *Writer) Close() error {
	err := w.Flush()
	if w.close != nil {
		if cerr := w.close(); err == nil {
			err = cerr
		}
	}
	return err
}
