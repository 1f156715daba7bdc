package main

/*
paf-filter reads a PAF file and rewrites the records that pass a set of
alignment thresholds.  Malformed lines are skipped with a warning; the
line-oriented format makes the remainder of the file usable.
*/

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/grailbio/base/grail"
	"github.com/grailbio/base/log"
	"github.com/grailbio/paf"
)

var (
	minMapQ  = flag.Int("min-mapq", 0, "Drop records with mapping quality below this value")
	minBlock = flag.Int("min-block", 0, "Drop records whose alignment block length is below this value")
	primary  = flag.Bool("primary", false, "Keep only primary alignments (tp:A:P); records without a tp tag are kept")
	outPath  = flag.String("out", "", "Output path; writes to stdout if empty")
)

func pafFilterUsage() {
	fmt.Fprintf(os.Stderr, "Usage: %s [OPTIONS] pafpath\n", os.Args[0])
	flag.PrintDefaults()
}

func keep(rec *paf.Record) bool {
	if int(rec.MapQ()) < *minMapQ {
		return false
	}
	if int(rec.AlignmentBlockLen()) < *minBlock {
		return false
	}
	if *primary {
		if tp, ok := rec.Tp(); ok && tp != 'P' {
			return false
		}
	}
	return true
}

func main() {
	flag.Usage = pafFilterUsage
	shutdown := grail.Init()
	defer shutdown()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}
	path := flag.Arg(0)
	r, err := paf.NewFromPath(path)
	if err != nil {
		log.Fatalf("open %s: %v", path, err)
	}
	var w *paf.Writer
	if *outPath == "" {
		w = paf.NewWriter(os.Stdout)
	} else {
		if w, err = paf.CreateFromPath(*outPath); err != nil {
			log.Fatalf("create %s: %v", *outPath, err)
		}
	}

	var total, kept, bad int
	it := r.Records()
	for {
		rec, err := it.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			log.Error.Printf("%v", err)
			bad++
			continue
		}
		total++
		if !keep(rec) {
			continue
		}
		if err := w.Write(rec); err != nil {
			log.Fatalf("write: %v", err)
		}
		kept++
	}
	if err := r.Close(); err != nil {
		log.Fatalf("close %s: %v", path, err)
	}
	if err := w.Close(); err != nil {
		log.Fatalf("close output: %v", err)
	}
	log.Printf("kept %d of %d records (%d malformed lines skipped)", kept, total, bad)
}
