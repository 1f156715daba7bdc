package main

/*
paf-view prints the records of a PAF file, one per line, with optional
fields sorted by tag name.  Gzipped inputs are decompressed based on the
path suffix.
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

var skipBad = flag.Bool("skip-bad", false, "Warn and continue past malformed lines instead of aborting")

func pafViewUsage() {
	fmt.Fprintf(os.Stderr, "Usage: %s [OPTIONS] pafpath\n", os.Args[0])
	flag.PrintDefaults()
}

func main() {
	flag.Usage = pafViewUsage
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
	it := r.Records()
	for {
		rec, err := it.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			if *skipBad {
				log.Error.Printf("%v", err)
				continue
			}
			log.Fatalf("%v", err)
		}
		fmt.Println(rec)
	}
	if err := r.Close(); err != nil {
		log.Fatalf("close %s: %v", path, err)
	}
}
