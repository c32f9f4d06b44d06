package quality

import (
	"bufio"
	"bytes"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// phredOffset is the Sanger/Illumina 1.8+ quality encoding offset.
const phredOffset = 33

// BaseQuality is the running sum over every quality character of a reads
// file.
type BaseQuality struct {
	Sum   int64
	Bases int64
}

// Average returns Sum/Bases, or 0 when no bases were seen.
func (b BaseQuality) Average() float64 {
	if b.Bases == 0 {
		return 0
	}
	return float64(b.Sum) / float64(b.Bases)
}

// ScanFASTQ reads four-line FASTQ records and accumulates the quality line
// of each. A trailing partial record contributes whatever quality line it
// has.
func ScanFASTQ(r io.Reader) (BaseQuality, error) {
	var q BaseQuality
	br := bufio.NewReaderSize(r, 1<<16)

	for {
		header, err := readLine(br)
		if err != nil {
			return q, err
		}
		if header == nil {
			return q, nil
		}
		// sequence, separator, quality
		var qual []byte
		for i := 0; i < 3; i++ {
			line, err := readLine(br)
			if err != nil {
				return q, err
			}
			qual = line
		}
		for _, c := range qual {
			q.Sum += int64(c) - phredOffset
		}
		q.Bases += int64(len(qual))
	}
}

// readLine returns the next line without its terminator, nil at EOF.
func readLine(br *bufio.Reader) ([]byte, error) {
	line, err := br.ReadBytes('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("reading fastq: %w", err)
	}
	if len(line) == 0 && err != nil {
		return nil, nil
	}
	return bytes.TrimRight(line, " \t\r\n"), nil
}

// AverageBaseQuality opens a reads file (gzip when named *.gz) and returns
// its mean decoded quality.
func AverageBaseQuality(path string) (float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("opening reads: %w", err)
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(path, ".gz") {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return 0, fmt.Errorf("opening gzip reads %s: %w", path, err)
		}
		defer gz.Close()
		r = gz
	}

	q, err := ScanFASTQ(r)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", path, err)
	}
	return q.Average(), nil
}
