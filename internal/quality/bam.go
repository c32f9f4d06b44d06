package quality

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/biogo/hts/bam"
	"github.com/biogo/hts/sam"
)

// MappingQuality accumulates MAPQ over mapped records only.
type MappingQuality struct {
	Sum    int64
	Mapped int64
}

// Average returns Sum/Mapped, or 0 when nothing mapped.
func (m MappingQuality) Average() float64 {
	if m.Mapped == 0 {
		return 0
	}
	return float64(m.Sum) / float64(m.Mapped)
}

// ScanBAM reads every record of a BAM stream.
func ScanBAM(r io.Reader) (MappingQuality, error) {
	var mq MappingQuality

	br, err := bam.NewReader(r, 1)
	if err != nil {
		return mq, fmt.Errorf("opening bam: %w", err)
	}
	defer br.Close()

	for {
		rec, err := br.Read()
		if errors.Is(err, io.EOF) {
			return mq, nil
		}
		if err != nil {
			return mq, fmt.Errorf("reading bam record: %w", err)
		}
		if rec.Flags&sam.Unmapped != 0 {
			continue
		}
		mq.Sum += int64(rec.MapQ)
		mq.Mapped++
	}
}

// AverageMappingQuality returns the mean MAPQ of the mapped records in a
// BAM file.
func AverageMappingQuality(path string) (float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("opening alignments: %w", err)
	}
	defer f.Close()

	mq, err := ScanBAM(f)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", path, err)
	}
	return mq.Average(), nil
}
