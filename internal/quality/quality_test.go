package quality

import (
	"compress/gzip"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/biogo/hts/bam"
	"github.com/biogo/hts/sam"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func writeGzip(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	require.NoError(t, err)
	gz := gzip.NewWriter(f)
	_, err = gz.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, gz.Close())
	require.NoError(t, f.Close())
	return path
}

// writeBAM writes one mapped record per MAPQ value, then unmapped records
// carrying a MAPQ that must never be counted.
func writeBAM(t *testing.T, path string, mapqs []byte, unmapped int) {
	t.Helper()
	ref, err := sam.NewReference("chr1", "", "", 10000, nil, nil)
	require.NoError(t, err)
	h, err := sam.NewHeader(nil, []*sam.Reference{ref})
	require.NoError(t, err)

	f, err := os.Create(path)
	require.NoError(t, err)
	w, err := bam.NewWriter(f, h, 1)
	require.NoError(t, err)

	seq, qual := []byte("ACGT"), []byte{30, 30, 30, 30}
	cigar := []sam.CigarOp{sam.NewCigarOp(sam.CigarMatch, 4)}
	for i, q := range mapqs {
		rec, err := sam.NewRecord(fmt.Sprintf("m%d", i), ref, nil, 100*(i+1), -1, 0, q, cigar, seq, qual, nil)
		require.NoError(t, err)
		require.NoError(t, w.Write(rec))
	}
	for i := 0; i < unmapped; i++ {
		rec, err := sam.NewRecord(fmt.Sprintf("u%d", i), nil, nil, -1, -1, 0, 99, nil, seq, qual, nil)
		require.NoError(t, err)
		rec.Flags = sam.Unmapped
		require.NoError(t, w.Write(rec))
	}

	require.NoError(t, w.Close())
	require.NoError(t, f.Close())
}

func TestScanFASTQ_KnownQualities(t *testing.T) {
	q, err := ScanFASTQ(strings.NewReader("@r1\nACG\n+\nIII\n"))
	require.NoError(t, err)
	require.EqualValues(t, 3, q.Bases)
	require.InDelta(t, 40.0, q.Average(), 1e-9)
}

func TestScanFASTQ_MultipleRecords(t *testing.T) {
	// '5' = 20, '+' = 10, '!' = 0
	q, err := ScanFASTQ(strings.NewReader("@a\nAC\n+\n55\n@b\nACGT\n+\n++!!\n"))
	require.NoError(t, err)
	require.EqualValues(t, 6, q.Bases)
	require.EqualValues(t, 60, q.Sum)
	require.InDelta(t, 10.0, q.Average(), 1e-9)
}

func TestScanFASTQ_CRLFAndNoTrailingNewline(t *testing.T) {
	q, err := ScanFASTQ(strings.NewReader("@a\r\nACG\r\n+\r\nIII"))
	require.NoError(t, err)
	require.EqualValues(t, 3, q.Bases)
	require.InDelta(t, 40.0, q.Average(), 1e-9)
}

func TestScanFASTQ_Empty(t *testing.T) {
	q, err := ScanFASTQ(strings.NewReader(""))
	require.NoError(t, err)
	require.Zero(t, q.Average())
}

func TestAverageBaseQuality_Gzip(t *testing.T) {
	path := writeGzip(t, t.TempDir(), "r1.fastq.gz", "@r1\nACG\n+\nIII\n")

	avg, err := AverageBaseQuality(path)
	require.NoError(t, err)
	require.InDelta(t, 40.0, avg, 1e-9)
}

func TestAverageBaseQuality_Missing(t *testing.T) {
	_, err := AverageBaseQuality(filepath.Join(t.TempDir(), "none.fq"))
	require.Error(t, err)
}

func TestScanBAM_IgnoresUnmapped(t *testing.T) {
	path := filepath.Join(t.TempDir(), "aligned.bam")
	writeBAM(t, path, []byte{30, 60}, 1)

	avg, err := AverageMappingQuality(path)
	require.NoError(t, err)
	require.InDelta(t, 45.0, avg, 1e-9)
}

func TestScanBAM_NothingMapped(t *testing.T) {
	path := filepath.Join(t.TempDir(), "aligned.bam")
	writeBAM(t, path, nil, 3)

	avg, err := AverageMappingQuality(path)
	require.NoError(t, err)
	require.Zero(t, avg)
}

func TestScanBAM_NotBAM(t *testing.T) {
	path := writeFile(t, t.TempDir(), "aligned.bam", "not a bam\n")

	_, err := AverageMappingQuality(path)
	require.Error(t, err)
}

func TestCompute_SingleEnded(t *testing.T) {
	dir := t.TempDir()
	r1 := writeFile(t, dir, "r1.fq", "@r1\nACG\n+\nIII\n")
	bamPath := filepath.Join(dir, "aligned.bam")
	writeBAM(t, bamPath, []byte{30, 60}, 1)

	m, err := Compute(r1, "", bamPath)
	require.NoError(t, err)
	require.InDelta(t, 40.0, m.BaseQuality, 1e-9)
	require.InDelta(t, 45.0, m.MappingQuality, 1e-9)
}

func TestCompute_PairedIsUnweightedMean(t *testing.T) {
	dir := t.TempDir()
	r1 := writeFile(t, dir, "r1.fq", "@a\nACG\n+\nIII\n")
	r2 := writeGzip(t, dir, "r2.fq.gz", "@a\nACGT\n+\n!!!!\n@b\nAC\n+\n!!\n")
	bamPath := filepath.Join(dir, "aligned.bam")
	writeBAM(t, bamPath, []byte{10}, 0)

	m, err := Compute(r1, r2, bamPath)
	require.NoError(t, err)
	// per-file 40 and 0; a base-weighted mean would give 120/9
	require.InDelta(t, 20.0, m.BaseQuality, 1e-9)
	require.InDelta(t, 10.0, m.MappingQuality, 1e-9)
}
