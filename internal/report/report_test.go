package report

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sznuper/alignpipe/internal/flagstat"
	"github.com/sznuper/alignpipe/internal/monitor"
	"github.com/sznuper/alignpipe/internal/quality"
)

var (
	sampleQuality = quality.Metrics{BaseQuality: 36.456, MappingQuality: 45}
	sampleUsage   = monitor.Summary{
		CPU:     monitor.Stats{Min: 95.5, Max: 398.25, Avg: 301.125},
		Memory:  monitor.Stats{Min: 120, Max: 5300.5, Avg: 4100.75},
		Samples: 12,
	}
)

const metricsBlock = `
Average base quality (Phred): 36.46
Average mapping quality (MAPQ): 45.00
Max CPU usage (%): 398.25
CPU usage (%) - min: 95.50, max: 398.25, avg: 301.12
Max Memory usage (MB): 5300.50
Memory usage (MB) - min: 120.00, max: 5300.50, avg: 4100.75
`

func TestWrite_FullReport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.txt")
	stats := flagstat.Parse("200 + 0 in total (QC-passed reads + QC-failed reads)\n" +
		"10 + 0 duplicates\n190 + 0 mapped (95.00% : N/A)\n4 + 0 singletons (2.00% : N/A)\n")

	require.NoError(t, Write(path, stats, sampleQuality, sampleUsage))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "Total reads: 200\n"+
		"Mapped reads: 190 (95.00%)\n"+
		"Unmapped reads: 10 (5.00%)\n"+
		"Duplicated reads: 10 (5.00%)\n"+
		"Singletons: 4 (2.00%)\n"+
		metricsBlock, string(data))
}

func TestWrite_NoStatsStillHasMetrics(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.txt")

	require.NoError(t, Write(path, flagstat.Stats{}, quality.Metrics{}, monitor.Summary{}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "Average base quality (Phred): 0.00\n")
	require.Contains(t, string(data), "Memory usage (MB) - min: 0.00, max: 0.00, avg: 0.00\n")
	require.NotContains(t, string(data), "Total reads")
}

func TestWrite_RerunOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.txt")
	stats := flagstat.Parse("7 + 0 in total (QC-passed reads + QC-failed reads)\n")

	require.NoError(t, Write(path, stats, sampleQuality, sampleUsage))
	first, err := os.ReadFile(path)
	require.NoError(t, err)

	require.NoError(t, Write(path, stats, sampleQuality, sampleUsage))
	second, err := os.ReadFile(path)
	require.NoError(t, err)

	require.Equal(t, string(first), string(second))
}

func TestAppendMetrics_RequiresBase(t *testing.T) {
	err := AppendMetrics(filepath.Join(t.TempDir(), "absent.txt"), sampleQuality, sampleUsage)
	require.Error(t, err)
}
