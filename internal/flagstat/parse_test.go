package flagstat

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const pairedFlagstat = `200 + 0 in total (QC-passed reads + QC-failed reads)
200 + 0 primary
0 + 0 secondary
0 + 0 supplementary
10 + 0 duplicates
10 + 0 primary duplicates
190 + 0 mapped (95.00% : N/A)
190 + 0 primary mapped (95.00% : N/A)
200 + 0 paired in sequencing
100 + 0 read1
100 + 0 read2
180 + 0 properly paired (90.00% : N/A)
186 + 0 with itself and mate mapped
4 + 0 singletons (2.00% : N/A)
0 + 0 with mate mapped to a different chr
0 + 0 with mate mapped to a different chr (mapQ>=5)
`

func TestParse_Paired(t *testing.T) {
	s := Parse(pairedFlagstat)

	require.NotNil(t, s.Total)
	require.EqualValues(t, 200, *s.Total)
	require.Equal(t, "190 (95.00%)", s.Mapped.String())
	require.Equal(t, "10 (5.00%)", s.Unmapped.String())
	require.Equal(t, "10 (5.00%)", s.Duplicated.String())
	require.Equal(t, "4 (2.00%)", s.Singletons.String())

	require.Equal(t, []Field{
		{"Total reads", "200"},
		{"Mapped reads", "190 (95.00%)"},
		{"Unmapped reads", "10 (5.00%)"},
		{"Duplicated reads", "10 (5.00%)"},
		{"Singletons", "4 (2.00%)"},
	}, s.Fields())
}

func TestParse_UnmappedIsComplement(t *testing.T) {
	s := Parse("1000 + 0 in total (QC-passed reads + QC-failed reads)\n987 + 0 mapped (98.70% : N/A)\n")

	require.Equal(t, *s.Total, s.Mapped.N+s.Unmapped.N)
	require.InDelta(t, 1.30, s.Unmapped.Percent, 1e-9)
	require.Equal(t, "13 (1.30%)", s.Unmapped.String())
}

func TestParse_OrderInsensitive(t *testing.T) {
	lines := strings.Split(strings.TrimSpace(pairedFlagstat), "\n")
	for i, j := 0, len(lines)-1; i < j; i, j = i+1, j-1 {
		lines[i], lines[j] = lines[j], lines[i]
	}

	require.Equal(t, Parse(pairedFlagstat).Fields(), Parse(strings.Join(lines, "\n")).Fields())
}

func TestParse_PrimaryLinesIgnored(t *testing.T) {
	s := Parse("5 + 0 primary mapped (50.00% : N/A)\n3 + 0 primary duplicates\n")

	require.Nil(t, s.Mapped)
	require.Nil(t, s.Duplicated)
	require.Empty(t, s.Fields())
}

func TestParse_MissingTotalDropsDerived(t *testing.T) {
	s := Parse("190 + 0 mapped (95.00% : N/A)\n10 + 0 duplicates\n")

	require.Nil(t, s.Total)
	require.NotNil(t, s.Mapped)
	require.Nil(t, s.Unmapped)
	require.Nil(t, s.Duplicated)
	require.Equal(t, []Field{{"Mapped reads", "190 (95.00%)"}}, s.Fields())
}

func TestParse_ZeroTotalDropsDuplicatePercent(t *testing.T) {
	s := Parse("0 + 0 in total (QC-passed reads + QC-failed reads)\n0 + 0 duplicates\n0 + 0 mapped (N/A : N/A)\n")

	require.NotNil(t, s.Total)
	require.Nil(t, s.Duplicated)
	require.Nil(t, s.Mapped, "N/A percentages do not match")
	require.Nil(t, s.Unmapped)
}

func TestParse_DuplicatePercentOfTotal(t *testing.T) {
	s := Parse("3 + 0 duplicates\n7 + 0 in total (QC-passed reads + QC-failed reads)\n")

	require.Equal(t, "3 (42.86%)", s.Duplicated.String())
	require.InDelta(t, 100*3.0/7.0, s.Duplicated.Percent, 1e-9)
}

func TestParse_OlderFormat(t *testing.T) {
	// samtools < 1.10 prints a single percentage
	s := Parse("50 + 0 in total (QC-passed reads + QC-failed reads)\n48 + 0 mapped (96.00%:-nan%)\n1 + 0 singletons (2.00%:-nan%)\n")

	require.Equal(t, "48 (96.00%)", s.Mapped.String())
	require.Equal(t, "2 (4.00%)", s.Unmapped.String())
	require.Equal(t, "1 (2.00%)", s.Singletons.String())
}

func TestParse_Empty(t *testing.T) {
	require.Equal(t, Stats{}, Parse(""))
}

func TestRead(t *testing.T) {
	s, err := Read(strings.NewReader(pairedFlagstat))
	require.NoError(t, err)
	require.Equal(t, Parse(pairedFlagstat), s)
}

func TestParse_OverflowLeavesFieldAbsent(t *testing.T) {
	s := Parse("99999999999999999999 + 0 in total (QC-passed reads + QC-failed reads)\n" +
		"99999999999999999998 + 0 mapped (99.00% : N/A)\n" +
		"3 + 0 duplicates\n" +
		"1 + 0 singletons (1.00% : N/A)\n")

	require.Nil(t, s.Total)
	require.Nil(t, s.Mapped)
	require.Nil(t, s.Unmapped)
	require.Nil(t, s.Duplicated)
	require.Equal(t, []Field{{"Singletons", "1 (1.00%)"}}, s.Fields())
}

func TestParse_MappedAboveTotalOmitsUnmapped(t *testing.T) {
	s := Parse("5 + 0 in total (QC-passed reads + QC-failed reads)\n7 + 0 mapped (140.00% : N/A)\n")

	require.Nil(t, s.Unmapped)
	require.Equal(t, []Field{
		{"Total reads", "5"},
		{"Mapped reads", "7 (140.00%)"},
	}, s.Fields())
}

func TestParse_AllMappedHasZeroUnmapped(t *testing.T) {
	s := Parse("5 + 0 in total (QC-passed reads + QC-failed reads)\n5 + 0 mapped (100.00% : N/A)\n")

	require.Equal(t, "0 (0.00%)", s.Unmapped.String())
}
