package pipeline

import (
	"path/filepath"
	"strconv"

	"github.com/sznuper/alignpipe/internal/config"
	"github.com/sznuper/alignpipe/internal/proc"
)

// Stage names, in execution order.
const (
	StageAlign     = "align"
	StageConvert   = "convert"
	StageSort      = "sort"
	StageIndex     = "index"
	StageSummarize = "summarize"
)

// Post-stage steps that can also fail a run.
const (
	StepExtract = "extract"
	StepQuality = "quality"
	StepReport  = "report"
)

// Stage is one external command of the fixed pipeline. Output is the
// artifact the stage produces and the next stage consumes.
type Stage struct {
	Name    string
	Command proc.Command
	Output  string
	Monitor bool
}

// Paths are the per-run artifacts, all scoped to the output directory.
type Paths struct {
	AlignedSAM  string
	UnsortedBAM string
	SortedBAM   string
	Index       string
	RawStats    string
}

// NewPaths derives the artifact locations from dir.
func NewPaths(dir string) Paths {
	sorted := filepath.Join(dir, "aligned_reads.bam")
	return Paths{
		AlignedSAM:  filepath.Join(dir, "temp_aligned.sam"),
		UnsortedBAM: filepath.Join(dir, "temp_unsorted.bam"),
		SortedBAM:   sorted,
		Index:       sorted + ".bai",
		RawStats:    filepath.Join(dir, "temp_raw_stats"),
	}
}

// Intermediates lists the artifacts removed when retention is off.
func (p Paths) Intermediates() []string {
	return []string{p.AlignedSAM, p.UnsortedBAM, p.RawStats}
}

// Stages builds the ordered stage list for one run.
func Stages(p config.Pipeline, tools config.Tools, paths Paths) []Stage {
	alignArgs := []string{"mem", "-t", strconv.Itoa(p.Threads), "-M", p.Reference, p.Read1}
	if p.Paired() {
		alignArgs = append(alignArgs, p.Read2)
	}

	return []Stage{
		{
			Name:    StageAlign,
			Command: proc.Command{Name: tools.Aligner, Args: alignArgs, Stdout: paths.AlignedSAM},
			Output:  paths.AlignedSAM,
			Monitor: true,
		},
		{
			Name:    StageConvert,
			Command: proc.Command{Name: tools.Samtools, Args: []string{"view", "-b", paths.AlignedSAM}, Stdout: paths.UnsortedBAM},
			Output:  paths.UnsortedBAM,
		},
		{
			Name:    StageSort,
			Command: proc.Command{Name: tools.Samtools, Args: []string{"sort", paths.UnsortedBAM, "-o", paths.SortedBAM}},
			Output:  paths.SortedBAM,
		},
		{
			Name:    StageIndex,
			Command: proc.Command{Name: tools.Samtools, Args: []string{"index", paths.SortedBAM}},
			Output:  paths.Index,
		},
		{
			Name:    StageSummarize,
			Command: proc.Command{Name: tools.Samtools, Args: []string{"flagstat", paths.SortedBAM}, Stdout: paths.RawStats},
			Output:  paths.RawStats,
		},
	}
}
