// Package quality computes read-level quality figures for the report.
// Both scans are read-only.
package quality

// Metrics are the two quality figures of one run.
type Metrics struct {
	BaseQuality    float64
	MappingQuality float64
}

// Compute scans the reads files and the final sorted alignments. With two
// reads files the result is the unweighted mean of the per-file averages.
func Compute(read1, read2, sortedBAM string) (Metrics, error) {
	var m Metrics

	q1, err := AverageBaseQuality(read1)
	if err != nil {
		return m, err
	}
	m.BaseQuality = q1

	if read2 != "" {
		q2, err := AverageBaseQuality(read2)
		if err != nil {
			return m, err
		}
		m.BaseQuality = (q1 + q2) / 2
	}

	m.MappingQuality, err = AverageMappingQuality(sortedBAM)
	if err != nil {
		return m, err
	}
	return m, nil
}
