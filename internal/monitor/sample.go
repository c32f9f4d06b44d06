package monitor

// Sample is one poll of a running child. CPU is percent of one core, so a
// process busy on N threads may read up to N×100.
type Sample struct {
	CPU      float64
	MemoryMB float64
}

// SampleSet is the chronological list of samples for one monitored stage.
type SampleSet []Sample

// Stats is the min/max/avg reduction of one metric.
type Stats struct {
	Min float64
	Max float64
	Avg float64
}

// Summary is the immutable reduction handed back once the child exits.
// A zero Summary means no sample was taken.
type Summary struct {
	CPU     Stats
	Memory  Stats
	Samples int
}

// Summarize reduces the set. An empty set yields all zeros.
func (s SampleSet) Summarize() Summary {
	if len(s) == 0 {
		return Summary{}
	}

	cpu := Stats{Min: s[0].CPU, Max: s[0].CPU}
	mem := Stats{Min: s[0].MemoryMB, Max: s[0].MemoryMB}
	var cpuSum, memSum float64
	for _, sm := range s {
		cpu.Min = min(cpu.Min, sm.CPU)
		cpu.Max = max(cpu.Max, sm.CPU)
		mem.Min = min(mem.Min, sm.MemoryMB)
		mem.Max = max(mem.Max, sm.MemoryMB)
		cpuSum += sm.CPU
		memSum += sm.MemoryMB
	}
	cpu.Avg = cpuSum / float64(len(s))
	mem.Avg = memSum / float64(len(s))

	return Summary{CPU: cpu, Memory: mem, Samples: len(s)}
}
