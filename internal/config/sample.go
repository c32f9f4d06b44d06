package config

// Sample is the starter config written by "alignpipe init".
const Sample = `# alignpipe configuration. Every key is optional; flags given to
# "alignpipe run" override the values here. ${VAR} is expanded from the
# environment.

pipeline:
  # read1: /data/sample_R1.fastq.gz
  # read2: /data/sample_R2.fastq.gz
  # reference: /refs/hg38/hg38.fa.gz
  output_dir: results
  threads: 4
  report: report.txt
  keep_intermediates: false

tools:
  aligner: bwa
  samtools: samtools

budget:
  memory_limit_gb: 16

sampling:
  interval: 1s

# notify:
#   - "telegram://${TELEGRAM_TOKEN}@telegram?chats=${TELEGRAM_CHAT}"
#   - url: "generic://hooks.example.com/alignpipe"
#     template: "{{run.status | upper}} {{run.id}}"
`
