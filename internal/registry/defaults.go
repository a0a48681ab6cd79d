package registry

// Default returns the registry with the built-in raw input types. The
// vocabulary is closed: components may only declare these as their input
// type when they start a pipeline.
func Default() *Registry {
	return New(
		Descriptor{
			Name:    "fastq",
			Param:   "fastq",
			Default: "'fastq/*_{1,2}.*'",
			Description: "Path expression to paired-end fastq files." +
				" (default: $params.fastq)",
			ChannelName: "IN_fastq_raw",
			ChannelExpr: `Channel.fromFilePairs(params.%[1]s)` +
				`.ifEmpty { exit 1, "No fastq files provided with pattern:` +
				`'${params.%[1]s}'" }`,
			ChecksExpr: `if (params.%[1]s instanceof Boolean){` +
				`exit 1, "'%[1]s' must be a path pattern. Provide value:` +
				`'$params.%[1]s'"}` + "\n" +
				`if (!params.%[1]s){ exit 1, "'%[1]s' parameter missing"}`,
		},
		Descriptor{
			Name:        "fasta",
			Param:       "fasta",
			Default:     "'fasta/*.fasta'",
			Description: "Path to fasta files. (default: $params.fasta)",
			ChannelName: "IN_fasta_raw",
			ChannelExpr: `Channel.fromPath(params.%[1]s).` +
				`map{ it -> file(it).exists() ? [it.toString()` +
				`.tokenize('/').last()` +
				`.tokenize('.').first(), it] : null }` +
				`.ifEmpty { exit 1, "No fasta files provided with pattern:` +
				`'${params.%[1]s}'" }`,
			ChecksExpr: `if (params.%[1]s instanceof Boolean){` +
				`exit 1, "'%[1]s' must be a path pattern. Provide value:` +
				`'$params.%[1]s'"}` + "\n" +
				`if (!params.%[1]s){ exit 1, "'%[1]s' parameter missing"}`,
		},
		Descriptor{
			Name:    "accessions",
			Param:   "accessions",
			Default: "null",
			Description: "Path to file with accessions, one per line." +
				" (default: $params.accessions)",
			ChannelName: "IN_accessions_raw",
			ChannelExpr: `Channel.fromPath(params.%[1]s)` +
				`.ifEmpty { exit 1, "No accessions file provided with path:` +
				`'${params.%[1]s}'" }`,
			ChecksExpr: `if (!params.%[1]s){ exit 1, "'%[1]s' parameter ` +
				`missing" }` + "\n",
		},
	)
}
