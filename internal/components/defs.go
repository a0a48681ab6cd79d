package components

import (
	"github.com/thanhleviet/flowcraft/internal/engine"
	"github.com/thanhleviet/flowcraft/internal/registry"
)

// table maps template names to their configuration. Per-component data only;
// the wiring semantics are identical for every entry.
var table = map[string]Def{

	"reads_download": {
		Name:   "reads_download",
		Input:  "accessions",
		Output: "fastq",
		Params: map[string]registry.ParamSpec{
			"asperaKey": {
				Default: "null",
				Description: "Downloads fastq accessions using Aspera Connect " +
					"when a private key file is provided. (default: $params.asperaKey)",
			},
		},
		Directives: map[string]Directive{
			"reads_download": {CPUs: 1, Memory: "'1GB'", Container: "flowcraft/getseqena", Version: "0.4.0-2"},
		},
	},

	"integrity_coverage": {
		Name:      "integrity_coverage",
		Input:     "fastq",
		Output:    "fastq",
		LinkStart: []string{"MAIN_raw", "SIDE_phred", "SIDE_max_len"},
		ReportStems: []string{"REPORT_coverage"},
		Params: map[string]registry.ParamSpec{
			"genomeSize": {
				Default:     "1",
				Description: "Genome size estimate for the samples in Mb. (default: $params.genomeSize)",
			},
			"minCoverage": {
				Default: "15",
				Description: "Minimum coverage for a sample to proceed. Can be set to 0 " +
					"to allow any coverage. (default: $params.minCoverage)",
			},
		},
		Directives: map[string]Directive{
			"integrity_coverage": {CPUs: 1, Memory: "'1GB'"},
		},
	},

	"fastqc": {
		Name:   "fastqc",
		Input:  "fastq",
		Output: "fastq",
		Directives: map[string]Directive{
			"fastqc": {CPUs: 2, Memory: "'4GB'", Container: "flowcraft/fastqc", Version: "0.11.7-1"},
		},
	},

	"trimmomatic": {
		Name:    "trimmomatic",
		Input:   "fastq",
		Output:  "fastq",
		LinkEnd: []engine.LinkEnd{{Anchor: "SIDE_phred", Alias: "SIDE_phred"}},
		Params: map[string]registry.ParamSpec{
			"trimSlidingWindow": {
				Default:     "'5:20'",
				Description: "Perform sliding window trimming, cutting once the average quality within the window falls below a threshold. (default: $params.trimSlidingWindow)",
			},
			"trimMinLength": {
				Default:     "55",
				Description: "Drop the read if it is below a specified length. (default: $params.trimMinLength)",
			},
		},
		Directives: map[string]Directive{
			"trimmomatic": {CPUs: 2, Memory: "{ 4.GB * task.attempt }", Container: "flowcraft/trimmomatic", Version: "0.36-1"},
		},
	},

	"fastqc_trimmomatic": {
		Name:        "fastqc_trimmomatic",
		Input:       "fastq",
		Output:      "fastq",
		LinkEnd:     []engine.LinkEnd{{Anchor: "SIDE_phred", Alias: "SIDE_phred"}},
		StatusStems: []string{"STATUS_fastqc", "STATUS_trimmomatic"},
		Params: map[string]registry.ParamSpec{
			"adapters": {
				Default:     "'None'",
				Description: "Path to adapters file for read trimming. (default: $params.adapters)",
			},
		},
		Directives: map[string]Directive{
			"fastqc2":      {CPUs: 2, Memory: "'4GB'", Container: "flowcraft/fastqc", Version: "0.11.7-1"},
			"trimmomatic2": {CPUs: 2, Memory: "{ 4.GB * task.attempt }", Container: "flowcraft/trimmomatic", Version: "0.36-1"},
		},
	},

	"spades": {
		Name:      "spades",
		Input:     "fastq",
		Output:    "fasta",
		LinkStart: []string{"MAIN_assembly"},
		LinkEnd:   []engine.LinkEnd{{Anchor: "SIDE_max_len", Alias: "SIDE_max_len"}},
		Params: map[string]registry.ParamSpec{
			"spadesMinCoverage": {
				Default:     "2",
				Description: "The minimum number of reads to consider an edge in the de Bruijn graph during the assembly. (default: $params.spadesMinCoverage)",
			},
			"spadesKmers": {
				Default:     "'auto'",
				Description: "If 'auto' the SPAdes k-mer lengths will be determined from the maximum read length of each assembly. (default: $params.spadesKmers)",
			},
		},
		Directives: map[string]Directive{
			"spades": {CPUs: 4, Memory: "{ 5.GB * task.attempt }", Container: "flowcraft/spades", Version: "3.11.1-1"},
		},
	},

	"skesa": {
		Name:      "skesa",
		Input:     "fastq",
		Output:    "fasta",
		LinkStart: []string{"MAIN_assembly"},
		Directives: map[string]Directive{
			"skesa": {CPUs: 4, Memory: "{ 5.GB * task.attempt }", Container: "flowcraft/skesa", Version: "2.1-1"},
		},
	},

	"assembly_mapping": {
		Name:        "assembly_mapping",
		Input:       "fasta",
		Output:      "fasta",
		LinkEnd:     []engine.LinkEnd{{Anchor: "MAIN_raw", Alias: "SIDE_AssemblyMapping_raw"}},
		StatusStems: []string{"STATUS_am", "STATUS_amp"},
		Params: map[string]registry.ParamSpec{
			"minAssemblyCoverage": {
				Default: "'auto'",
				Description: "Minimum assembly coverage after the assembly mapping process. " +
					"If 'auto' the threshold is estimated from the sample coverage. (default: $params.minAssemblyCoverage)",
			},
		},
		Directives: map[string]Directive{
			"assembly_mapping":      {CPUs: 4, Memory: "{ 5.GB * task.attempt }", Container: "flowcraft/bowtie2_samtools", Version: "1.0.0-1"},
			"process_assembly_mapping": {CPUs: 1, Memory: "{ 5.GB * task.attempt }", Container: "flowcraft/bowtie2_samtools", Version: "1.0.0-1"},
		},
	},

	"pilon": {
		Name:        "pilon",
		Input:       "fasta",
		Output:      "fasta",
		LinkEnd:     []engine.LinkEnd{{Anchor: "MAIN_raw", Alias: "SIDE_BowtieIndex_raw"}},
		ReportStems: []string{"REPORT_assembly"},
		Directives: map[string]Directive{
			"pilon": {CPUs: 4, Memory: "{ 7.GB * task.attempt }", Container: "flowcraft/pilon", Version: "1.22.0-1"},
		},
	},

	"mlst": {
		Name:        "mlst",
		Input:       "fasta",
		Output:      "fasta",
		ReportStems: []string{"REPORT_mlst"},
		Params: map[string]registry.ParamSpec{
			"mlstSpecies": {
				Default:     "null",
				Description: "Expected species for MLST checking. (default: $params.mlstSpecies)",
			},
		},
		Directives: map[string]Directive{
			"mlst": {Container: "ummidock/mlst", Version: "latest"},
		},
	},

	"chewbbaca": {
		Name:       "chewbbaca",
		Input:      "fasta",
		Output:     "",
		IgnoreType: true,
		LinkStart:  nil,
		LinkEnd:    []engine.LinkEnd{{Anchor: "MAIN_assembly", Alias: "MAIN_assembly"}},
		Params: map[string]registry.ParamSpec{
			"schemaPath": {
				Default:     "null",
				Description: "The path to the chewbbaca schema directory. (default: $params.schemaPath)",
			},
			"chewbbacaQueue": {
				Default: "null",
				Description: "Specify a queue/partition for chewbbaca. Only used for grid " +
					"schedulers. (default: $params.chewbbacaQueue)",
			},
			"chewbbacaJson": {
				Default:     "false",
				Description: "If set to true, chewbbaca's allele call output is written as JSON. (default: $params.chewbbacaJson)",
			},
		},
		SecondaryInputs: []SecondaryInput{
			{
				Param: "schemaPath",
				Channel: `if ( !params.schemaPath ){ exit 1, "'schemaPath' parameter missing"}` + "\n" +
					`IN_schema = Channel.fromPath(params.schemaPath)`,
			},
		},
		Directives: map[string]Directive{
			"chewbbaca":            {CPUs: 4, Container: "mickaelsilva/chewbbaca_py3", Version: "latest"},
			"chewbbacaExtractMLST": {Container: "mickaelsilva/chewbbaca_py3", Version: "latest"},
		},
	},

	"abricate": {
		Name:        "abricate",
		Input:       "fasta",
		Output:      "",
		IgnoreType:  true,
		IgnorePID:   true,
		LinkStart:   nil,
		LinkEnd:     []engine.LinkEnd{{Anchor: "MAIN_assembly", Alias: "MAIN_assembly_abricate"}},
		ReportStems: []string{"REPORT_abricate"},
		Params: map[string]registry.ParamSpec{
			"abricateDatabases": {
				Default:     `["resfinder", "card", "vfdb", "plasmidfinder", "virulencefinder"]`,
				Description: "Specify the databases for abricate. (default: $params.abricateDatabases)",
			},
		},
		Directives: map[string]Directive{
			"abricate": {CPUs: 1, Memory: "'2GB'", Container: "ummidock/abricate", Version: "latest"},
		},
	},

	"prokka": {
		Name:       "prokka",
		Input:      "fasta",
		Output:     "",
		IgnoreType: true,
		IgnorePID:  true,
		LinkStart:  nil,
		LinkEnd:    []engine.LinkEnd{{Anchor: "MAIN_assembly", Alias: "MAIN_assembly_prokka"}},
		Directives: map[string]Directive{
			"prokka": {CPUs: 2, Container: "ummidock/prokka", Version: "1.12"},
		},
	},

	"seq_typing": {
		Name:        "seq_typing",
		Input:       "fastq",
		Output:      "",
		LinkStart:   nil,
		StatusStems: []string{},
		Params: map[string]registry.ParamSpec{
			"referenceFileO": {
				Default: "null",
				Description: "Fasta file containing reference sequences. If more than one " +
					"file is passed via the 'referenceFileH' parameter, a reference sequence " +
					"for each file will be determined. (default: $params.referenceFileO)",
			},
			"referenceFileH": {
				Default: "null",
				Description: "Fasta file containing reference sequences. If more than one " +
					"file is passed via the 'referenceFileO' parameter, a reference sequence " +
					"for each file will be determined. (default: $params.referenceFileH)",
			},
		},
		SecondaryInputs: []SecondaryInput{
			{
				Param: "referenceFileO",
				Channel: `IN_refO = Channel.fromPath(params.referenceFileO)` +
					`.map{ it -> it.exists() ? it : exit(1, "referenceFileO file was not found: '${params.referenceFileO}'")}`,
			},
			{
				Param: "referenceFileH",
				Channel: `IN_refH = Channel.fromPath(params.referenceFileH)` +
					`.map{ it -> it.exists() ? it : exit(1, "referenceFileH file was not found: '${params.referenceFileH}'")}`,
			},
		},
		Directives: map[string]Directive{
			"seq_typing": {CPUs: 4, Memory: "'4GB'", Container: "ummidock/seq_typing", Version: "0.1.0-1"},
		},
	},

	"patho_typing": {
		Name:        "patho_typing",
		Input:       "fastq",
		Output:      "",
		IgnoreType:  true,
		IgnorePID:   true,
		LinkStart:   nil,
		LinkEnd:     []engine.LinkEnd{{Anchor: "MAIN_raw", Alias: "SIDE_PathoType_raw"}},
		StatusStems: []string{},
		Params: map[string]registry.ParamSpec{
			"species": {
				Default: "null",
				Description: "Species name. Must be the complete species name with genus " +
					"and species, e.g.: 'Yersinia enterocolitica'. (default: $params.species)",
			},
		},
		SecondaryInputs: []SecondaryInput{
			{
				Param: "species",
				Channel: `if ( !params.species){ exit 1, "'species' parameter missing" }` + "\n" +
					`IN_pathoSpecies = Channel.value(params.species)`,
			},
		},
		Directives: map[string]Directive{
			"patho_typing": {CPUs: 4, Memory: "'4GB'", Container: "ummidock/patho_typing", Version: "0.3.0-1"},
		},
	},

	"patlas_mapping": {
		Name:        "patlas_mapping",
		Input:       "fastq",
		Output:      "json",
		StatusStems: []string{"STATUS_mappingBowtie", "STATUS_samtoolsView", "STATUS_jsonDumpingMapping"},
		ReportStems: []string{"REPORT_mapping"},
		Params: map[string]registry.ParamSpec{
			"max_k": {
				Default:     "10949",
				Description: "Sets the k parameter for bowtie2, allowing multiple mappings of the same read against several hits on the query sequence. (default: $params.max_k)",
			},
			"cov_cutoff": {
				Default:     "0.6",
				Description: "Cutoff for the percentage of the query reference sequence covered by reads in absolute length. (default: $params.cov_cutoff)",
			},
			"refIndex": {
				Default:     "'/ngstools/data/indexes/patlas_bowtie_index'",
				Description: "Specifies the reference indexes to be provided to bowtie2. (default: $params.refIndex)",
			},
		},
		SecondaryInputs: []SecondaryInput{
			{Param: "refIndex", Channel: "IN_index_files = Channel.value(params.refIndex)"},
		},
		Directives: map[string]Directive{
			"mappingBowtie":      {CPUs: 1, Memory: "{ 4.GB * task.attempt }", Container: "flowcraft/mapping-patlas", Version: "1.1.2-1"},
			"samtoolsView":       {CPUs: 1, Memory: "{ 4.GB * task.attempt }", Container: "flowcraft/mapping-patlas", Version: "1.1.2-1"},
			"jsonDumpingMapping": {CPUs: 1, Memory: "'4GB'", Container: "flowcraft/mapping-patlas", Version: "1.1.2-1"},
		},
	},
}
