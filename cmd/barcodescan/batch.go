package main

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// BatchJob describes a set of files to scan in one run, read from a YAML
// config file (e.g. `barcodescan -batch job.yaml`). Each file gets its own
// scan id so a caller can correlate output lines back to a specific scan
// across a long-running batch, the way a job queue would tag a unit of work.
type BatchJob struct {
	// TryHarder and Pure apply to every file in the batch unless a
	// per-file override is set.
	TryHarder bool `yaml:"try_harder"`
	Pure      bool `yaml:"pure"`

	Files []BatchFile `yaml:"files"`
}

// BatchFile is one scan target within a BatchJob.
type BatchFile struct {
	Path      string `yaml:"path"`
	TryHarder *bool  `yaml:"try_harder"`
	Pure      *bool  `yaml:"pure"`
}

// loadBatchJob reads and parses a BatchJob from a YAML file.
func loadBatchJob(path string) (*BatchJob, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read batch config: %w", err)
	}
	var job BatchJob
	if err := yaml.Unmarshal(data, &job); err != nil {
		return nil, fmt.Errorf("parse batch config: %w", err)
	}
	return &job, nil
}

// runBatch executes every file in the batch job at configPath, printing one
// line per decoded barcode prefixed with a fresh scan id, and returns the
// process exit code.
func runBatch(configPath string) int {
	job, err := loadBatchJob(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "batch: %v\n", err)
		return 1
	}
	if len(job.Files) == 0 {
		fmt.Fprintf(os.Stderr, "batch: no files listed in %s\n", configPath)
		return 1
	}

	exitCode := 0
	for _, bf := range job.Files {
		scanID := uuid.NewString()
		tryHarder := job.TryHarder
		if bf.TryHarder != nil {
			tryHarder = *bf.TryHarder
		}
		pure := job.Pure
		if bf.Pure != nil {
			pure = *bf.Pure
		}

		results, err := scanFile(bf.Path, tryHarder, pure)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s [%s]: error: %v\n", bf.Path, scanID, err)
			exitCode = 1
			continue
		}
		if len(results) == 0 {
			fmt.Fprintf(os.Stderr, "%s [%s]: no barcodes found\n", bf.Path, scanID)
			exitCode = 1
			continue
		}
		for _, r := range results {
			fmt.Printf("%s [%s] [%s] %s\n", bf.Path, scanID, r.Format, r.Text)
		}
	}
	return exitCode
}
