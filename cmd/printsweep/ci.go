package printsweep

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

func init() {
	ci := &cobra.Command{Use: "ci", Short: "CI template helpers for multiple providers"}
	rootCmd.AddCommand(ci)

	var provider string
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a CI pipeline template that fails on leftover print statements",
		RunE: func(cmd *cobra.Command, _ []string) error {
			var path string
			var content string
			switch provider {
			case "github":
				path = filepath.Join(".github", "workflows", "printsweep.yml")
				content = `name: printsweep
on: [push, pull_request]
jobs:
  check:
    runs-on: ubuntu-latest
    permissions:
      security-events: write
    steps:
      - uses: actions/checkout@v4
      - uses: actions/setup-go@v5
        with:
          go-version: '1.25'
      - run: go install github.com/printsweep/printsweep@latest
      - run: printsweep check --sarif --no-update-check > printsweep.sarif
      - uses: github/codeql-action/upload-sarif@v3
        if: always()
        with:
          sarif_file: printsweep.sarif
`
			case "gitlab":
				path = ".gitlab-ci.yml"
				content = `stages: [lint]
printsweep:
  stage: lint
  image: golang:1.25
  script:
    - go install github.com/printsweep/printsweep@latest
    - printsweep check --json --no-update-check | tee printsweep-report.json
  artifacts:
    when: always
    paths:
      - printsweep-report.json
`
			case "bitbucket":
				path = "bitbucket-pipelines.yml"
				content = `pipelines:
  default:
    - step:
        name: printsweep check
        image: golang:1.25
        caches:
          - go
        script:
          - go install github.com/printsweep/printsweep@latest
          - printsweep check --json --no-update-check | tee printsweep-report.json
        artifacts:
          - printsweep-report.json
`
			case "azure":
				path = "azure-pipelines.yml"
				content = `trigger:
- main

pool:
  vmImage: 'ubuntu-latest'

steps:
- task: GoTool@0
  inputs:
    version: '1.25.x'
- script: |
    go install github.com/printsweep/printsweep@latest
    $(go env GOPATH)/bin/printsweep check --json --no-update-check | tee printsweep-report.json
  displayName: 'printsweep check'
- publish: printsweep-report.json
  artifact: printsweep-report
  condition: succeededOrFailed()
`
			default:
				return fmt.Errorf("unknown --provider. Supported: github, gitlab, bitbucket, azure")
			}
			if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
				return err
			}
			if err := os.WriteFile(path, []byte(content), 0644); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Wrote", path)
			return nil
		},
	}
	initCmd.Flags().StringVar(&provider, "provider", "", "CI provider: github | gitlab | bitbucket | azure")
	if err := initCmd.MarkFlagRequired("provider"); err != nil {
		fmt.Fprintln(os.Stderr, "warning: could not mark --provider as required:", err)
	}
	ci.AddCommand(initCmd)
}
