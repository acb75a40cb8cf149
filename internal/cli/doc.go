// Package cli provides output formatting and terminal views for the pcc
// command-line tool.
//
// Results can be written as YAML (the default), JSON, or a styled table:
//
//	err := cli.Output(cli.AnalysisResult{Analysis: a}, cli.OutputOptions{
//		Format: cli.FormatTable,
//		Writer: os.Stdout,
//	})
//
// Values that implement Viewer render themselves for FormatTable; anything
// else falls back to YAML.
package cli
