// Package core provides the analysis workflow shared by the web server and
// the command-line tool.
//
// It sits on top of the pure packages (table, vecmath, correlation, render)
// and adds the things a host needs around them: input size limits, bounded
// concurrency, request-scoped logging and user-facing error messages. It can
// be used by web handlers, CLI commands, or tests without modification.
//
// # Analysis
//
// [Service.Analyze] parses CSV text into a table, computes the pairwise
// Pearson correlation matrix and ranks column pairs by |r|:
//
//	svc := core.NewService(core.Options{TopPairs: 5}, limiter)
//	a, err := svc.Analyze(ctx, "age,weight\n25,60.5\n30,75.2\n")
//	// a.Columns == []string{"age", "weight"}
//	// a.Matrix  == correlation.Matrix{{1}}
//
// The result can be rendered with [Service.Report] or serialized directly;
// every exported field carries json and yaml tags.
//
// # Input
//
// [ReadInput] reads a request body or file up to a byte limit, dropping a
// leading UTF-8 byte order mark and replacing invalid UTF-8 sequences.
//
// # Error Handling
//
// Technical errors are mapped to user-friendly messages using [MapError].
// Each error category has a unique code for support reference:
//
//   - CSV001-CSV005: Input errors (columns, numbers, row width, size)
//   - VEC001-VEC002: Vector and plot errors
//   - COL001: Unknown column name
//   - ANL001: Too many concurrent analyses
//   - REQ001-REQ003: Request cancelled, timed out or malformed
package core
