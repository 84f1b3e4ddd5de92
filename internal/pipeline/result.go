package pipeline

// Result is what a completed pipeline produced: the accumulated final
// stdout (known only when the pipeline has no sink stage, spec.md
// §4.5's rule 8), the resolved overall exit code, and every named
// capture binding collected along the way.
type Result struct {
	Stdout      string
	StdoutKnown bool
	ExitCode    int
	// Captures maps a capture binding's name to its raw captured text
	// (stderr captures, in Text) or exit code (exit_code captures, as an
	// int in Code) — internal/eval owns the mapping to Values, pipeline
	// stays value-package agnostic.
	Captures map[string]CaptureResult
}

// CaptureResult is one resolved capture: exactly one of Text/Code is
// meaningful, selected by Kind.
type CaptureResult struct {
	Kind CaptureKind
	Name string
	Text string
	Code int
}
