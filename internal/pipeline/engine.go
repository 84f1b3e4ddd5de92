package pipeline

import (
	"bytes"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
)

// Runner materializes and drives one pipeline. WorkDir resolves every
// relative file endpoint path (spec.md §6: "relative to the
// interpreter's working directory"). Stderr is where an uncaptured
// stage's stderr is forwarded (spec.md §6).
type Runner struct {
	WorkDir string
	Stderr  io.Writer
}

// Run executes stages in order: materialize source/sink endpoints,
// wire every adjacent command pair with a direct OS pipe, start every
// child before any byte transfers, drain every pipe the interpreter
// itself reads from concurrently, then wait and resolve exit statuses
// (spec.md §4.5, steps 1-8).
func (r *Runner) Run(stages []Stage) (*Result, error) {
	var source io.Reader
	var sourceFile *os.File
	cmdStart := 0

	switch s := stages[0].(type) {
	case FileOpenStage:
		f, err := os.Open(r.resolve(s.Path))
		if err != nil {
			return nil, &IOError{Path: s.Path, Err: err}
		}
		sourceFile = f
		source = f
		cmdStart = 1
	case StringSourceStage:
		source = strings.NewReader(s.Data)
		cmdStart = 1
	}
	if sourceFile != nil {
		defer sourceFile.Close()
	}

	var sinkFile *os.File
	cmdEnd := len(stages)
	last := stages[len(stages)-1]
	switch s := last.(type) {
	case FileWriteStage:
		f, err := os.OpenFile(r.resolve(s.Path), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
		if err != nil {
			return nil, &IOError{Path: s.Path, Err: err}
		}
		sinkFile = f
		cmdEnd = len(stages) - 1
	case FileAppendStage:
		f, err := os.OpenFile(r.resolve(s.Path), os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
		if err != nil {
			return nil, &IOError{Path: s.Path, Err: err}
		}
		sinkFile = f
		cmdEnd = len(stages) - 1
	}
	if sinkFile != nil {
		defer sinkFile.Close()
	}

	commandStages := stages[cmdStart:cmdEnd]
	result := &Result{Captures: make(map[string]CaptureResult)}

	if len(commandStages) == 0 {
		// A pipeline with no command stage at all (e.g. a bare `open`
		// piped straight into a sink): copy source to sink directly,
		// no process involved.
		return r.runWithoutCommands(source, sinkFile, result)
	}

	cmds := make([]*exec.Cmd, len(commandStages))
	for i, st := range commandStages {
		cs := st.(CommandStage)
		cmds[i] = exec.Command(cs.Argv[0], cs.Argv[1:]...)
		cmds[i].Dir = r.WorkDir
	}

	// Wire stdin: the materialized source feeds the first command;
	// every later command's stdin is the previous command's stdout
	// pipe, obtained before any process starts (spec.md §4.5 rule 3/5).
	if source != nil {
		cmds[0].Stdin = source
	}
	for i := 1; i < len(cmds); i++ {
		pr, err := cmds[i-1].StdoutPipe()
		if err != nil {
			return nil, &SpawnError{Argv: commandStages[i-1].(CommandStage).Argv, Err: err}
		}
		cmds[i].Stdin = pr
	}

	// Wire stdout: the last command writes to the sink file if one was
	// given, otherwise into the buffer the pipeline returns as its
	// value (the "implicit cap stdout" of spec.md §4.5 rule 4).
	var stdoutBuf bytes.Buffer
	if sinkFile != nil {
		cmds[len(cmds)-1].Stdout = sinkFile
	} else {
		cmds[len(cmds)-1].Stdout = &stdoutBuf
		result.StdoutKnown = true
	}

	var drainWG sync.WaitGroup
	captureReaders := make([]func() CaptureResult, 0)

	for i, st := range commandStages {
		cs := st.(CommandStage)
		cmd := cmds[i]
		for _, c := range cs.Captures {
			if c.Kind != CaptureStderr {
				continue
			}
			pr, err := cmd.StderrPipe()
			if err != nil {
				return nil, &SpawnError{Argv: cs.Argv, Err: err}
			}
			var buf bytes.Buffer
			name := c.Name
			drainWG.Add(1)
			go func() {
				defer drainWG.Done()
				io.Copy(&buf, pr)
			}()
			captureReaders = append(captureReaders, func() CaptureResult {
				return CaptureResult{Kind: CaptureStderr, Text: buf.String(), Name: name}
			})
			continue
		}
		if !hasStderrCapture(cs.Captures) {
			cmd.Stderr = r.Stderr
		}
	}

	// Start order: every child is started before any of them can block
	// on a downstream reader that hasn't been created yet (rule 5).
	for i, cmd := range cmds {
		if err := cmd.Start(); err != nil {
			for j := 0; j < i; j++ {
				cmds[j].Process.Kill()
			}
			return nil, &SpawnError{Argv: commandStages[i].(CommandStage).Argv, Err: err}
		}
	}

	exitCodes := make([]int, len(cmds))
	waitErrs := make([]error, len(cmds))
	for i, cmd := range cmds {
		waitErrs[i] = cmd.Wait()
		exitCodes[i] = exitCodeOf(waitErrs[i])
	}
	drainWG.Wait()
	for _, read := range captureReaders {
		cr := read()
		result.Captures[cr.Name] = cr
	}

	var firstFailure error
	for i, st := range commandStages {
		cs := st.(CommandStage)
		code := exitCodes[i]
		if idx := captureExitCodeIndex(cs.Captures); idx >= 0 {
			result.Captures[cs.Captures[idx].Name] = CaptureResult{Kind: CaptureExitCode, Code: code, Name: cs.Captures[idx].Name}
			continue
		}
		if code != 0 && firstFailure == nil {
			firstFailure = &NonZeroExitError{Argv: cs.Argv, Code: code}
		}
	}
	if firstFailure != nil {
		return nil, firstFailure
	}

	if result.StdoutKnown {
		result.Stdout = stdoutBuf.String()
	}
	result.ExitCode = exitCodes[len(exitCodes)-1]
	return result, nil
}

func (r *Runner) runWithoutCommands(source io.Reader, sinkFile *os.File, result *Result) (*Result, error) {
	if sinkFile != nil {
		if source != nil {
			if _, err := io.Copy(sinkFile, source); err != nil {
				return nil, &IOError{Err: err}
			}
		}
		return result, nil
	}
	result.StdoutKnown = true
	if source != nil {
		var buf bytes.Buffer
		if _, err := io.Copy(&buf, source); err != nil {
			return nil, &IOError{Err: err}
		}
		result.Stdout = buf.String()
	}
	return result, nil
}

func (r *Runner) resolve(path string) string {
	if filepath.IsAbs(path) || r.WorkDir == "" {
		return path
	}
	return filepath.Join(r.WorkDir, path)
}

func hasStderrCapture(captures []Capture) bool {
	for _, c := range captures {
		if c.Kind == CaptureStderr {
			return true
		}
	}
	return false
}

func captureExitCodeIndex(captures []Capture) int {
	for i, c := range captures {
		if c.Kind == CaptureExitCode {
			return i
		}
	}
	return -1
}

func exitCodeOf(err error) int {
	if err == nil {
		return 0
	}
	if exitErr, ok := err.(*exec.ExitError); ok {
		return exitErr.ExitCode()
	}
	return -1
}
