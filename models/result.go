package models

type ResultStatus string

const (
	StatusCompleted ResultStatus = "completed"
	StatusFailed    ResultStatus = "failed"
)

// Result is the outcome of one task. Build it with Success or Failure so
// that exactly one of OutputPath and Err is set.
type Result struct {
	InputPath  string
	OutputPath string
	Err        error
}

func Success(inputPath, outputPath string) Result {
	return Result{InputPath: inputPath, OutputPath: outputPath}
}

func Failure(inputPath string, err error) Result {
	return Result{InputPath: inputPath, Err: err}
}

func (r Result) Failed() bool {
	return r.Err != nil
}

func (r Result) Status() ResultStatus {
	if r.Failed() {
		return StatusFailed
	}
	return StatusCompleted
}

type Summary struct {
	Total     int
	Succeeded int
	Failed    int
}

func (s *Summary) Add(r Result) {
	s.Total++
	if r.Failed() {
		s.Failed++
		return
	}
	s.Succeeded++
}

func (s Summary) OK() bool {
	return s.Failed == 0
}
