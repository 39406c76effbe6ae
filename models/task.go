package models

// DefaultJPEGQuality is used when no quality is configured.
const DefaultJPEGQuality = 75

// Options is the immutable configuration shared by every task of a run.
type Options struct {
	OutputDir    string
	TargetWidth  int
	TargetHeight int
	JPEGQuality  int
}

type Task struct {
	TraceID   string
	InputPath string
	Options   Options
}
