package service

import "fmt"

const (
	stageSearch   = "search"
	stageFilter   = "filter"
	stageSort     = "sort"
	stagePaginate = "paginate"
)

// StageError reports a pipeline stage that panicked
type StageError struct {
	Stage string
	Cause interface{}
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s: stage %s: %v", ErrPipeline, e.Stage, e.Cause)
}

func (e *StageError) Unwrap() error {
	return ErrPipeline
}

// runStage calls fn and converts a panic into a StageError
func runStage(stage string, fn func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &StageError{Stage: stage, Cause: r}
		}
	}()
	fn()
	return nil
}
