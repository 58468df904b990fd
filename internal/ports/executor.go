package ports

// Executor runs completions on the host's chosen execution context.
type Executor interface {
	Execute(task func())
}

// InlineExecutor runs each task on the calling goroutine.
type InlineExecutor struct{}

func (InlineExecutor) Execute(task func()) {
	task()
}
