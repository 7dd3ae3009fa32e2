package syssched

// Task represents an entity of the execution.
type Task interface {
	// Run executes a single operational loop.
	Run() error
}

// FuncTask is a function type that implements the Task interface.
type FuncTask func() error

// Run calls the function.
func (f FuncTask) Run() error {
	return f()
}
