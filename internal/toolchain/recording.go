package toolchain

import "context"

// Invocation is one recorded Runner call.
type Invocation struct {
	Dir  string
	Name string
	Args []string
}

// RecordingRunner records invocations instead of executing them. Hook, if
// set, runs for each call and its error is returned.
type RecordingRunner struct {
	Calls []Invocation
	Hook  func(inv Invocation) error
}

// Run implements Runner.
func (r *RecordingRunner) Run(ctx context.Context, dir, name string, args ...string) error {
	inv := Invocation{Dir: dir, Name: name, Args: append([]string(nil), args...)}
	r.Calls = append(r.Calls, inv)
	if r.Hook != nil {
		return r.Hook(inv)
	}
	return nil
}
