package container

// Args maps parameter names to values that bypass autowiring.
type Args map[string]any

// overrideStack holds one Args frame per in-flight Make or Call.
// Only the top frame is consulted.
type overrideStack struct {
	frames []Args
}

// push adds a frame and returns its release func. Pair as:
//
//	defer c.overrides.push(args)()
func (s *overrideStack) push(args Args) func() {
	s.frames = append(s.frames, args)
	depth := len(s.frames)
	return func() {
		s.frames = s.frames[:depth-1]
	}
}

// lookup finds name in the top frame.
func (s *overrideStack) lookup(name string) (any, bool) {
	if len(s.frames) == 0 {
		return nil, false
	}
	v, ok := s.frames[len(s.frames)-1][name]
	return v, ok
}

// top returns the top frame, or nil when the stack is empty.
func (s *overrideStack) top() Args {
	if len(s.frames) == 0 {
		return nil
	}
	return s.frames[len(s.frames)-1]
}

func (s *overrideStack) depth() int { return len(s.frames) }
