package script

import "fmt"

// stack is the single piece of mutable interpreter state: an ordered
// list of byte slices, bottom first. A fresh stack is created for
// every execution and discarded when it returns, so nothing leaks
// between calls.
type stack struct {
	items [][]byte
}

// newStack returns a stack seeded with a copy of the initial elements.
// The slice header is copied so pushes and pops never mutate the
// caller's view; the element bytes themselves are never modified by
// any opcode.
func newStack(initial [][]byte) *stack {
	items := make([][]byte, len(initial))
	copy(items, initial)
	return &stack{items: items}
}

// depth returns the number of elements on the stack.
func (s *stack) depth() int {
	return len(s.items)
}

// push appends an element without any limit checks. The interpreter
// performs the documented size and depth checks, in the documented
// order, before calling this.
func (s *stack) push(v []byte) {
	s.items = append(s.items, v)
}

// pop removes and returns the top element.
func (s *stack) pop(op string) ([]byte, error) {
	if len(s.items) == 0 {
		return nil, scriptError(ErrStackUnderflow,
			fmt.Sprintf("%s: stack underflow", op))
	}
	v := s.items[len(s.items)-1]
	s.items = s.items[:len(s.items)-1]
	return v, nil
}

// peek returns the top element without removing it.
func (s *stack) peek(op string) ([]byte, error) {
	if len(s.items) == 0 {
		return nil, scriptError(ErrStackUnderflow,
			fmt.Sprintf("%s: stack underflow", op))
	}
	return s.items[len(s.items)-1], nil
}
