package rpn

import (
	"errors"
	"fmt"
	"strconv"
)

// Kind discriminates Command variants.
type Kind uint8

// Command kinds; the arithmetic kinds follow Op order.
const (
	KindInsert Kind = iota
	KindAdd
	KindSub
	KindMul
	KindDiv
	KindTerminate
)

var kindNames = [...]string{"insert", "add", "sub", "mul", "div", "terminate"}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// ErrTerminate is returned by executing a terminate command; the executor is
// expected to end the whole process successfully.
var ErrTerminate = errors.New("terminate requested")

// Command is one queued operation against a Stack. Value is only meaningful
// for KindInsert.
type Command struct {
	Kind  Kind
	Value int64
}

// Insert returns a command that pushes v.
func Insert(v int64) Command { return Command{Kind: KindInsert, Value: v} }

// Arith returns the command for a binary operator.
func Arith(op Op) Command { return Command{Kind: KindAdd + Kind(op)} }

// Terminate returns a command that requests process exit.
func Terminate() Command { return Command{Kind: KindTerminate} }

func (cmd Command) String() string {
	if cmd.Kind == KindInsert {
		return "insert " + strconv.FormatInt(cmd.Value, 10)
	}
	return cmd.Kind.String()
}

// Execute runs the command against stack.
//
// Arithmetic with fewer than two operands silently does nothing, although a
// lone right operand has already been consumed. Division by zero is not
// checked: it panics with the runtime's integer divide error, faulting the
// calling goroutine. Overflow wraps instead, including math.MinInt64 / -1,
// which yields math.MinInt64.
func (cmd Command) Execute(stack *Stack) error {
	switch cmd.Kind {
	case KindInsert:
		stack.Push(cmd.Value)
		return nil

	case KindAdd, KindSub, KindMul, KindDiv:
		left, right, ok := stack.operands()
		if !ok {
			return nil
		}
		switch cmd.Kind {
		case KindAdd:
			stack.Push(left + right)
		case KindSub:
			stack.Push(left - right)
		case KindMul:
			stack.Push(left * right)
		case KindDiv:
			stack.Push(left / right)
		}
		return nil

	case KindTerminate:
		return ErrTerminate
	}
	return fmt.Errorf("invalid command kind %v", cmd.Kind)
}

// Stack is a LIFO of committed integer values; the top is the last element.
type Stack []int64

// Len returns the number of values on the stack.
func (s Stack) Len() int { return len(s) }

// Push adds v to the top.
func (s *Stack) Push(v int64) { *s = append(*s, v) }

// Pop removes and returns the top value, or false if the stack is empty.
func (s *Stack) Pop() (int64, bool) {
	i := len(*s) - 1
	if i < 0 {
		return 0, false
	}
	v := (*s)[i]
	*s = (*s)[:i]
	return v, true
}

func (s *Stack) operands() (left, right int64, ok bool) {
	if right, ok = s.Pop(); !ok {
		return 0, 0, false
	}
	if left, ok = s.Pop(); !ok {
		return 0, 0, false
	}
	return left, right, true
}
