package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// Reader
	ReadInfo               Code = 1000
	ReadUnexpectedChar     Code = 1001
	ReadUnterminatedString Code = 1002
	ReadBadNumber          Code = 1003
	ReadUnclosedParen      Code = 1004
	ReadUnexpectedParen    Code = 1005

	// Evaluation
	EvalInfo              Code = 3000
	EvalTypeMismatch      Code = 3001
	EvalArityMismatch     Code = 3002
	EvalNotProcedure      Code = 3003
	EvalArgsNotProduct    Code = 3004
	EvalBadAssignTarget   Code = 3005
	EvalUndefinedVariable Code = 3006
	EvalCannotDeduceType  Code = 3007
	EvalUnlowerable       Code = 3008
	EvalKeywordMismatch   Code = 3009
	EvalBadSpecialForm    Code = 3010
)

func (c Code) String() string {
	return fmt.Sprintf("E%04d", uint16(c))
}
