/*
 * Copyright (c) 2023-present unTill Pro, Ltd.
 */

package itriggers

import (
	"fmt"
	"strconv"
	"strings"
)

// Classify derives the trigger context from the raw platform flags.
//
// Pure function. Fails with ErrOperationFlagsConflict if the flags name zero
// or more than one operation. All kind×phase combinations are valid: the
// platform does invoke Before-Delete and Before-Undelete triggers even though
// they are rarely used
func Classify(flags OperationFlags) (ctx TriggerContext, err error) {
	kind := OperationKind_null
	ops := 0
	if flags.IsInsert {
		kind = OperationKind_Insert
		ops++
	}
	if flags.IsUpdate {
		kind = OperationKind_Update
		ops++
	}
	if flags.IsDelete {
		kind = OperationKind_Delete
		ops++
	}
	if flags.IsUndelete {
		kind = OperationKind_Undelete
		ops++
	}
	if ops != 1 {
		return ctx, fmt.Errorf("%d operation flags are set: %w", ops, ErrOperationFlagsConflict)
	}

	ctx.Kind = kind
	ctx.Phase = Phase_After
	if flags.IsBefore {
		ctx.Phase = Phase_Before
	}
	return ctx, nil
}

// Key returns the canonical identity of the spec. Two specs with the equal
// key describe the same coalesced read and are deduplicated within a dispatch.
//
// Values are length-prefixed: a value containing a delimiter character can
// not collide with a neighboring value pair
func (q QuerySpec) Key() string {
	sb := strings.Builder{}
	sb.WriteString(q.Schema)
	sb.WriteByte('|')
	sb.WriteString(q.Field)
	for _, value := range q.Values {
		sb.WriteByte('|')
		sb.WriteString(strconv.Itoa(len(value)))
		sb.WriteByte(':')
		sb.WriteString(value)
	}
	return sb.String()
}

func (k OperationKind) String() string {
	switch k {
	case OperationKind_Insert:
		return "Insert"
	case OperationKind_Update:
		return "Update"
	case OperationKind_Delete:
		return "Delete"
	case OperationKind_Undelete:
		return "Undelete"
	}
	return fmt.Sprintf("OperationKind(%d)", uint8(k))
}

func (p Phase) String() string {
	switch p {
	case Phase_Before:
		return "Before"
	case Phase_After:
		return "After"
	}
	return fmt.Sprintf("Phase(%d)", uint8(p))
}

func (m MutationKind) String() string {
	switch m {
	case MutationKind_Insert:
		return "Insert"
	case MutationKind_Update:
		return "Update"
	case MutationKind_Delete:
		return "Delete"
	}
	return fmt.Sprintf("MutationKind(%d)", uint8(m))
}

func (c TriggerContext) String() string {
	return c.Phase.String() + "-" + c.Kind.String()
}

// Match reports whether the context is in the list
func (c TriggerContext) Match(contexts []TriggerContext) bool {
	for _, ctx := range contexts {
		if ctx == c {
			return true
		}
	}
	return false
}

func (r InvocationResultKind) String() string {
	switch r {
	case InvocationResult_Committed:
		return "Committed"
	case InvocationResult_Rejected:
		return "Rejected"
	case InvocationResult_Fatal:
		return "Fatal"
	}
	return fmt.Sprintf("InvocationResultKind(%d)", uint8(r))
}
