package script

import (
	"bytes"
	"fmt"
	"math/big"
)

// Execute runs a script against a fresh stack seeded with initialStack
// and returns the final stack on success. Stack order is bottom to
// top: initialStack[0] is the bottom element and the last element is
// the top.
//
// Execution is deterministic and total. Opcodes are dispatched on the
// leading byte, left to right; every path either advances the program
// counter, halts with a structured Error, or reaches the end of the
// script. The error's ErrorKind names the failing rule and is the tag
// conformance fixtures record.
//
// The returned stack aliases the input elements but never mutates
// them, and no state is shared between calls, so concurrent Execute
// calls on independent inputs need no coordination.
func Execute(scr []byte, initialStack [][]byte) ([][]byte, error) {
	stk := newStack(initialStack)

	pc := 0
	for pc < len(scr) {
		opcode := scr[pc]
		pc++

		// Direct pushes: the opcode byte is the number of raw data
		// bytes that follow.
		if opcode >= OpData1 && opcode <= OpData75 {
			n := int(opcode)
			if pc+n > len(scr) {
				return nil, scriptError(ErrTruncatedPush,
					fmt.Sprintf("push of %d bytes exceeds remaining script", n))
			}
			if stk.depth() >= MaxStackSize {
				return nil, scriptError(ErrStackOverflow,
					fmt.Sprintf("push would exceed max stack size %d", MaxStackSize))
			}
			stk.push(scr[pc : pc+n])
			pc += n
			continue
		}

		switch opcode {
		case OpPush:
			// Explicit length-prefixed push: one length byte, then
			// that many data bytes.
			if pc >= len(scr) {
				return nil, scriptError(ErrTruncatedPush,
					"OP_PUSH: missing length byte")
			}
			n := int(scr[pc])
			pc++
			if pc+n > len(scr) {
				return nil, scriptError(ErrTruncatedPush,
					fmt.Sprintf("OP_PUSH of %d bytes exceeds remaining script", n))
			}
			data := scr[pc : pc+n]
			if len(data) > MaxScriptElementSize {
				return nil, scriptError(ErrElementTooLarge,
					fmt.Sprintf("OP_PUSH element size %d exceeds max %d",
						len(data), MaxScriptElementSize))
			}
			if stk.depth() >= MaxStackSize {
				return nil, scriptError(ErrStackOverflow,
					fmt.Sprintf("OP_PUSH would exceed max stack size %d", MaxStackSize))
			}
			stk.push(data)
			pc += n

		case OpVerify:
			top, err := stk.pop("OP_VERIFY")
			if err != nil {
				return nil, err
			}
			if !IsTruthy(top) {
				return nil, scriptError(ErrVerifyFailed,
					"OP_VERIFY: top stack element is false")
			}

		case OpDrop:
			if _, err := stk.pop("OP_DROP"); err != nil {
				return nil, err
			}

		case OpDup:
			top, err := stk.peek("OP_DUP")
			if err != nil {
				return nil, err
			}
			if stk.depth() >= MaxStackSize {
				return nil, scriptError(ErrStackOverflow,
					fmt.Sprintf("OP_DUP would exceed max stack size %d", MaxStackSize))
			}
			stk.push(top)

		case OpCat:
			// Pop b then a; b was pushed most recently. The result is
			// a followed by b. The size limit is checked before the
			// depth limit, and the depth limit after both pops, so the
			// net depth change is -1.
			b, err := stk.pop("OP_CAT")
			if err != nil {
				return nil, err
			}
			a, err := stk.pop("OP_CAT")
			if err != nil {
				return nil, err
			}
			result := make([]byte, 0, len(a)+len(b))
			result = append(result, a...)
			result = append(result, b...)
			if len(result) > MaxScriptElementSize {
				return nil, scriptError(ErrElementTooLarge,
					fmt.Sprintf("OP_CAT result size %d exceeds max %d",
						len(result), MaxScriptElementSize))
			}
			if stk.depth() >= MaxStackSize {
				return nil, scriptError(ErrStackOverflow,
					fmt.Sprintf("OP_CAT would exceed max stack size %d", MaxStackSize))
			}
			stk.push(result)

		case OpEqual:
			// Byte-for-byte equality. Elements of different lengths
			// are never equal even when numerically equivalent.
			b, err := stk.pop("OP_EQUAL")
			if err != nil {
				return nil, err
			}
			a, err := stk.pop("OP_EQUAL")
			if err != nil {
				return nil, err
			}
			if bytes.Equal(a, b) {
				stk.push(EncodeNum(big.NewInt(1)))
			} else {
				stk.push(EncodeNum(big.NewInt(0)))
			}

		case OpAdd:
			b, err := stk.pop("OP_ADD")
			if err != nil {
				return nil, err
			}
			a, err := stk.pop("OP_ADD")
			if err != nil {
				return nil, err
			}
			sum := new(big.Int).Add(DecodeNum(a), DecodeNum(b))
			result := EncodeNum(sum)
			if len(result) > MaxScriptElementSize {
				return nil, scriptError(ErrElementTooLarge,
					fmt.Sprintf("OP_ADD result size %d exceeds max %d",
						len(result), MaxScriptElementSize))
			}
			stk.push(result)

		default:
			return nil, scriptError(ErrUnknownOpcode,
				fmt.Sprintf("unknown opcode 0x%02x", opcode))
		}
	}

	return stk.items, nil
}
