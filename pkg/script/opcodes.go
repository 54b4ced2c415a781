// Package script implements a minimal Bitcoin Script interpreter with
// OP_CAT re-enabled.
//
// OP_CAT was disabled in Bitcoin in 2010 but its behavior is well
// defined: pop the top element b and the next element a, push a||b,
// and fail if the result exceeds the 520-byte element limit. This
// package executes the opcode subset needed to produce ground-truth
// expected outputs for external verifiers, so the semantics here must
// be reproduced bit-for-bit by any reimplementation.
//
// References:
//   - https://en.bitcoin.it/wiki/Script
//   - Bitcoin Core interpreter.cpp (MAX_SCRIPT_ELEMENT_SIZE, MAX_STACK_SIZE)
package script

// Script resource limits. These are the standard Bitcoin interpreter
// limits and are enforced at every push site, not just at script entry.
const (
	// MaxScriptElementSize is the maximum byte length of a single
	// stack element.
	MaxScriptElementSize = 520

	// MaxStackSize is the maximum number of elements on the stack.
	MaxStackSize = 1000
)

// Supported opcodes. Byte values 0x01 through 0x4b are direct pushes
// of that many raw bytes and have no named constant.
//
// OpPush deliberately repurposes Bitcoin's OP_0 byte as an explicit
// length-prefixed push: the opcode is followed by a one-byte length
// and then that many data bytes.
const (
	OpPush   = 0x00
	OpData1  = 0x01
	OpData75 = 0x4b
	OpVerify = 0x69
	OpDrop   = 0x75
	OpDup    = 0x76
	OpCat    = 0x7e
	OpEqual  = 0x87
	OpAdd    = 0x93
)
