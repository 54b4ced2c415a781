package vectors

import (
	"math/big"

	"github.com/suffix-labs/btc-groundtruth/pkg/script"
)

// GenerateSuite builds the curated fixture suite: concatenation
// behavior including both size boundaries, arithmetic with negative
// numbers and sign-byte growth, and combined scripts exercising the
// push and verify paths.
func GenerateSuite() *Suite {
	return &Suite{
		Description: "Bitcoin Script ground-truth test vectors with OP_CAT enabled",
		GeneratedBy: "btc-groundtruth",
		Constants: Constants{
			MaxScriptElementSize: script.MaxScriptElementSize,
			MaxStackSize:         script.MaxStackSize,
		},
		Opcodes: map[string]string{
			"OP_PUSH":   "0x00 (followed by length byte and data)",
			"OP_VERIFY": "0x69",
			"OP_DROP":   "0x75",
			"OP_DUP":    "0x76",
			"OP_CAT":    "0x7e",
			"OP_EQUAL":  "0x87",
			"OP_ADD":    "0x93",
		},
		TestVectors: generateVectors(),
	}
}

func generateVectors() []Vector {
	var vs []Vector
	add := func(name, desc string, initialStack [][]byte, scr []byte) {
		vs = append(vs, Make(name, desc, initialStack, scr))
	}

	catScript := []byte{script.OpCat}

	// OP_CAT behavior.
	add("cat_hello_world", "Concatenate 'hello' and 'world'",
		[][]byte{[]byte("hello"), []byte("world")}, catScript)
	add("cat_empty_left", "Empty string + 'abc'",
		[][]byte{{}, []byte("abc")}, catScript)
	add("cat_empty_right", "'abc' + empty string",
		[][]byte{[]byte("abc"), {}}, catScript)
	add("cat_both_empty", "Two empty strings",
		[][]byte{{}, {}}, catScript)
	add("cat_binary_with_nulls", "Binary data with null bytes",
		[][]byte{{0x00, 0xff, 0x00}, {0xff, 0x00, 0xff}}, catScript)
	add("cat_single_bytes", "Concatenate single bytes",
		[][]byte{{0x01}, {0x02}}, catScript)
	add("cat_all_byte_values", "All 256 byte values preserved",
		[][]byte{byteRange(0, 128), byteRange(128, 256)}, catScript)

	// Size boundary: 260+260=520 succeeds, 261+261=522 fails.
	add("cat_max_size_520", "Maximum valid size 260+260=520",
		[][]byte{patternBytes(260, 0), patternBytes(260, 128)}, catScript)
	add("cat_exceeds_max_size", "Exceeds max: 261+261=522",
		[][]byte{patternBytes(261, 0), patternBytes(261, 0)}, catScript)

	// Underflow cases.
	add("cat_underflow_empty", "OP_CAT with empty stack",
		nil, catScript)
	add("cat_underflow_one", "OP_CAT with only one element",
		[][]byte{{0xde, 0xad, 0xbe, 0xef}}, catScript)

	// Composition.
	add("cat_chain_4_elements", "Chain: [a,b,c,d] with 3 CATs",
		[][]byte{[]byte("a"), []byte("b"), []byte("c"), []byte("d")},
		[]byte{script.OpCat, script.OpCat, script.OpCat})
	add("cat_with_dup", "DUP then CAT doubles string",
		[][]byte{[]byte("ABC")},
		[]byte{script.OpDup, script.OpCat})

	// OP_ADD behavior.
	addScript := []byte{script.OpAdd}
	add("add_2_plus_3", "2 + 3 = 5",
		numStack(2, 3), addScript)
	add("add_zero_left", "0 + 42 = 42",
		numStack(0, 42), addScript)
	add("add_negative", "-5 + 10 = 5",
		numStack(-5, 10), addScript)
	add("add_two_negatives", "-3 + -7 = -10",
		numStack(-3, -7), addScript)
	add("add_cancel_to_zero", "5 + -5 = 0",
		numStack(5, -5), addScript)
	add("add_127_plus_1", "127 + 1 = 128 (needs 2 bytes)",
		numStack(127, 1), addScript)
	add("add_256_plus_256", "256 + 256 = 512",
		numStack(256, 256), addScript)

	// Combined scripts.
	add("script_push_cat", "PUSH 'AB' PUSH 'CD' CAT",
		nil, []byte{
			script.OpPush, 2, 'A', 'B',
			script.OpPush, 2, 'C', 'D',
			script.OpCat,
		})
	add("cat_verify_truthy", "CAT produces truthy, VERIFY passes",
		[][]byte{{0x01}, {0x02}},
		[]byte{script.OpCat, script.OpVerify})
	add("cat_verify_falsy", "CAT of empties is falsy, VERIFY fails",
		[][]byte{{}, {}},
		[]byte{script.OpCat, script.OpVerify})

	return vs
}

// byteRange returns the bytes [lo, hi).
func byteRange(lo, hi int) []byte {
	out := make([]byte, 0, hi-lo)
	for i := lo; i < hi; i++ {
		out = append(out, byte(i))
	}
	return out
}

// patternBytes returns n bytes of a repeating pattern starting at
// offset, so truncation or reordering in CAT results is visible.
func patternBytes(n, offset int) []byte {
	out := make([]byte, n)
	for i := range out {
		out[i] = byte((i + offset) % 256)
	}
	return out
}

func numStack(values ...int64) [][]byte {
	out := make([][]byte, len(values))
	for i, v := range values {
		out[i] = script.EncodeNum(big.NewInt(v))
	}
	return out
}
