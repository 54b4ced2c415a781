package sighash

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScriptCodeP2WPKH(t *testing.T) {
	// The BIP143 example: key hash 1d0f...71a1 expands to the P2PKH
	// template.
	pkScript := hexDecode(t, "00141d0f172a0ecb48aee1be1f2687d2963ae33f71a1")
	want := hexDecode(t, "76a9141d0f172a0ecb48aee1be1f2687d2963ae33f71a188ac")

	assert.Equal(t, want, ScriptCode(pkScript, nil))
	// Witness content is irrelevant for P2WPKH.
	assert.Equal(t, want, ScriptCode(pkScript, [][]byte{{0x01}, {0x02}}))
}

func TestScriptCodeP2WSH(t *testing.T) {
	pkScript := append([]byte{0x00, 0x20}, make([]byte, 32)...)
	witnessScript := []byte{0x7e, 0x87}
	witness := [][]byte{[]byte("data"), witnessScript}

	assert.Equal(t, witnessScript, ScriptCode(pkScript, witness))

	// Without a witness there is no script to extract; the locking
	// script passes through.
	assert.Equal(t, pkScript, ScriptCode(pkScript, nil))
}

func TestScriptCodeFallthrough(t *testing.T) {
	tests := []struct {
		name     string
		pkScript string
	}{
		{"p2pkh", "76a9148280b37df378db99f66f85c95a783a76ac7a6d5988ac"},
		{"p2sh", "a914aabbccddeeff00112233445566778899aabbccdd87"},
		{"op_return", "6a0474657374"},
		{"wrong length witness v0", "0015000000000000000000000000000000000000000000"},
		{"empty", ""},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			pkScript := hexDecode(t, test.pkScript)
			assert.Equal(t, pkScript, ScriptCode(pkScript, [][]byte{{0x01}}))
		})
	}
}
