package sighash

// Witness program patterns recognized by ScriptCode. This is a policy
// table for the two version-0 programs, not a general script-type
// classifier: anything unrecognized falls through to the locking
// script itself.
const (
	witnessV0PubKeyHashLen = 22 // OP_0 OP_DATA_20 <20-byte key hash>
	witnessV0ScriptHashLen = 34 // OP_0 OP_DATA_32 <32-byte script hash>
)

// ScriptCode determines the script code actually hashed for an input,
// given the previous output's locking script and the input's witness
// stack.
//
// For P2WPKH (22-byte program) the code is the canonical
// pay-to-pubkey-hash template synthesized around the embedded key
// hash: OP_DUP OP_HASH160 <20 bytes> OP_EQUALVERIFY OP_CHECKSIG.
// For P2WSH (34-byte program) the code is the witness script, carried
// as the last witness element.
func ScriptCode(pkScript []byte, witness [][]byte) []byte {
	if len(pkScript) == witnessV0PubKeyHashLen &&
		pkScript[0] == 0x00 && pkScript[1] == 0x14 {

		keyHash := pkScript[2:22]
		code := make([]byte, 0, 25)
		code = append(code, 0x76, 0xa9, 0x14) // OP_DUP OP_HASH160 OP_DATA_20
		code = append(code, keyHash...)
		code = append(code, 0x88, 0xac) // OP_EQUALVERIFY OP_CHECKSIG
		return code
	}

	if len(pkScript) == witnessV0ScriptHashLen &&
		pkScript[0] == 0x00 && pkScript[1] == 0x20 {

		if len(witness) > 0 {
			return witness[len(witness)-1]
		}
	}

	return pkScript
}
