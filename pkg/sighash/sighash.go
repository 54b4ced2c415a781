// Package sighash implements the BIP143 signature hash algorithm for
// segregated witness inputs.
//
// The package builds the exact preimage byte sequence a signature
// commits to and its double-SHA256 digest. Both are exposed because
// consumers cross-checking another implementation need the undigested
// preimage for debugging.
//
// This implementation corresponds to:
//   - BIP143: https://github.com/bitcoin/bips/blob/master/bip-0143.mediawiki
//   - Bitcoin Core src/script/interpreter.cpp (SignatureHash, segwit path)
//
// The engine is pure: it never resolves previous outputs itself. The
// script code and the value being spent require chain context, so the
// caller supplies them (see the explorer package for the fetch side).
package sighash

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

// SigHashAll is the default signature hash type. It commits to all
// inputs and all outputs of the transaction.
const SigHashAll uint32 = 1

// OutPoint identifies a previous transaction output. The hash is held
// in internal byte order; chainhash reverses it for display, so the
// two conventions are never confused.
type OutPoint struct {
	Hash  chainhash.Hash
	Index uint32
}

// TxIn is a transaction input. SignatureScript is carried for
// completeness but plays no part in the segwit sighash; the unlocking
// data of a segwit input lives in Witness.
type TxIn struct {
	PrevOut         OutPoint
	SignatureScript []byte
	Sequence        uint32
	Witness         [][]byte
}

// TxOut is a transaction output: a value in satoshis and a locking
// script.
type TxOut struct {
	Value    uint64
	PkScript []byte
}

// Transaction holds the structural fields the sighash algorithm
// commits to. Input and output order is significant: it feeds the
// aggregate hashes. The struct is read-only input to the digest
// computation and is never mutated.
type Transaction struct {
	Version  uint32
	Inputs   []TxIn
	Outputs  []TxOut
	LockTime uint32
}

// IndexError is returned when the requested input index does not
// exist. It is the only failure mode of the engine: the computation
// is otherwise pure and total.
type IndexError struct {
	InputIndex int
	NumInputs  int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("input index %d out of range (tx has %d inputs)",
		e.InputIndex, e.NumInputs)
}

// BuildPreimage serializes the transaction for BIP143 sighash
// computation. The result is the byte sequence that is double-SHA256'd
// to produce the digest ComputeSighash returns.
//
// The field order is fixed by BIP143 (all integers little endian):
//
//	nVersion | hashPrevouts | hashSequence | outpoint | scriptCode |
//	value | nSequence | hashOutputs | nLockTime | sighash type
//
// where hashPrevouts, hashSequence and hashOutputs are double-SHA256
// aggregates over ALL inputs' outpoints, ALL inputs' sequence numbers
// and ALL outputs respectively. Changing any output or any other
// input's outpoint or sequence therefore changes the digest for every
// input.
func BuildPreimage(tx *Transaction, inputIndex int, scriptCode []byte,
	value uint64, hashType uint32) ([]byte, error) {

	if inputIndex < 0 || inputIndex >= len(tx.Inputs) {
		return nil, &IndexError{InputIndex: inputIndex, NumInputs: len(tx.Inputs)}
	}

	buf := new(bytes.Buffer)

	// 1. nVersion
	binary.Write(buf, binary.LittleEndian, tx.Version)

	// 2. hashPrevouts: double-SHA256 over all input outpoints.
	buf.Write(calcHashPrevouts(tx.Inputs))

	// 3. hashSequence: double-SHA256 over all input sequence numbers.
	buf.Write(calcHashSequence(tx.Inputs))

	// 4. The outpoint of this input.
	in := &tx.Inputs[inputIndex]
	buf.Write(in.PrevOut.Hash[:])
	binary.Write(buf, binary.LittleEndian, in.PrevOut.Index)

	// 5. Script code with compact size length prefix.
	writeCompactSize(buf, uint64(len(scriptCode)))
	buf.Write(scriptCode)

	// 6. Value of the output being spent.
	binary.Write(buf, binary.LittleEndian, value)

	// 7. Sequence number of this input.
	binary.Write(buf, binary.LittleEndian, in.Sequence)

	// 8. hashOutputs: double-SHA256 over all outputs.
	buf.Write(calcHashOutputs(tx.Outputs))

	// 9. nLockTime
	binary.Write(buf, binary.LittleEndian, tx.LockTime)

	// 10. Sighash type
	binary.Write(buf, binary.LittleEndian, hashType)

	return buf.Bytes(), nil
}

// ComputeSighash computes the BIP143 signature hash for a segwit
// input: the double-SHA256 of the preimage BuildPreimage returns.
func ComputeSighash(tx *Transaction, inputIndex int, scriptCode []byte,
	value uint64, hashType uint32) ([32]byte, error) {

	preimage, err := BuildPreimage(tx, inputIndex, scriptCode, value, hashType)
	if err != nil {
		return [32]byte{}, err
	}
	return [32]byte(chainhash.DoubleHashH(preimage)), nil
}

func calcHashPrevouts(inputs []TxIn) []byte {
	buf := new(bytes.Buffer)
	for i := range inputs {
		buf.Write(inputs[i].PrevOut.Hash[:])
		binary.Write(buf, binary.LittleEndian, inputs[i].PrevOut.Index)
	}
	return chainhash.DoubleHashB(buf.Bytes())
}

func calcHashSequence(inputs []TxIn) []byte {
	buf := new(bytes.Buffer)
	for i := range inputs {
		binary.Write(buf, binary.LittleEndian, inputs[i].Sequence)
	}
	return chainhash.DoubleHashB(buf.Bytes())
}

func calcHashOutputs(outputs []TxOut) []byte {
	buf := new(bytes.Buffer)
	for i := range outputs {
		binary.Write(buf, binary.LittleEndian, outputs[i].Value)
		writeCompactSize(buf, uint64(len(outputs[i].PkScript)))
		buf.Write(outputs[i].PkScript)
	}
	return chainhash.DoubleHashB(buf.Bytes())
}

// writeCompactSize writes a Bitcoin-style variable-length integer:
// one byte below 0xfd, otherwise a marker byte (0xfd/0xfe/0xff)
// followed by a 2, 4 or 8 byte little endian value.
func writeCompactSize(w io.Writer, n uint64) {
	switch {
	case n < 0xfd:
		w.Write([]byte{byte(n)})
	case n <= 0xffff:
		w.Write([]byte{0xfd})
		binary.Write(w, binary.LittleEndian, uint16(n))
	case n <= 0xffffffff:
		w.Write([]byte{0xfe})
		binary.Write(w, binary.LittleEndian, uint32(n))
	default:
		w.Write([]byte{0xff})
		binary.Write(w, binary.LittleEndian, n)
	}
}
