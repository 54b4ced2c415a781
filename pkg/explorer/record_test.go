package explorer

import (
	"encoding/hex"
	"testing"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suffix-labs/btc-groundtruth/pkg/sighash"
)

func mustHex(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	require.NoError(t, err)
	return b
}

// p2wpkhSpendTx builds a single-input transaction spending a P2WPKH
// output, with the given witness stack.
func p2wpkhSpendTx(t *testing.T, witness [][]byte) *sighash.Transaction {
	t.Helper()
	prevHash, err := chainhash.NewHashFromStr(
		"9f96ade4b41d5433f4eda31e1738ec2b36f6e7d1420d94a6af99801a88f7f7ff")
	require.NoError(t, err)

	return &sighash.Transaction{
		Version: 2,
		Inputs: []sighash.TxIn{
			{
				PrevOut:  sighash.OutPoint{Hash: *prevHash, Index: 0},
				Sequence: 0xffffffff,
				Witness:  witness,
			},
		},
		Outputs: []sighash.TxOut{
			{
				Value:    90000,
				PkScript: mustHex(t, "76a9148280b37df378db99f66f85c95a783a76ac7a6d5988ac"),
			},
		},
		LockTime: 0,
	}
}

func TestBuildRecordP2WPKH(t *testing.T) {
	witness := [][]byte{
		mustHex(t, "3044022000000000000000000000000000000000000000000000000000000000000000010220000000000000000000000000000000000000000000000000000000000000000201"),
		mustHex(t, "025476c2e83188368da1ff3e292e7acafcdb3566bb0ad253f62fc70f07aeee6357"),
	}
	tx := p2wpkhSpendTx(t, witness)
	prevScript := mustHex(t, "00141d0f172a0ecb48aee1be1f2687d2963ae33f71a1")

	record, err := BuildRecord(tx, "feedface", 0, 100000, prevScript)
	require.NoError(t, err)

	assert.Equal(t, "feedface", record.TxID)
	assert.Equal(t, 0, record.InputIndex)
	assert.Equal(t, "9f96ade4b41d5433f4eda31e1738ec2b36f6e7d1420d94a6af99801a88f7f7ff",
		record.PrevTxID)
	assert.EqualValues(t, 0, record.PrevVout)
	assert.EqualValues(t, 100000, record.PrevValueSats)
	assert.Equal(t, hex.EncodeToString(prevScript), record.PrevScriptPubKey)

	// P2WPKH script code is the synthesized P2PKH template around the
	// witness program's key hash.
	assert.Equal(t, "76a9141d0f172a0ecb48aee1be1f2687d2963ae33f71a188ac",
		record.ScriptCode)

	// The preimage embeds the script code with its compact-size prefix,
	// and the digest is its double SHA-256.
	preimage := mustHex(t, record.SighashPreimage)
	assert.Contains(t, record.SighashPreimage, "19"+record.ScriptCode)
	digest := chainhash.DoubleHashH(preimage)
	assert.Equal(t, hex.EncodeToString(digest[:]), record.Sighash)

	// Two witness elements: the last is treated as script input, the
	// rest seed the initial stack.
	require.Len(t, record.WitnessStack, 2)
	assert.Equal(t, record.WitnessStack[:1], record.Verification.InitialStack)
	assert.Equal(t, record.ScriptCode, record.Verification.Script)
}

func TestBuildRecordSingleWitnessElement(t *testing.T) {
	witness := [][]byte{mustHex(t, "deadbeef")}
	tx := p2wpkhSpendTx(t, witness)
	prevScript := mustHex(t, "00141d0f172a0ecb48aee1be1f2687d2963ae33f71a1")

	record, err := BuildRecord(tx, "feedface", 0, 100000, prevScript)
	require.NoError(t, err)

	// A single-element witness passes through to the stack unchanged.
	assert.Equal(t, record.WitnessStack, record.Verification.InitialStack)
}

func TestBuildRecordP2WSH(t *testing.T) {
	witnessScript := mustHex(t, "7e87") // CAT EQUAL
	witness := [][]byte{
		[]byte("HelloWorld"),
		[]byte("Hello"),
		[]byte("World"),
		witnessScript,
	}
	tx := p2wpkhSpendTx(t, witness)

	scriptHash := mustHex(t,
		"1111111111111111111111111111111111111111111111111111111111111111")
	prevScript := append([]byte{0x00, 0x20}, scriptHash...)

	record, err := BuildRecord(tx, "feedface", 0, 50000, prevScript)
	require.NoError(t, err)

	// P2WSH script code is the witness script itself, and the initial
	// stack is everything below it.
	assert.Equal(t, "7e87", record.ScriptCode)
	require.Len(t, record.Verification.InitialStack, 3)
	assert.Equal(t, hex.EncodeToString([]byte("HelloWorld")),
		record.Verification.InitialStack[0])
}

func TestBuildRecordIndexOutOfRange(t *testing.T) {
	tx := p2wpkhSpendTx(t, nil)

	_, err := BuildRecord(tx, "feedface", 1, 0, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "out of range")

	_, err = BuildRecord(tx, "feedface", -1, 0, nil)
	require.Error(t, err)
}

func TestDemo(t *testing.T) {
	demo, err := Demo()
	require.NoError(t, err)

	assert.Equal(t, "cat_equality_check", demo.Name)
	assert.Equal(t, "7e87", demo.Script)
	require.Len(t, demo.InitialStack, 3)
	assert.Equal(t, hex.EncodeToString([]byte("HelloWorld")), demo.InitialStack[0])

	// CAT joins Hello and World, EQUAL matches the expectation, so the
	// final stack is a lone truthy element.
	assert.Equal(t, []string{"01"}, demo.ExpectedFinalStack)
}
