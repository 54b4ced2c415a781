package explorer

import (
	"encoding/hex"
	"fmt"

	"github.com/suffix-labs/btc-groundtruth/pkg/script"
	"github.com/suffix-labs/btc-groundtruth/pkg/sighash"
)

// Record is the verification bundle produced for one input of a real
// transaction: everything an external verifier needs to recompute the
// sighash and replay the script, plus the expected outputs. All byte
// sequences are hex encoded at this boundary; txids are display order.
type Record struct {
	TxID             string       `json:"txid"`
	InputIndex       int          `json:"input_index"`
	PrevTxID         string       `json:"prev_txid"`
	PrevVout         uint32       `json:"prev_vout"`
	PrevValueSats    uint64       `json:"prev_value_sats"`
	PrevScriptPubKey string       `json:"prev_script_pubkey"`
	WitnessStack     []string     `json:"witness_stack"`
	ScriptCode       string       `json:"script_code"`
	Sighash          string       `json:"sighash"`
	SighashPreimage  string       `json:"sighash_preimage"`
	Verification     Verification `json:"verification"`
}

// Verification is the script-VM-facing portion of a record, in the
// same shape as the golden fixture format.
type Verification struct {
	Name               string   `json:"name,omitempty"`
	Description        string   `json:"description"`
	InitialStack       []string `json:"initial_stack"`
	Script             string   `json:"script"`
	ExpectedFinalStack []string `json:"expected_final_stack,omitempty"`
	ExpectedResult     string   `json:"expected_result,omitempty"`
	Note               string   `json:"note,omitempty"`
}

// BuildRecord assembles the verification record for one input. The
// previous output's value and locking script come from PrevOutput;
// the engines do the rest.
//
// The initial stack drops the last witness element, treating it as the
// script rather than stack input, only when the witness holds more
// than one element; a single-element witness passes through unchanged.
func BuildRecord(tx *sighash.Transaction, txid string, inputIndex int,
	prevValue uint64, prevScript []byte) (*Record, error) {

	if inputIndex < 0 || inputIndex >= len(tx.Inputs) {
		return nil, fmt.Errorf("input index %d out of range (tx has %d inputs)",
			inputIndex, len(tx.Inputs))
	}
	in := &tx.Inputs[inputIndex]

	scriptCode := sighash.ScriptCode(prevScript, in.Witness)

	preimage, err := sighash.BuildPreimage(tx, inputIndex, scriptCode,
		prevValue, sighash.SigHashAll)
	if err != nil {
		return nil, err
	}
	digest, err := sighash.ComputeSighash(tx, inputIndex, scriptCode,
		prevValue, sighash.SigHashAll)
	if err != nil {
		return nil, err
	}

	witnessStack := make([]string, len(in.Witness))
	for i, w := range in.Witness {
		witnessStack[i] = hex.EncodeToString(w)
	}

	initialStack := witnessStack
	if len(witnessStack) > 1 {
		initialStack = witnessStack[:len(witnessStack)-1]
	}

	return &Record{
		TxID:             txid,
		InputIndex:       inputIndex,
		PrevTxID:         in.PrevOut.Hash.String(),
		PrevVout:         in.PrevOut.Index,
		PrevValueSats:    prevValue,
		PrevScriptPubKey: hex.EncodeToString(prevScript),
		WitnessStack:     witnessStack,
		ScriptCode:       hex.EncodeToString(scriptCode),
		Sighash:          hex.EncodeToString(digest[:]),
		SighashPreimage:  hex.EncodeToString(preimage),
		Verification: Verification{
			Description:    "Script VM verification data",
			InitialStack:   initialStack,
			Script:         hex.EncodeToString(scriptCode),
			ExpectedResult: "truthy",
			Note:           "stack should end with a truthy value if the spend is valid",
		},
	}, nil
}

// Demo returns the OP_CAT equality-check fixture: the expected
// concatenation sits at the bottom of the stack, CAT joins the two
// operands above it, and EQUAL compares the result against the
// expectation. The expected final stack is computed by running the
// interpreter, not hard coded.
func Demo() (*Verification, error) {
	initialStack := [][]byte{
		[]byte("HelloWorld"), // expected concatenation, bottom
		[]byte("Hello"),
		[]byte("World"), // top
	}
	scr := []byte{script.OpCat, script.OpEqual}

	finalStack, err := script.Execute(scr, initialStack)
	if err != nil {
		return nil, fmt.Errorf("executing demo script: %w", err)
	}

	hexStack := func(elems [][]byte) []string {
		out := make([]string, len(elems))
		for i, e := range elems {
			out[i] = hex.EncodeToString(e)
		}
		return out
	}

	return &Verification{
		Name:               "cat_equality_check",
		Description:        "Verifies CAT(Hello, World) == HelloWorld",
		InitialStack:       hexStack(initialStack),
		Script:             hex.EncodeToString(scr),
		ExpectedFinalStack: hexStack(finalStack),
	}, nil
}
