// Package vectors produces golden test fixtures for the script
// interpreter.
//
// Each fixture records a script, an initial stack, and either the
// final stack or the error tag the interpreter produced. External
// verifiers replay the fixture and must reproduce the outcome exactly,
// including stack element order (bottom to top as first to last).
package vectors

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"io"
	"os"

	"github.com/suffix-labs/btc-groundtruth/pkg/script"
)

// Vector is a single golden fixture. Exactly one of ExpectedFinalStack
// and ExpectedError is set: the former when execution succeeded, the
// latter carrying the ErrorKind tag when it failed.
type Vector struct {
	Name               string   `json:"name"`
	Description        string   `json:"description"`
	InitialStack       []string `json:"initial_stack"`
	Script             string   `json:"script"`
	ExpectedFinalStack []string `json:"expected_final_stack,omitempty"`
	ExpectedError      string   `json:"expected_error,omitempty"`
}

// MarshalJSON emits exactly one outcome field: expected_final_stack on
// success, expected_error on failure. A success vector whose script
// consumed the whole stack still records "expected_final_stack": [],
// so a verifier can always tell success from failure by key presence.
func (v Vector) MarshalJSON() ([]byte, error) {
	type common struct {
		Name         string   `json:"name"`
		Description  string   `json:"description"`
		InitialStack []string `json:"initial_stack"`
		Script       string   `json:"script"`
	}
	c := common{v.Name, v.Description, v.InitialStack, v.Script}

	if v.ExpectedError != "" {
		return json.Marshal(struct {
			common
			ExpectedError string `json:"expected_error"`
		}{c, v.ExpectedError})
	}

	finalStack := v.ExpectedFinalStack
	if finalStack == nil {
		finalStack = []string{}
	}
	return json.Marshal(struct {
		common
		ExpectedFinalStack []string `json:"expected_final_stack"`
	}{c, finalStack})
}

// Suite is the persisted fixture file: the vectors plus the published
// interface constants a conforming verifier must agree on.
type Suite struct {
	Description string            `json:"description"`
	GeneratedBy string            `json:"generated_by"`
	Constants   Constants         `json:"constants"`
	Opcodes     map[string]string `json:"opcodes"`
	TestVectors []Vector          `json:"test_vectors"`
}

// Constants publishes the interpreter limits alongside the vectors so
// drift between documented and enforced limits is caught by diffing
// the fixture file.
type Constants struct {
	MaxScriptElementSize int `json:"MAX_SCRIPT_ELEMENT_SIZE"`
	MaxStackSize         int `json:"MAX_STACK_SIZE"`
}

// Make builds a vector by actually executing the script, so the
// expectation is always the interpreter's ground truth rather than a
// hand-maintained value.
func Make(name, description string, initialStack [][]byte, scr []byte) Vector {
	v := Vector{
		Name:         name,
		Description:  description,
		InitialStack: hexStrings(initialStack),
		Script:       hex.EncodeToString(scr),
	}

	finalStack, err := script.Execute(scr, initialStack)
	if err != nil {
		v.ExpectedError = errorTag(err)
		return v
	}
	v.ExpectedFinalStack = hexStrings(finalStack)
	return v
}

// errorTag extracts the conformance tag from a script execution error.
func errorTag(err error) string {
	var kind script.ErrorKind
	if errors.As(err, &kind) {
		return string(kind)
	}
	return err.Error()
}

func hexStrings(elems [][]byte) []string {
	out := make([]string, len(elems))
	for i, e := range elems {
		out[i] = hex.EncodeToString(e)
	}
	return out
}

// Encode writes the suite as indented JSON.
func (s *Suite) Encode(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(s)
}

// WriteFile writes the suite to path as indented JSON.
func (s *Suite) WriteFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := s.Encode(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
