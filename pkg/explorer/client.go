// Package explorer fetches transactions from a mempool.space-style
// block explorer API and assembles verification records around the
// sighash and script engines.
//
// This is the glue layer: it owns all I/O, timeouts and logging. The
// engines themselves never fetch or log. The client performs no
// retries; callers wanting resilience wrap it themselves.
package explorer

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/sirupsen/logrus"

	"github.com/suffix-labs/btc-groundtruth/pkg/sighash"
)

// DefaultAPI is the Bitcoin Signet block explorer API. Signet (and the
// Inquisition variant that re-enables OP_CAT) is where OP_CAT spends
// can actually confirm.
const DefaultAPI = "https://mempool.space/signet/api"

// Client talks to a mempool.space-compatible REST API.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewClient returns a client for the given API base URL, or DefaultAPI
// when empty. The HTTP client carries a 10 second timeout.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultAPI
	}
	return &Client{
		BaseURL:    baseURL,
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// apiTx mirrors the explorer's transaction JSON. Only the fields the
// sighash computation needs are decoded.
type apiTx struct {
	TxID     string    `json:"txid"`
	Version  uint32    `json:"version"`
	LockTime uint32    `json:"locktime"`
	Vin      []apiVin  `json:"vin"`
	Vout     []apiVout `json:"vout"`
}

type apiVin struct {
	TxID      string   `json:"txid"`
	Vout      uint32   `json:"vout"`
	ScriptSig string   `json:"scriptsig"`
	Sequence  uint32   `json:"sequence"`
	Witness   []string `json:"witness"`
}

type apiVout struct {
	ScriptPubKey string `json:"scriptpubkey"`
	Value        uint64 `json:"value"`
}

// Transaction fetches a transaction by its display-order txid and maps
// it onto the sighash engine's transaction record.
func (c *Client) Transaction(txid string) (*sighash.Transaction, error) {
	logrus.Debugf("fetching transaction %s from %s", txid, c.BaseURL)

	var raw apiTx
	if err := c.get("/tx/"+url.PathEscape(txid), &raw); err != nil {
		return nil, fmt.Errorf("fetching transaction %s: %w", txid, err)
	}
	return parseTransaction(&raw)
}

// PrevOutput fetches the output being spent: its value in satoshis and
// its locking script. The sighash engine never resolves these itself.
func (c *Client) PrevOutput(txid string, vout uint32) (uint64, []byte, error) {
	logrus.Debugf("fetching previous output %s:%d", txid, vout)

	var raw apiTx
	if err := c.get("/tx/"+url.PathEscape(txid), &raw); err != nil {
		return 0, nil, fmt.Errorf("fetching previous transaction %s: %w", txid, err)
	}
	if int(vout) >= len(raw.Vout) {
		return 0, nil, fmt.Errorf("output %d not found in transaction %s (has %d outputs)",
			vout, txid, len(raw.Vout))
	}

	out := raw.Vout[vout]
	script, err := hex.DecodeString(out.ScriptPubKey)
	if err != nil {
		return 0, nil, fmt.Errorf("decoding scriptpubkey of %s:%d: %w", txid, vout, err)
	}
	return out.Value, script, nil
}

func (c *Client) get(path string, v interface{}) error {
	resp, err := c.HTTPClient.Get(c.BaseURL + path)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("explorer returned status %s", resp.Status)
	}
	return json.NewDecoder(resp.Body).Decode(v)
}

// parseTransaction converts the explorer JSON into the engine's
// transaction record. Display-order txids are reversed into internal
// byte order here, at the boundary, so the engine never guesses.
func parseTransaction(raw *apiTx) (*sighash.Transaction, error) {
	tx := &sighash.Transaction{
		Version:  raw.Version,
		LockTime: raw.LockTime,
		Inputs:   make([]sighash.TxIn, len(raw.Vin)),
		Outputs:  make([]sighash.TxOut, len(raw.Vout)),
	}

	for i, vin := range raw.Vin {
		prevHash, err := chainhash.NewHashFromStr(vin.TxID)
		if err != nil {
			return nil, fmt.Errorf("parsing input %d prev txid: %w", i, err)
		}

		scriptSig, err := hex.DecodeString(vin.ScriptSig)
		if err != nil {
			return nil, fmt.Errorf("parsing input %d scriptsig: %w", i, err)
		}

		witness := make([][]byte, len(vin.Witness))
		for j, w := range vin.Witness {
			witness[j], err = hex.DecodeString(w)
			if err != nil {
				return nil, fmt.Errorf("parsing input %d witness element %d: %w", i, j, err)
			}
		}

		tx.Inputs[i] = sighash.TxIn{
			PrevOut: sighash.OutPoint{
				Hash:  *prevHash,
				Index: vin.Vout,
			},
			SignatureScript: scriptSig,
			Sequence:        vin.Sequence,
			Witness:         witness,
		}
	}

	for i, vout := range raw.Vout {
		script, err := hex.DecodeString(vout.ScriptPubKey)
		if err != nil {
			return nil, fmt.Errorf("parsing output %d scriptpubkey: %w", i, err)
		}
		tx.Outputs[i] = sighash.TxOut{
			Value:    vout.Value,
			PkScript: script,
		}
	}

	return tx, nil
}
