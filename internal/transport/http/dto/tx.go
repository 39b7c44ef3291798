package dto

// TxResponse is the body of the /tx endpoint.
type TxResponse struct {
	Hash  string `json:"hash"`
	Nonce uint64 `json:"nonce"`
	To    string `json:"to"`
}
