package dto

// TokenState is a populated token handle.
type TokenState struct {
	Symbol  string `json:"symbol"`
	Address string `json:"address"`
}

// AMMState is a populated AMM handle.
type AMMState struct {
	SharePrecision string `json:"sharePrecision"`
	Address        string `json:"address"`
}

// StateResponse is the body of the /state endpoint. Unset handles are null.
type StateResponse struct {
	USDC    *TokenState `json:"usdc"`
	JOE     *TokenState `json:"joe"`
	AMM     *AMMState   `json:"amm"`
	Syncing bool        `json:"syncing"`
}

// ConnectResponse is the body of the /connect endpoint.
type ConnectResponse struct {
	Resync bool `json:"resync"`
}
