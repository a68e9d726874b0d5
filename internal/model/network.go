package model

// NetworkConfig describes one ledger network the client can connect to
type NetworkConfig struct {
	Key         string `json:"key"`
	EndpointURL string `json:"endpointUrl"`
	IsLive      bool   `json:"isLive"`
	DisplayName string `json:"displayName"`
	FaucetURL   string `json:"faucetUrl,omitempty"`
}

const (
	NetworkTestnet = "testnet"
	NetworkMainnet = "mainnet"
)

// Testnet is the public test network; its XRP has no value
var Testnet = NetworkConfig{
	Key:         NetworkTestnet,
	EndpointURL: "wss://s.altnet.rippletest.net:51233",
	IsLive:      false,
	DisplayName: "Testnet",
	FaucetURL:   "https://faucet.altnet.rippletest.net/accounts",
}

// Mainnet is the production ledger; transactions move real funds
var Mainnet = NetworkConfig{
	Key:         NetworkMainnet,
	EndpointURL: "wss://xrplcluster.com/",
	IsLive:      true,
	DisplayName: "Mainnet",
}

// Settings is the persisted user settings record
type Settings struct {
	Network string `json:"network"`
}

// NetworkRequest represents request for POST /xrp/network
type NetworkRequest struct {
	Network                 string `json:"network"`
	AcknowledgeIrreversible bool   `json:"acknowledgeIrreversible"`
}
