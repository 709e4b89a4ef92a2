package models

// Settings is the read-only system configuration shown on the admin settings page.
type Settings struct {
	SystemName string         `json:"systemName"`
	AdminEmail string         `json:"adminEmail"`
	Sui        SuiSettings    `json:"sui"`
	Walrus     WalrusSettings `json:"walrus"`
	Features   FeatureFlags   `json:"features"`
}

// SuiSettings describes the configured Sui network and review contract.
type SuiSettings struct {
	Network         string `json:"network"`
	RPCURL          string `json:"rpcUrl"`
	FaucetURL       string `json:"faucetUrl,omitempty"`
	ReviewPackageID string `json:"reviewPackageId,omitempty"`
	ReviewRegistry  string `json:"reviewRegistryId,omitempty"`
	ReviewCall      string `json:"reviewMoveCall,omitempty"`
}

// WalrusSettings describes the configured Walrus endpoints.
type WalrusSettings struct {
	PublisherURL   string `json:"publisherUrl"`
	AggregatorURL  string `json:"aggregatorUrl"`
	DefaultEpochs  int    `json:"defaultEpochs"`
	MaxUploadBytes int64  `json:"maxUploadBytes"`
}

// FeatureFlags toggle the live integrations.
type FeatureFlags struct {
	Blockchain bool `json:"blockchain"`
	Walrus     bool `json:"walrus"`
}
