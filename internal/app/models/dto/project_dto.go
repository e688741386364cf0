package dto

// BlockchainPreference is one chain entry in a project save request
type BlockchainPreference struct {
	Blockchain string `json:"blockchain" binding:"required,oneof=ETHEREUM SOLANA POLYGON BNB AVALANCHE ARBITRUM OPTIMISM BASE OTHER"`
	IsPrimary  bool   `json:"isPrimary"`
}

// SaveProjectRequest creates the caller's project on first save and updates
// it afterwards.
type SaveProjectRequest struct {
	Name        string                 `json:"name" binding:"required" example:"ChainBridge"`
	Description string                 `json:"description" binding:"required"`
	Website     *string                `json:"website,omitempty"`
	Twitter     *string                `json:"twitter,omitempty"`
	Discord     *string                `json:"discord,omitempty"`
	Tags        []string               `json:"tags"`
	Blockchains []BlockchainPreference `json:"blockchains"`
}

// ProjectFilter holds the browse query parameters
type ProjectFilter struct {
	Query      string
	Blockchain string
	Page       int
	Size       int
}
