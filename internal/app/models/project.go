package models

import "time"

// Blockchain enumerates the chains a project can declare support for
type Blockchain string

const (
	BlockchainEthereum  Blockchain = "ETHEREUM"
	BlockchainSolana    Blockchain = "SOLANA"
	BlockchainPolygon   Blockchain = "POLYGON"
	BlockchainBNB       Blockchain = "BNB"
	BlockchainAvalanche Blockchain = "AVALANCHE"
	BlockchainArbitrum  Blockchain = "ARBITRUM"
	BlockchainOptimism  Blockchain = "OPTIMISM"
	BlockchainBase      Blockchain = "BASE"
	BlockchainOther     Blockchain = "OTHER"
)

// Project defines the project model based on the 'projects' table.
// Each user owns at most one project (owner_id is unique).
type Project struct {
	ID          int64     `json:"id" db:"id"`
	OwnerID     int64     `json:"ownerId" db:"owner_id"`
	Name        string    `json:"name" db:"name" example:"ChainBridge"`
	Description string    `json:"description" db:"description"`
	Website     *string   `json:"website,omitempty" db:"website"`
	Twitter     *string   `json:"twitter,omitempty" db:"twitter"`
	Discord     *string   `json:"discord,omitempty" db:"discord"`
	Tags        []string  `json:"tags" db:"tags"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`

	// Related entities
	Owner       *User               `json:"owner,omitempty"`
	Blockchains []ProjectBlockchain `json:"blockchains,omitempty"`
}

// ProjectBlockchain defines a chain preference row from 'project_blockchains'.
// At most one row per project carries is_primary = true; the service layer
// normalizes input to keep it that way.
type ProjectBlockchain struct {
	ID         int64      `json:"id" db:"id"`
	ProjectID  int64      `json:"projectId" db:"project_id"`
	Blockchain Blockchain `json:"blockchain" db:"blockchain" example:"ETHEREUM"`
	IsPrimary  bool       `json:"isPrimary" db:"is_primary"`
}
