package seed

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	appModels "github.com/synqit/synqit/internal/app/models"
	appRepos "github.com/synqit/synqit/internal/app/repositories"
	"github.com/synqit/synqit/internal/pkg/auth"
)

// CreateDefaultData seeds a pair of demo accounts with projects so a fresh
// install has something to browse. Runs only when the users table is empty.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	userRepo := appRepos.NewUserRepository(dbPool)
	projectRepo := appRepos.NewProjectRepository(dbPool)

	exists, err := userRepo.EmailExists(ctx, "demo.startup@synqit.com")
	if err != nil {
		return err
	}
	if exists {
		lgr.Debug().Msg("Default data already present, skipping seed")
		return nil
	}

	lgr.Info().Msg("Seeding default demo data...")

	password, err := auth.HashPassword("demo1234")
	if err != nil {
		return err
	}

	startup := &appModels.User{
		Email:     "demo.startup@synqit.com",
		Password:  password,
		FirstName: "Demo",
		LastName:  "Startup",
		UserType:  appModels.UserTypeStartup,
		IsActive:  true,
	}
	if _, err := userRepo.Create(ctx, startup); err != nil {
		return err
	}

	investor := &appModels.User{
		Email:     "demo.investor@synqit.com",
		Password:  password,
		FirstName: "Demo",
		LastName:  "Investor",
		UserType:  appModels.UserTypeInvestor,
		IsActive:  true,
	}
	if _, err := userRepo.Create(ctx, investor); err != nil {
		return err
	}

	startupProject := &appModels.Project{
		OwnerID:     startup.ID,
		Name:        "ChainBridge",
		Description: "Cross-chain asset bridge for EVM networks",
		Tags:        []string{"defi", "bridge"},
	}
	if _, err := projectRepo.Create(ctx, startupProject); err != nil {
		return err
	}
	if err := projectRepo.ReplaceBlockchains(ctx, startupProject.ID, []appModels.ProjectBlockchain{
		{Blockchain: appModels.BlockchainEthereum, IsPrimary: true},
		{Blockchain: appModels.BlockchainArbitrum},
	}); err != nil {
		return err
	}

	investorProject := &appModels.Project{
		OwnerID:     investor.ID,
		Name:        "Synqit Ventures",
		Description: "Early-stage Web3 investment fund",
		Tags:        []string{"fund", "investment"},
	}
	if _, err := projectRepo.Create(ctx, investorProject); err != nil {
		return err
	}
	if err := projectRepo.ReplaceBlockchains(ctx, investorProject.ID, []appModels.ProjectBlockchain{
		{Blockchain: appModels.BlockchainEthereum, IsPrimary: true},
	}); err != nil {
		return err
	}

	lgr.Info().Msg("Default demo data seeded")
	return nil
}
