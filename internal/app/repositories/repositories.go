package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository         *UserRepository
	TokenRepository        *TokenRepository
	ProjectRepository      *ProjectRepository
	PartnershipRepository  *PartnershipRepository
	MessageRepository      *MessageRepository
	NotificationRepository *NotificationRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		UserRepository:         NewUserRepository(db),
		TokenRepository:        NewTokenRepository(db),
		ProjectRepository:      NewProjectRepository(db),
		PartnershipRepository:  NewPartnershipRepository(db),
		MessageRepository:      NewMessageRepository(db),
		NotificationRepository: NewNotificationRepository(db),
	}
}
