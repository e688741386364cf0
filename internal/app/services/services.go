package services

// Services defined in this package:
// - AuthService: registration, login, token refresh and profile management
// - ProjectService: public project browse and the caller's own project
// - PartnershipService: partnership proposals and their lifecycle
// - MessageService: partnership and direct messaging, conversations, read state
// - NotificationService: per-user notification feed
