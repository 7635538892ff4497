package auth

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"gorm.io/gorm"
)

// AuthService provides business logic for session lookups and member
// context operations. It handles database interactions for session data.
type AuthService struct {
	db *gorm.DB
}

// NewAuthService creates a new AuthService instance
func NewAuthService(db *gorm.DB) *AuthService {
	return &AuthService{
		db: db,
	}
}

// GetSessionByToken retrieves the member session for a given access token.
// Returns gorm.ErrRecordNotFound if no session matches the token.
func (as *AuthService) GetSessionByToken(token string) (*MemberSession, error) {
	if token == "" {
		return nil, fmt.Errorf("access token is empty")
	}

	var session MemberSession
	result := as.db.Where("access_token = ?", token).First(&session)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			slog.Debug("member session not found for token")
			return nil, result.Error
		}
		slog.Error("failed to fetch member session from database",
			"error", result.Error,
		)
		return nil, fmt.Errorf("failed to fetch member session: %w", result.Error)
	}

	return &session, nil
}

// UpsertSession creates or replaces the session for an access token.
// Useful for initialization and for syncing with an external identity
// provider.
func (as *AuthService) UpsertSession(token, memberID, tenantID string, profile json.RawMessage) error {
	if token == "" {
		return fmt.Errorf("access token is empty")
	}
	if memberID == "" {
		return fmt.Errorf("member ID is empty")
	}

	if len(profile) > 0 {
		var jsonData interface{}
		if err := json.Unmarshal(profile, &jsonData); err != nil {
			return fmt.Errorf("invalid JSON in member profile: %w", err)
		}
	}

	result := as.db.Save(&MemberSession{
		AccessToken: token,
		MemberID:    memberID,
		TenantID:    tenantID,
		Profile:     profile,
	})

	if result.Error != nil {
		slog.Error("failed to upsert member session",
			"member_id", memberID,
			"error", result.Error,
		)
		return fmt.Errorf("failed to upsert member session: %w", result.Error)
	}

	slog.Debug("member session upserted successfully",
		"member_id", memberID,
	)

	return nil
}

// DeleteSession removes the session for an access token, i.e. a logout.
func (as *AuthService) DeleteSession(token string) error {
	if token == "" {
		return fmt.Errorf("access token is empty")
	}

	result := as.db.Delete(&MemberSession{}, "access_token = ?", token)
	if result.Error != nil {
		return fmt.Errorf("failed to delete member session: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("no session found for token")
	}
	return nil
}
