package auth

import (
	"encoding/json"
	"fmt"
)

// MemberSession represents a platform member's session record in the database.
// The access token presented by clients maps to exactly one row.
type MemberSession struct {
	AccessToken string          `gorm:"type:varchar(255);column:access_token;primaryKey;not null" json:"-"`
	MemberID    string          `gorm:"type:varchar(100);column:member_id;not null" json:"memberId"`
	TenantID    string          `gorm:"type:varchar(100);column:tenant_id;not null" json:"tenantId"`
	Profile     json.RawMessage `gorm:"type:jsonb;column:profile;serializer:json" json:"profile"`
}

// TableName specifies the database table name for MemberSession
func (m *MemberSession) TableName() string {
	return "member_sessions"
}

// AuthContext is the transient per-request authentication context injected
// by the auth middleware. It carries the member session resolved from the
// bearer token.
type AuthContext struct {
	*MemberSession
}

// GetProfileMap returns the member profile as a map for convenient access.
// If no profile exists, it returns an empty map.
func (ac *AuthContext) GetProfileMap() (map[string]any, error) {
	profileMap := make(map[string]any)
	if ac == nil || ac.MemberSession == nil || len(ac.MemberSession.Profile) == 0 {
		return profileMap, nil
	}

	if err := json.Unmarshal(ac.MemberSession.Profile, &profileMap); err != nil {
		return nil, fmt.Errorf("failed to unmarshal member profile: %w", err)
	}

	return profileMap, nil
}
