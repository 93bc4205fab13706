package auth

import "context"

// NotificationSettings controls which events reach the user.
type NotificationSettings struct {
	Push     bool `json:"push"`
	Email    bool `json:"email"`
	Mentions bool `json:"mentions"`
	Comments bool `json:"comments"`
	Likes    bool `json:"likes"`
}

// PrivacySettings controls profile and post visibility defaults.
type PrivacySettings struct {
	ProfileVisibility string `json:"profileVisibility"`
	ShowLocation      bool   `json:"showLocation"`
	AllowMessages     bool   `json:"allowMessages"`
}

// UpdateNotificationSettings replaces the user's notification settings.
func (s *Service) UpdateNotificationSettings(ctx context.Context, settings NotificationSettings) error {
	_, err := s.api.Put(ctx, "/auth/notification-settings", settings)
	return err
}

// UpdatePrivacySettings replaces the user's privacy settings.
func (s *Service) UpdatePrivacySettings(ctx context.Context, settings PrivacySettings) error {
	_, err := s.api.Put(ctx, "/auth/privacy-settings", settings)
	return err
}
