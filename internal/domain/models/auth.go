package models

import (
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// SupabaseClaims represents the JWT claims structure from Supabase Auth.
// See: https://supabase.com/docs/guides/auth/jwts
type SupabaseClaims struct {
	jwt.RegisteredClaims                          // Standard JWT claims (sub, iss, aud, exp, iat, etc.)
	Email                string                   `json:"email"`
	Phone                string                   `json:"phone"`
	AppMetadata          map[string]interface{}   `json:"app_metadata"`
	UserMetadata         map[string]interface{}   `json:"user_metadata"`
	Role                 string                   `json:"role"` // "authenticated" or "anon"
	AAL                  string                   `json:"aal"`  // Authentication Assurance Level: "aal1" or "aal2"
	AMR                  []map[string]interface{} `json:"amr"`  // Authentication Method References
	SessionID            string                   `json:"session_id"`
	IsAnonymous          bool                     `json:"is_anonymous"`
}

// GetUserID returns the user ID from the JWT subject claim.
func (c *SupabaseClaims) GetUserID() string {
	return c.Subject
}

// Actor returns the identity used for authorization decisions.
func (c *SupabaseClaims) Actor() Actor {
	return Actor{UserID: c.Subject, Email: c.Email}
}

// PendingInvitation extracts the campaign invitation marker that the magic link
// stored in user metadata. ok is false when the user did not arrive via an invitation.
func (c *SupabaseClaims) PendingInvitation() (campaignID string, ok bool) {
	if c.UserMetadata == nil {
		return "", false
	}
	marker, _ := c.UserMetadata[MetaCampaignInvitation].(bool)
	if !marker {
		return "", false
	}
	campaignID, _ = c.UserMetadata[MetaCampaignID].(string)
	return campaignID, campaignID != ""
}

// Actor is the authenticated caller of a service operation.
type Actor struct {
	UserID string
	Email  string
}

// NormalizedEmail returns the lower-cased, trimmed email used for member matching.
func (a Actor) NormalizedEmail() string {
	return NormalizeEmail(a.Email)
}

// NormalizeEmail lower-cases and trims an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// User metadata keys written into magic-link invitations.
const (
	MetaCampaignInvitation = "campaign_invitation"
	MetaCampaignID         = "campaign_id"
	MetaCampaignTitle      = "campaign_title"
	MetaInviterEmail       = "inviter_email"
)

// CampaignInvitation is what gets sent to an invited email address.
type CampaignInvitation struct {
	Email         string
	CampaignID    string
	CampaignTitle string
	InviterEmail  string
}

// Metadata returns the user metadata attached to the magic link.
func (i CampaignInvitation) Metadata() map[string]interface{} {
	return map[string]interface{}{
		MetaCampaignInvitation: true,
		MetaCampaignID:         i.CampaignID,
		MetaCampaignTitle:      i.CampaignTitle,
		MetaInviterEmail:       i.InviterEmail,
	}
}

// AuthUser is a user record as reported by the auth provider.
type AuthUser struct {
	ID           string                 `json:"id"`
	Email        string                 `json:"email"`
	UserMetadata map[string]interface{} `json:"user_metadata,omitempty"`
}

// AuthSession is an access token pair issued by the auth provider.
type AuthSession struct {
	AccessToken  string    `json:"access_token"`
	TokenType    string    `json:"token_type"`
	ExpiresIn    int       `json:"expires_in"`
	RefreshToken string    `json:"refresh_token"`
	User         *AuthUser `json:"user,omitempty"`
}
