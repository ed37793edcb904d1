// mzizi/types/profile.go
package types

// BusinessProfile is the identity every session collection is keyed by and
// the context the advisor service personalizes around.
type BusinessProfile struct {
	ID              string   `json:"id"`
	Email           string   `json:"email,omitempty"`
	OwnerName       string   `json:"ownerName"`
	BusinessName    string   `json:"businessName"`
	BusinessType    string   `json:"businessType"`
	Country         string   `json:"country"`
	Currency        string   `json:"currency"`
	RevenueRange    string   `json:"revenueRange"`
	TeamSize        string   `json:"teamSize"`
	PrimaryStrength string   `json:"primaryStrength"`
	Goals           []string `json:"goals"`
}
