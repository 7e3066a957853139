package models

import "time"

type Role string

const (
	RoleOwner  Role = "OWNER"
	RoleAdmin  Role = "ADMIN"
	RoleMember Role = "MEMBER"
	RoleViewer Role = "VIEWER"
)

// roleWeights totally orders roles; unknown roles weigh zero and
// therefore never satisfy a minimum-role check.
var roleWeights = map[Role]int{
	RoleOwner:  40,
	RoleAdmin:  30,
	RoleMember: 20,
	RoleViewer: 10,
}

// Weight returns the numeric rank of the role.
func (r Role) Weight() int {
	return roleWeights[r]
}

// AtLeast reports whether r satisfies the given minimum role.
func (r Role) AtLeast(min Role) bool {
	return roleWeights[r] >= roleWeights[min]
}

// Membership is the single authorization fact tying a user to an
// organization. At most one row exists per (user, org) pair.
type Membership struct {
	OrganizationID string    `gorm:"type:varchar(36);primarykey" json:"organization_id"`
	UserID         string    `gorm:"type:varchar(36);primarykey" json:"user_id"`
	Role           Role      `gorm:"type:varchar(20);not null" json:"role"`
	JoinedAt       time.Time `json:"joined_at"`

	// Relations
	Organization Organization `gorm:"foreignKey:OrganizationID" json:"organization,omitempty"`
	User         User         `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
