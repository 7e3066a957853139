package dto

import (
	"time"

	"github.com/hinagiku/kanban-api/internal/models"
)

// OrganizationWithRoleDTO represents an organization with the user's role
type OrganizationWithRoleDTO struct {
	OrganizationDTO
	Role models.Role `json:"role"`
}

// MembershipDTO represents a member in an organization
type MembershipDTO struct {
	User     UserDTO     `json:"user"`
	Role     models.Role `json:"role"`
	JoinedAt time.Time   `json:"joined_at"`
}

// OrganizationDetailDTO represents detailed organization information
type OrganizationDetailDTO struct {
	OrganizationDTO
	Members  []MembershipDTO `json:"members"`
	YourRole models.Role     `json:"your_role"`
}

// ToOrganizationWithRoleDTO converts a membership to DTO with role
func ToOrganizationWithRoleDTO(member models.Membership) OrganizationWithRoleDTO {
	return OrganizationWithRoleDTO{
		OrganizationDTO: ToOrganizationDTO(member.Organization, false),
		Role:            member.Role,
	}
}

// ToMembershipDTO converts a membership to DTO
func ToMembershipDTO(member models.Membership) MembershipDTO {
	return MembershipDTO{
		User:     ToUserDTO(member.User),
		Role:     member.Role,
		JoinedAt: member.JoinedAt,
	}
}

// ToOrganizationDetailDTO converts organization with members to detailed DTO
func ToOrganizationDetailDTO(org models.Organization, members []models.Membership, yourRole models.Role) OrganizationDetailDTO {
	memberDTOs := make([]MembershipDTO, len(members))
	for i, member := range members {
		memberDTOs[i] = ToMembershipDTO(member)
	}

	return OrganizationDetailDTO{
		OrganizationDTO: ToOrganizationDTO(org, true),
		Members:         memberDTOs,
		YourRole:        yourRole,
	}
}
