package repository

import (
	"github.com/hinagiku/kanban-api/internal/models"
	"gorm.io/gorm"
)

// GormOrganizationRepository is a GORM implementation of OrganizationRepository
type GormOrganizationRepository struct {
	db *gorm.DB
}

// NewOrganizationRepository creates a new OrganizationRepository
func NewOrganizationRepository(db *gorm.DB) OrganizationRepository {
	return &GormOrganizationRepository{db: db}
}

// Create creates a new organization
func (r *GormOrganizationRepository) Create(org *models.Organization) error {
	return r.db.Create(org).Error
}

// FindByID finds an organization by ID
func (r *GormOrganizationRepository) FindByID(id string) (*models.Organization, error) {
	var org models.Organization
	if err := r.db.First(&org, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &org, nil
}

// FindByInviteCode finds an organization by invite code
func (r *GormOrganizationRepository) FindByInviteCode(code string) (*models.Organization, error) {
	var org models.Organization
	if err := r.db.Where("invite_code = ?", code).First(&org).Error; err != nil {
		return nil, err
	}
	return &org, nil
}

// Update updates an organization
func (r *GormOrganizationRepository) Update(org *models.Organization) error {
	return r.db.Save(org).Error
}

// Delete deletes an organization and everything beneath it in a
// transaction: issues, columns, boards, workspaces, memberships, then
// the organization itself.
func (r *GormOrganizationRepository) Delete(id string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var workspaceIDs []string
		if err := tx.Model(&models.Workspace{}).
			Where("organization_id = ?", id).
			Pluck("id", &workspaceIDs).Error; err != nil {
			return err
		}

		if len(workspaceIDs) > 0 {
			var boardIDs []string
			if err := tx.Model(&models.Board{}).
				Where("workspace_id IN ?", workspaceIDs).
				Pluck("id", &boardIDs).Error; err != nil {
				return err
			}

			if err := tx.Where("workspace_id IN ?", workspaceIDs).Delete(&models.Issue{}).Error; err != nil {
				return err
			}
			if len(boardIDs) > 0 {
				if err := tx.Where("board_id IN ?", boardIDs).Delete(&models.BoardColumn{}).Error; err != nil {
					return err
				}
				if err := tx.Where("id IN ?", boardIDs).Delete(&models.Board{}).Error; err != nil {
					return err
				}
			}
			if err := tx.Where("id IN ?", workspaceIDs).Delete(&models.Workspace{}).Error; err != nil {
				return err
			}
		}

		if err := tx.Where("organization_id = ?", id).Delete(&models.Membership{}).Error; err != nil {
			return err
		}

		return tx.Delete(&models.Organization{}, "id = ?", id).Error
	})
}

// AddMember adds a member to an organization
func (r *GormOrganizationRepository) AddMember(member *models.Membership) error {
	return r.db.Create(member).Error
}

// UpdateMember saves changes to an existing membership
func (r *GormOrganizationRepository) UpdateMember(member *models.Membership) error {
	return r.db.Model(&models.Membership{}).
		Where("organization_id = ? AND user_id = ?", member.OrganizationID, member.UserID).
		Update("role", member.Role).Error
}

// RemoveMember removes a member from an organization
func (r *GormOrganizationRepository) RemoveMember(organizationID, userID string) error {
	return r.db.Where("organization_id = ? AND user_id = ?", organizationID, userID).
		Delete(&models.Membership{}).Error
}

// FindMember finds a specific organization member
func (r *GormOrganizationRepository) FindMember(organizationID, userID string) (*models.Membership, error) {
	var member models.Membership
	if err := r.db.Where("organization_id = ? AND user_id = ?", organizationID, userID).
		First(&member).Error; err != nil {
		return nil, err
	}
	return &member, nil
}

// ListMembersByUserID lists all organizations a user is a member of
func (r *GormOrganizationRepository) ListMembersByUserID(userID string) ([]models.Membership, error) {
	var memberships []models.Membership
	if err := r.db.Preload("Organization").
		Where("user_id = ?", userID).
		Find(&memberships).Error; err != nil {
		return nil, err
	}
	return memberships, nil
}

// ListMembers lists all members of an organization
func (r *GormOrganizationRepository) ListMembers(organizationID string) ([]models.Membership, error) {
	var members []models.Membership
	if err := r.db.Preload("User").
		Where("organization_id = ?", organizationID).
		Find(&members).Error; err != nil {
		return nil, err
	}
	return members, nil
}
