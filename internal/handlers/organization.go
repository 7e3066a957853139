package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hinagiku/kanban-api/internal/dto"
	apierrors "github.com/hinagiku/kanban-api/internal/errors"
	"github.com/hinagiku/kanban-api/internal/middleware"
	"github.com/hinagiku/kanban-api/internal/models"
	"github.com/hinagiku/kanban-api/internal/services"
)

type OrganizationHandler struct {
	orgService *services.OrganizationService
}

func NewOrganizationHandler(orgService *services.OrganizationService) *OrganizationHandler {
	return &OrganizationHandler{
		orgService: orgService,
	}
}

// CreateOrganization creates a new organization with the caller as owner.
func (h *OrganizationHandler) CreateOrganization(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthenticated(c, "Not authenticated")
		return
	}

	type CreateOrgRequest struct {
		Name string `json:"name" binding:"required"`
	}

	var req CreateOrgRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	org, err := h.orgService.CreateOrganization(services.CreateOrganizationInput{
		Name:    req.Name,
		OwnerID: userID,
	})
	if err != nil {
		respondOrgError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToOrganizationDTO(*org, true))
}

// ListOrganizations returns all organizations the user is a member of
func (h *OrganizationHandler) ListOrganizations(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthenticated(c, "Not authenticated")
		return
	}

	memberships, err := h.orgService.ListOrganizationsForUser(userID)
	if err != nil {
		respondOrgError(c, err)
		return
	}

	orgsWithRole := make([]dto.OrganizationWithRoleDTO, len(memberships))
	for i, m := range memberships {
		orgsWithRole[i] = dto.ToOrganizationWithRoleDTO(m)
	}

	c.JSON(http.StatusOK, gin.H{
		"organizations": orgsWithRole,
	})
}

// GetOrganization returns organization details including members
func (h *OrganizationHandler) GetOrganization(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthenticated(c, "Not authenticated")
		return
	}

	orgID := c.Param("id")

	org, members, err := h.orgService.GetOrganizationWithMembers(orgID)
	if err != nil {
		respondOrgError(c, err)
		return
	}

	var yourRole models.Role
	for _, m := range members {
		if m.UserID == userID {
			yourRole = m.Role
			break
		}
	}

	c.JSON(http.StatusOK, dto.ToOrganizationDetailDTO(*org, members, yourRole))
}

// UpdateOrganization updates organization name
func (h *OrganizationHandler) UpdateOrganization(c *gin.Context) {
	type UpdateOrgRequest struct {
		Name string `json:"name" binding:"required"`
	}

	var req UpdateOrgRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	org, err := h.orgService.UpdateOrganizationName(c.Param("id"), req.Name)
	if err != nil {
		respondOrgError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToOrganizationDTO(*org, false))
}

// DeleteOrganization deletes an organization and everything under it
func (h *OrganizationHandler) DeleteOrganization(c *gin.Context) {
	if err := h.orgService.DeleteOrganization(c.Param("id")); err != nil {
		respondOrgError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Organization deleted successfully",
	})
}

// JoinOrganization allows a user to join via invite code
func (h *OrganizationHandler) JoinOrganization(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthenticated(c, "Not authenticated")
		return
	}

	type JoinRequest struct {
		InviteCode string `json:"invite_code" binding:"required"`
	}

	var req JoinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	org, err := h.orgService.JoinOrganizationByInvite(userID, req.InviteCode)
	if err != nil {
		respondOrgError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":      "Successfully joined organization",
		"organization": dto.ToOrganizationDTO(*org, false),
	})
}

// RegenerateInviteCode generates a new invite code for the organization
func (h *OrganizationHandler) RegenerateInviteCode(c *gin.Context) {
	org, err := h.orgService.RegenerateInviteCode(c.Param("id"))
	if err != nil {
		respondOrgError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToOrganizationDTO(*org, true))
}

// UpdateMemberRole changes a member's role within the organization
func (h *OrganizationHandler) UpdateMemberRole(c *gin.Context) {
	type UpdateRoleRequest struct {
		Role string `json:"role" binding:"required"`
	}

	var req UpdateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	member, err := h.orgService.UpdateMemberRole(c.Param("id"), c.Param("user_id"), models.Role(req.Role))
	if err != nil {
		respondOrgError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToMembershipDTO(*member))
}

// RemoveMember removes a member from the organization
func (h *OrganizationHandler) RemoveMember(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthenticated(c, "Not authenticated")
		return
	}

	if err := h.orgService.RemoveMember(c.Param("id"), userID, c.Param("user_id")); err != nil {
		respondOrgError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Member removed successfully",
	})
}

func respondOrgError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrOrganizationNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrMemberNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrInvalidInviteCode):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrAlreadyMember):
		apierrors.Conflict(c, err.Error())
	case errors.Is(err, services.ErrInvalidOrganizationName),
		errors.Is(err, services.ErrInvalidRole),
		errors.Is(err, services.ErrCannotRemoveYourself):
		apierrors.BadRequest(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
