package identity

import (
	"strings"

	"github.com/google/uuid"
	"github.com/ledgerline/backend/internal/domain/shared"
)

// Permission is a functional permission in "resource:action" form,
// e.g. "orders:create" or "inventory:adjust"
type Permission struct {
	Resource string `gorm:"type:varchar(50);not null"`
	Action   string `gorm:"type:varchar(50);not null"`
}

// NewPermissionFromCode parses a "resource:action" code string
func NewPermissionFromCode(code string) (Permission, error) {
	parts := strings.Split(code, ":")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return Permission{}, shared.NewDomainError("INVALID_PERMISSION_CODE", "Permission code must be in format 'resource:action'")
	}
	return Permission{Resource: parts[0], Action: parts[1]}, nil
}

// Code returns the "resource:action" representation
func (p Permission) Code() string {
	return p.Resource + ":" + p.Action
}

// Role groups users under a named permission set. Route access is decided by
// permission lookup on the role, not by pattern matching on the role name.
type Role struct {
	shared.BaseAggregateRoot
	Code         string           `gorm:"type:varchar(50);not null;uniqueIndex"`
	Name         string           `gorm:"type:varchar(100);not null"`
	IsSystemRole bool             `gorm:"not null;default:false"` // system roles cannot be deleted
	Permissions  []RolePermission `gorm:"foreignKey:RoleID;references:ID"`
}

// RolePermission is the role-to-permission join row
type RolePermission struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey"`
	RoleID uuid.UUID `gorm:"type:uuid;not null;index"`
	Permission
}

// TableName returns the table name for GORM
func (Role) TableName() string {
	return "roles"
}

// TableName returns the table name for GORM
func (RolePermission) TableName() string {
	return "role_permissions"
}

// NewRole creates a new role
func NewRole(code, name string) (*Role, error) {
	if strings.TrimSpace(code) == "" {
		return nil, shared.NewDomainError("INVALID_CODE", "Role code cannot be empty")
	}
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Role name cannot be empty")
	}

	return &Role{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Code:              strings.TrimSpace(code),
		Name:              strings.TrimSpace(name),
		Permissions:       make([]RolePermission, 0),
	}, nil
}

// Grant adds a permission to the role; granting twice is a no-op
func (r *Role) Grant(perm Permission) {
	for _, existing := range r.Permissions {
		if existing.Permission == perm {
			return
		}
	}
	r.Permissions = append(r.Permissions, RolePermission{
		ID:         uuid.New(),
		RoleID:     r.ID,
		Permission: perm,
	})
}

// Revoke removes a permission from the role
func (r *Role) Revoke(perm Permission) {
	for idx, existing := range r.Permissions {
		if existing.Permission == perm {
			r.Permissions = append(r.Permissions[:idx], r.Permissions[idx+1:]...)
			return
		}
	}
}

// HasPermission checks whether the role grants the given permission code
func (r *Role) HasPermission(code string) bool {
	for _, p := range r.Permissions {
		if p.Code() == code {
			return true
		}
	}
	return false
}
