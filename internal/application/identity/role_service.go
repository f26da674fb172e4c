package identity

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/ledgerline/backend/internal/domain/identity"
	"github.com/ledgerline/backend/internal/domain/shared"
)

// RoleService manages roles and their permission sets
type RoleService struct {
	roleRepo identity.RoleRepository
}

// NewRoleService creates a new role service
func NewRoleService(roleRepo identity.RoleRepository) *RoleService {
	return &RoleService{roleRepo: roleRepo}
}

// Create creates a new role with an optional initial permission set
func (s *RoleService) Create(ctx context.Context, req CreateRoleRequest) (*RoleResponse, error) {
	existing, err := s.roleRepo.FindByCode(ctx, req.Code)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, shared.NewDomainError("CODE_TAKEN", "A role with this code already exists")
	}

	role, err := identity.NewRole(req.Code, req.Name)
	if err != nil {
		return nil, err
	}
	for _, code := range req.Permissions {
		perm, err := identity.NewPermissionFromCode(code)
		if err != nil {
			return nil, err
		}
		role.Grant(perm)
	}

	if err := s.roleRepo.Save(ctx, role); err != nil {
		return nil, err
	}

	resp := ToRoleResponse(role)
	return &resp, nil
}

// UpdatePermissions replaces a role's permission set
func (s *RoleService) UpdatePermissions(ctx context.Context, roleID uuid.UUID, req UpdateRolePermissionsRequest) (*RoleResponse, error) {
	role, err := s.roleRepo.FindByID(ctx, roleID)
	if err != nil {
		return nil, err
	}

	desired := make(map[string]identity.Permission, len(req.Permissions))
	for _, code := range req.Permissions {
		perm, err := identity.NewPermissionFromCode(code)
		if err != nil {
			return nil, err
		}
		desired[perm.Code()] = perm
	}

	var toRevoke []identity.Permission
	for _, existing := range role.Permissions {
		if _, keep := desired[existing.Code()]; !keep {
			toRevoke = append(toRevoke, existing.Permission)
		}
	}
	for _, perm := range toRevoke {
		role.Revoke(perm)
	}
	for _, perm := range desired {
		role.Grant(perm)
	}

	if err := s.roleRepo.Save(ctx, role); err != nil {
		return nil, err
	}

	resp := ToRoleResponse(role)
	return &resp, nil
}

// Delete removes a role. System roles cannot be deleted.
func (s *RoleService) Delete(ctx context.Context, roleID uuid.UUID) error {
	role, err := s.roleRepo.FindByID(ctx, roleID)
	if err != nil {
		return err
	}
	if role.IsSystemRole {
		return shared.NewDomainError("SYSTEM_ROLE", "System roles cannot be deleted")
	}
	return s.roleRepo.Delete(ctx, roleID)
}

// GetByID retrieves a role by ID
func (s *RoleService) GetByID(ctx context.Context, roleID uuid.UUID) (*RoleResponse, error) {
	role, err := s.roleRepo.FindByID(ctx, roleID)
	if err != nil {
		return nil, err
	}
	resp := ToRoleResponse(role)
	return &resp, nil
}

// List returns all roles
func (s *RoleService) List(ctx context.Context) ([]RoleResponse, error) {
	roles, err := s.roleRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	responses := make([]RoleResponse, len(roles))
	for i := range roles {
		responses[i] = ToRoleResponse(&roles[i])
	}
	return responses, nil
}
