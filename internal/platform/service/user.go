package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/yukti/platform/internal/platform/domain"
	"github.com/yukti/platform/internal/platform/store"
	"github.com/yukti/platform/pkg/slogx"
)

const (
	defaultPageLimit = 10
	maxPageLimit     = 100

	defaultRemovalReason = "User removed from company"
)

// UserService is company-scoped user management.
type UserService struct {
	Store store.Store
	Now   func() time.Time
}

type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

func newPagination(page, limit, total int) Pagination {
	pages := 0
	if limit > 0 {
		pages = (total + limit - 1) / limit
	}
	return Pagination{Page: page, Limit: limit, Total: total, TotalPages: pages}
}

// clampPage normalizes 1-based page and limit query values.
func clampPage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	return page, limit
}

type UserList struct {
	Users      []domain.UserView `json:"users"`
	Pagination Pagination        `json:"pagination"`
}

func (s *UserService) ListCompanyUsers(ctx context.Context, actor Actor, page, limit int, status domain.UserStatus) (UserList, error) {
	if status != "" && !status.Valid() {
		return UserList{}, ErrInvalidStatus
	}
	page, limit = clampPage(page, limit)

	users, total, err := s.Store.Users().ListUsers(ctx, store.UserFilter{
		CompanyID: actor.CompanyID,
		Status:    status,
		Offset:    (page - 1) * limit,
		Limit:     limit,
	})
	if err != nil {
		return UserList{}, fmt.Errorf("list users: %w", err)
	}

	views := make([]domain.UserView, 0, len(users))
	for i := range users {
		views = append(views, users[i].View())
	}
	return UserList{Users: views, Pagination: newPagination(page, limit, total)}, nil
}

type UpdateUserInput struct {
	Name        *string            `json:"name,omitempty"`
	Role        *domain.Role       `json:"role,omitempty"`
	Permissions []string           `json:"permissions,omitempty"`
	Status      *domain.UserStatus `json:"status,omitempty"`
}

type UserResult struct {
	Message string          `json:"message"`
	User    domain.UserView `json:"user"`
}

// loadManaged returns a user the actor is allowed to manage.
func (s *UserService) loadManaged(ctx context.Context, actor Actor, userID string, denied *Error) (domain.User, error) {
	if !actor.canManage() {
		return domain.User{}, denied
	}
	u, err := s.Store.Users().GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, ErrUserNotFound
		}
		return domain.User{}, fmt.Errorf("load user: %w", err)
	}
	if !actor.sameCompany(u.CompanyID) {
		return domain.User{}, denied
	}
	return u, nil
}

func (s *UserService) UpdateUser(ctx context.Context, actor Actor, userID string, in UpdateUserInput) (UserResult, error) {
	log := slogx.FromContext(ctx)
	now := nowOr(s.Now)

	u, err := s.loadManaged(ctx, actor, userID, Errorf(ErrForbidden, "Insufficient permissions to update user"))
	if err != nil {
		return UserResult{}, err
	}

	if in.Name != nil {
		name := SanitizeInput(*in.Name)
		if n := len([]rune(name)); n < 2 || n > 100 {
			return UserResult{}, Errorf(ErrInvalidRequest, "Name must be between 2 and 100 characters")
		}
		u.Name = name
	}

	if in.Role != nil && *in.Role != u.Role {
		if u.ID == actor.UserID && !actor.IsAdmin() {
			return UserResult{}, ErrSelfRoleChange
		}
		perms, err := grantable(actor, *in.Role, in.Permissions)
		if err != nil {
			return UserResult{}, err
		}
		u.Role = *in.Role
		u.Permissions = perms
	} else if len(in.Permissions) > 0 {
		perms, err := grantable(actor, u.Role, in.Permissions)
		if err != nil {
			return UserResult{}, err
		}
		u.Permissions = perms
	}

	if in.Status != nil && *in.Status != u.Status {
		if !in.Status.Valid() {
			return UserResult{}, ErrInvalidStatus
		}
		if u.ID == actor.UserID && *in.Status != domain.UserActive {
			return UserResult{}, ErrSelfDeactivation
		}
		applyStatus(&u, *in.Status, "", actor.UserID, now)
	}

	u.UpdatedAt = now
	saved, err := s.Store.Users().UpdateUser(ctx, u)
	if err != nil {
		return UserResult{}, mapWriteErr(err)
	}
	log.Info("user updated", slog.String("user_id", saved.ID), slog.String("by", actor.UserID))
	return UserResult{Message: "User updated successfully", User: saved.View()}, nil
}

// applyStatus sets status and stamps or clears the deactivation audit.
func applyStatus(u *domain.User, status domain.UserStatus, reason, by string, now time.Time) {
	u.Status = status
	if status == domain.UserActive {
		u.Deactivation = domain.Deactivation{}
		return
	}
	u.Deactivation = domain.Deactivation{Reason: reason, At: &now, By: by}
}

type StatusInput struct {
	Status domain.UserStatus `json:"status"`
	Reason string            `json:"reason,omitempty"`
}

func (s *UserService) UpdateUserStatus(ctx context.Context, actor Actor, userID string, in StatusInput) (UserResult, error) {
	log := slogx.FromContext(ctx)
	now := nowOr(s.Now)

	if !in.Status.Valid() {
		return UserResult{}, ErrInvalidStatus
	}
	u, err := s.loadManaged(ctx, actor, userID, Errorf(ErrForbidden, "Insufficient permissions to update user status"))
	if err != nil {
		return UserResult{}, err
	}
	if u.ID == actor.UserID && in.Status != domain.UserActive {
		return UserResult{}, ErrSelfDeactivation
	}

	applyStatus(&u, in.Status, SanitizeInput(in.Reason), actor.UserID, now)
	u.UpdatedAt = now
	saved, err := s.Store.Users().UpdateUser(ctx, u)
	if err != nil {
		return UserResult{}, mapWriteErr(err)
	}

	log.Info("user status changed",
		slog.String("user_id", saved.ID),
		slog.String("status", string(saved.Status)),
		slog.String("by", actor.UserID),
	)
	return UserResult{
		Message: fmt.Sprintf("User status updated to %s", saved.Status),
		User:    saved.View(),
	}, nil
}

type RemoveInput struct {
	Reason           string `json:"reason,omitempty"`
	TransferToUserID string `json:"transferToUserId,omitempty"`
}

type RemoveResult struct {
	Message           string `json:"message"`
	UserID            string `json:"userId"`
	TransferInitiated bool   `json:"transferInitiated"`
}

// RemoveUser deactivates a member. Users are never hard-deleted here.
func (s *UserService) RemoveUser(ctx context.Context, actor Actor, userID string, in RemoveInput) (RemoveResult, error) {
	log := slogx.FromContext(ctx)
	now := nowOr(s.Now)

	u, err := s.loadManaged(ctx, actor, userID, Errorf(ErrForbidden, "Insufficient permissions to remove user"))
	if err != nil {
		return RemoveResult{}, err
	}
	if u.ID == actor.UserID {
		return RemoveResult{}, ErrSelfRemoval
	}

	if in.TransferToUserID != "" {
		target, err := s.Store.Users().GetUserByID(ctx, in.TransferToUserID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return RemoveResult{}, ErrTransferTargetNotFound
			}
			return RemoveResult{}, fmt.Errorf("load transfer target: %w", err)
		}
		if target.CompanyID != u.CompanyID || target.ID == u.ID {
			return RemoveResult{}, ErrTransferTargetNotFound
		}
	}

	reason := SanitizeInput(in.Reason)
	if reason == "" {
		reason = defaultRemovalReason
	}
	applyStatus(&u, domain.UserInactive, reason, actor.UserID, now)
	u.UpdatedAt = now
	if _, err := s.Store.Users().UpdateUser(ctx, u); err != nil {
		return RemoveResult{}, mapWriteErr(err)
	}

	log.Info("user removed",
		slog.String("user_id", u.ID),
		slog.String("by", actor.UserID),
		slog.Bool("transfer", in.TransferToUserID != ""),
	)
	return RemoveResult{
		Message:           "User removed successfully",
		UserID:            u.ID,
		TransferInitiated: in.TransferToUserID != "",
	}, nil
}

type BulkAction string

const (
	BulkActivate   BulkAction = "activate"
	BulkDeactivate BulkAction = "deactivate"
	BulkSuspend    BulkAction = "suspend"
	BulkDelete     BulkAction = "delete"
)

type BulkActionInput struct {
	UserIDs []string   `json:"userIds"`
	Action  BulkAction `json:"action"`
	Reason  string     `json:"reason,omitempty"`
}

type BulkActionItem struct {
	UserID  string `json:"userId"`
	Success bool   `json:"success"`
	Result  any    `json:"result,omitempty"`
	Error   string `json:"error,omitempty"`
}

type BulkActionResult struct {
	Message    string           `json:"message"`
	Results    []BulkActionItem `json:"results"`
	Successful int              `json:"successful"`
	Failed     int              `json:"failed"`
}

// BulkAction applies one action to each user in order.
func (s *UserService) BulkAction(ctx context.Context, actor Actor, in BulkActionInput) (BulkActionResult, error) {
	var apply func(id string) (any, error)
	switch in.Action {
	case BulkActivate, BulkDeactivate, BulkSuspend:
		status := map[BulkAction]domain.UserStatus{
			BulkActivate:   domain.UserActive,
			BulkDeactivate: domain.UserInactive,
			BulkSuspend:    domain.UserSuspended,
		}[in.Action]
		apply = func(id string) (any, error) {
			return s.UpdateUserStatus(ctx, actor, id, StatusInput{Status: status, Reason: in.Reason})
		}
	case BulkDelete:
		apply = func(id string) (any, error) {
			return s.RemoveUser(ctx, actor, id, RemoveInput{Reason: in.Reason})
		}
	default:
		return BulkActionResult{}, ErrInvalidAction
	}
	if len(in.UserIDs) == 0 {
		return BulkActionResult{}, Errorf(ErrInvalidRequest, "userIds must not be empty")
	}

	out := BulkActionResult{
		Message: "Bulk action completed",
		Results: make([]BulkActionItem, 0, len(in.UserIDs)),
	}
	for _, id := range in.UserIDs {
		res, err := apply(id)
		if err != nil {
			out.Results = append(out.Results, BulkActionItem{UserID: id, Error: clientMessage(err)})
			out.Failed++
			continue
		}
		out.Results = append(out.Results, BulkActionItem{UserID: id, Success: true, Result: res})
		out.Successful++
	}
	return out, nil
}
