package service

import "context"

type ctxKey string

const (
	ctxUserIDKey ctxKey = "userID"
	ctxRoleKey   ctxKey = "role"
)

func WithUserID(ctx context.Context, id int64) context.Context {
	return context.WithValue(ctx, ctxUserIDKey, id)
}

func UserIDFromContext(ctx context.Context) (int64, bool) {
	v, ok := ctx.Value(ctxUserIDKey).(int64)
	return v, ok
}

type Role string

const (
	RoleCustomer Role = "Customer"
	RoleAdmin    Role = "Admin"
)

func WithRole(ctx context.Context, r Role) context.Context {
	return context.WithValue(ctx, ctxRoleKey, r)
}

func RoleFromContext(ctx context.Context) (Role, bool) {
	v, ok := ctx.Value(ctxRoleKey).(Role)
	return v, ok
}

func requireAuth(ctx context.Context) (int64, Role, error) {
	uid, ok := UserIDFromContext(ctx)
	if !ok {
		return 0, "", ErrUnauthorized
	}
	role, _ := RoleFromContext(ctx) // missing role means customer
	if role == "" {
		role = RoleCustomer
	}
	return uid, role, nil
}
