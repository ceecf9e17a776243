package main

import (
	"context"
	"errors"
	"os"
	"time"

	"go-hr/internal/common/models"
	"go-hr/internal/config"
	"go-hr/internal/database"
	"go-hr/internal/features/codetable"
	"go-hr/internal/features/menu"
	"go-hr/internal/features/role"
	"go-hr/internal/features/sysuser"
	"go-hr/internal/logger"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
)

// Seed installs the baseline data a fresh deployment needs: the built-in
// roles, the admin account, the default menu tree and the code table
// categories. Every insert skips records that already exist, so the
// seeder is safe to rerun.
func Seed(
	lc fx.Lifecycle,
	roles role.RoleRepository,
	users sysuser.UserRepository,
	menus menu.MenuRepository,
	codes codetable.CodeRepository,
	logger *zap.Logger,
	shutdowner fx.Shutdowner,
) {
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go func() {
				defer func() {
					if err := shutdowner.Shutdown(); err != nil {
						logger.Error("shutdown failed", zap.Error(err))
					}
				}()

				ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
				defer cancel()

				logger.Info("seeding baseline data")
				seedRoles(ctx, roles, logger)
				seedAdminUser(ctx, users, logger)
				seedMenus(ctx, menus, logger)
				seedCodes(ctx, codes, logger)
				logger.Info("seeding finished")
			}()
			return nil
		},
	})
}

func seedRoles(ctx context.Context, repo role.RoleRepository, logger *zap.Logger) {
	now := time.Now()
	defaults := []role.Role{
		{RoleID: role.AdminRoleID, RoleName: "Administrator", Description: "Full console access", IsActive: true, IsSystem: true},
		{RoleID: "HR", RoleName: "HR Staff", Description: "Member and attendance management", IsActive: true},
		{RoleID: "USER", RoleName: "General User", Description: "Read-only console access", IsActive: true, IsSystem: true},
	}
	for _, r := range defaults {
		r.CreatedAt, r.UpdatedAt = now, now
		if r.FunctionIDs == nil {
			r.FunctionIDs = []string{}
		}
		create(ctx, logger, "role", r.RoleID, func() error { return repo.Create(ctx, &r) })
	}
}

func seedAdminUser(ctx context.Context, repo sysuser.UserRepository, logger *zap.Logger) {
	password := os.Getenv("SEED_ADMIN_PASSWORD")
	if password == "" {
		password = "admin12345"
	}
	hash, err := sysuser.HashPassword(password)
	if err != nil {
		logger.Error("hash admin password", zap.Error(err))
		return
	}
	now := time.Now()
	admin := sysuser.User{
		UserID:       "admin",
		PasswordHash: hash,
		IsActive:     true,
		Roles:        []string{role.AdminRoleID},
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	create(ctx, logger, "user", admin.UserID, func() error { return repo.Create(ctx, &admin) })
}

func seedMenus(ctx context.Context, repo menu.MenuRepository, logger *zap.Logger) {
	defaults := []menu.Menu{
		{ID: "M100", Name: "HR", SortOrder: 10, Active: true},
		{ID: "M110", Name: "Members", ParentID: "M100", Path: "/members", Icon: "users", SortOrder: 11, Active: true},
		{ID: "M120", Name: "Attendance", ParentID: "M100", Path: "/attendance", Icon: "calendar", SortOrder: 12, Active: true},
		{ID: "M130", Name: "Annual Leave", ParentID: "M100", Path: "/annual-leave", Icon: "sun", SortOrder: 13, Active: true},
		{ID: "M140", Name: "Projects", ParentID: "M100", Path: "/projects", Icon: "briefcase", SortOrder: 14, Active: true},
		{ID: "M200", Name: "Announcements", Path: "/announcements", Icon: "bell", SortOrder: 20, Active: true},
		{ID: "M900", Name: "System", SortOrder: 90, Active: true, RequiredRole: role.AdminRoleID},
		{ID: "M910", Name: "Users", ParentID: "M900", Path: "/system/users", Icon: "user-cog", SortOrder: 91, Active: true, RequiredRole: role.AdminRoleID},
		{ID: "M920", Name: "Roles", ParentID: "M900", Path: "/system/roles", Icon: "shield", SortOrder: 92, Active: true, RequiredRole: role.AdminRoleID},
		{ID: "M930", Name: "Menus", ParentID: "M900", Path: "/system/menus", Icon: "list", SortOrder: 93, Active: true, RequiredRole: role.AdminRoleID},
		{ID: "M940", Name: "Code Table", ParentID: "M900", Path: "/system/codes", Icon: "table", SortOrder: 94, Active: true, RequiredRole: role.AdminRoleID},
	}
	for _, m := range defaults {
		create(ctx, logger, "menu", m.ID, func() error { return repo.Create(ctx, &m) })
	}
}

func seedCodes(ctx context.Context, repo codetable.CodeRepository, logger *zap.Logger) {
	stamp := time.Now()
	defaults := []codetable.Code{
		{CodeCode: "0001", CodeSubcode: "01", CodeSubname: "Annual Leave", Sysmark: "1"},
		{CodeCode: "0001", CodeSubcode: "02", CodeSubname: "Sick Leave", Sysmark: "1"},
		{CodeCode: "0001", CodeSubcode: "03", CodeSubname: "Personal Leave", Sysmark: "1"},
		{CodeCode: "0001", CodeSubcode: "04", CodeSubname: "Compensatory Leave"},
		{CodeCode: "0090", CodeSubcode: "01", CodeSubname: "General"},
		{CodeCode: "0090", CodeSubcode: "02", CodeSubname: "HR Notice"},
		{CodeCode: "0090", CodeSubcode: "03", CodeSubname: "IT Notice"},
	}
	for _, c := range defaults {
		c.UsedMark = "1"
		c.UpdUserID = "seed"
		c.UpdDate = stamp.Format("20060102")
		c.UpdTime = stamp.Format("15:04:05")
		key := c.CodeCode + "/" + c.CodeSubcode
		create(ctx, logger, "code", key, func() error { return repo.Create(ctx, &c) })
	}
}

func create(ctx context.Context, logger *zap.Logger, kind, id string, fn func() error) {
	err := fn()
	switch {
	case err == nil:
		logger.Info("seeded", zap.String(kind, id))
	case errors.Is(err, models.ErrDuplicate):
		logger.Info("exists, skipping", zap.String(kind, id))
	default:
		logger.Error("seed failed", zap.String(kind, id), zap.Error(err))
	}
}

func main() {
	app := fx.New(
		fx.Provide(
			config.LoadConfig,
			logger.NewLogger,
			database.NewDatabase,
			role.NewRoleRepository,
			sysuser.NewUserRepository,
			menu.NewMenuRepository,
			codetable.NewCodeRepository,
		),
		fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: log}
		}),
		fx.Invoke(Seed),
	)

	app.Run()
}
