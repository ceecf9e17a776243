package main

import (
	"context"
	"fmt"
	"log"
	"time"

	common_api "go-hr/internal/common/api"
	"go-hr/internal/config"
	"go-hr/internal/database"
	"go-hr/internal/features/announcement"
	"go-hr/internal/features/annualleave"
	"go-hr/internal/features/attendance"
	"go-hr/internal/features/auth"
	"go-hr/internal/features/codetable"
	"go-hr/internal/features/importer"
	"go-hr/internal/features/member"
	"go-hr/internal/features/menu"
	"go-hr/internal/features/project"
	"go-hr/internal/features/role"
	"go-hr/internal/features/system"
	"go-hr/internal/features/sysuser"
	"go-hr/internal/logger"
	"go-hr/internal/middleware"
	"go-hr/pkg/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
)

// NewFiberServer creates the Fiber app with the global middleware stack.
func NewFiberServer(cfg *config.Config) *fiber.App {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	app.Use(middleware.CORSMiddleware())
	app.Use(middleware.CSRFMiddleware(cfg.CSRFSecret))

	return app
}

// AsRoute is a helper function to reduce boilerplate.
// It tags the constructor so Fx knows to add it to the "routes" group.
func AsRoute(f any) any {
	return fx.Annotate(
		f,
		fx.As(new(common_api.Route)),
		fx.ResultTags(`group:"routes"`),
	)
}

// RegisterAllRoutes takes the group "routes" (slice of interfaces)
// and calls Setup() on each one.
func RegisterAllRoutes(app *fiber.App, routes []common_api.Route) {
	for _, route := range routes {
		route.Setup(app)
	}
	log.Printf("Registered %d route groups\n", len(routes))
}

// RegisterAllRoutesWithAnnotation wraps RegisterAllRoutes with fx annotations
var RegisterAllRoutesWithAnnotation = fx.Annotate(
	RegisterAllRoutes,
	fx.ParamTags(``, `group:"routes"`),
)

// StartServer creates a lifecycle hook to start Fiber in a goroutine
// and shut it down when the app exits.
func StartServer(lc fx.Lifecycle, app *fiber.App, cfg *config.Config) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				port := fmt.Sprintf(":%s", cfg.Port)
				if err := app.Listen(port); err != nil {
					log.Fatalf("Server failed to start: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return app.Shutdown()
		},
	})
}

// InitializeIndexes ensures the unique indexes behind every keyed
// collection exist before traffic arrives.
func InitializeIndexes(
	lc fx.Lifecycle,
	members member.MemberRepository,
	attendances attendance.AttendanceRepository,
	balances annualleave.BalanceRepository,
	projects project.ProjectRepository,
	codes codetable.CodeRepository,
	menus menu.MenuRepository,
	roles role.RoleRepository,
	users sysuser.UserRepository,
	announcements announcement.AnnouncementRepository,
) {
	type indexed interface {
		EnsureIndexes(ctx context.Context) error
	}
	repos := map[string]indexed{
		"members":       members,
		"attendance":    attendances,
		"annual_leave":  balances,
		"projects":      projects,
		"codes":         codes,
		"menus":         menus,
		"roles":         roles,
		"sys_users":     users,
		"announcements": announcements,
	}
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
				defer cancel()
				for name, repo := range repos {
					if err := repo.EnsureIndexes(ctx); err != nil {
						log.Printf("Failed to ensure %s indexes: %v", name, err)
					}
				}
			}()
			return nil
		},
	})
}

func main() {
	app := fx.New(
		fx.Provide(
			config.LoadConfig,
			logger.NewLogger,
			NewFiberServer,
			database.NewDatabase,

			// Repositories
			member.NewMemberRepository,
			attendance.NewAttendanceRepository,
			annualleave.NewBalanceRepository,
			project.NewProjectRepository,
			codetable.NewCodeRepository,
			menu.NewMenuRepository,
			role.NewRoleRepository,
			sysuser.NewUserRepository,
			announcement.NewAnnouncementRepository,
			importer.NewPostgresLegacySource,

			// Services
			member.NewMemberService,
			attendance.NewAttendanceService,
			annualleave.NewBalanceService,
			project.NewProjectService,
			codetable.NewCodeService,
			menu.NewMenuService,
			role.NewRoleService,
			sysuser.NewUserService,
			announcement.NewAnnouncementService,
			importer.NewImporterService,
			auth.NewAuthService,

			// Interface adapters for the narrow cross-feature contracts
			func(r member.MemberRepository) attendance.MemberDirectory { return r },
			func(r member.MemberRepository) sysuser.MemberDirectory { return r },
			func(r member.MemberRepository) auth.MemberDirectory { return r },
			func(r member.MemberRepository) importer.MemberStore { return r },
			func(s role.RoleService) sysuser.RoleChecker { return s },
			func(r codetable.CodeRepository) announcement.CategorySource { return r },

			// Controllers
			member.NewMemberController,
			attendance.NewAttendanceController,
			annualleave.NewBalanceController,
			project.NewProjectController,
			codetable.NewCodeController,
			menu.NewMenuController,
			role.NewRoleController,
			sysuser.NewUserController,
			announcement.NewAnnouncementController,
			importer.NewImporterController,
			auth.NewAuthController,

			// API Routes
			AsRoute(member.NewMemberApi),
			AsRoute(attendance.NewAttendanceApi),
			AsRoute(annualleave.NewBalanceApi),
			AsRoute(project.NewProjectApi),
			AsRoute(codetable.NewCodeApi),
			AsRoute(menu.NewMenuApi),
			AsRoute(role.NewRoleApi),
			AsRoute(sysuser.NewUserApi),
			AsRoute(announcement.NewAnnouncementApi),
			AsRoute(importer.NewImporterApi),
			AsRoute(auth.NewAuthApi),
			AsRoute(system.NewHealthApi),
		),
		fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: log}
		}),
		fx.Invoke(
			func(cfg *config.Config) { utils.SetSecret(cfg.JWTSecret) },
			RegisterAllRoutesWithAnnotation,
			StartServer,
			annualleave.NewRolloverJob,
			announcement.NewSweepJob,
			InitializeIndexes,
		),
	)

	app.Run()
}
