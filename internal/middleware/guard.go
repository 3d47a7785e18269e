package middleware

import (
	"github.com/drmnef/storefront/internal/config"
	"github.com/drmnef/storefront/internal/models"
	"github.com/drmnef/storefront/internal/services"
	"github.com/gofiber/fiber/v2"
)

// Guard gates navigation to protected views. It expects OptionalJWT to have
// run first so an authenticated caller is already in context.
//
// Client-protected: anonymous visitors are redirected to the login page;
// any authenticated identity passes.
// Admin-only: anonymous visitors go to the admin login; authenticated
// non-admins are silently rerouted to the client dashboard rather than shown
// an error; admins pass. The admin decision always re-resolves the role from
// storage, never from the cached hint.
type Guard struct {
	resolver *services.RoleResolver
	cfg      *config.Config
}

func NewGuard(resolver *services.RoleResolver, cfg *config.Config) *Guard {
	return &Guard{resolver: resolver, cfg: cfg}
}

// RequireClient protects routes any authenticated user may view.
func (g *Guard) RequireClient() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, err := GetUserID(c); err != nil {
			return c.Redirect(g.cfg.LoginPath, fiber.StatusFound)
		}
		return c.Next()
	}
}

// RequireAdmin protects admin-only routes.
func (g *Guard) RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := GetUserID(c)
		if err != nil {
			return c.Redirect(g.cfg.AdminLoginPath, fiber.StatusFound)
		}

		role := g.resolver.Resolve(c.Context(), userID)
		if role != models.RoleAdmin {
			return c.Redirect(g.cfg.DashboardPath, fiber.StatusFound)
		}
		return c.Next()
	}
}
