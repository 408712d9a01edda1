package auth

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// OnlyRolesSlice membatasi akses ke daftar role tertentu.
// Dipasang setelah AuthMiddleware (role sudah ada di Locals).
func OnlyRolesSlice(feature string, allowed []string) fiber.Handler {
	allowedSet := make(map[string]struct{}, len(allowed))
	for _, r := range allowed {
		allowedSet[r] = struct{}{}
	}
	return func(c *fiber.Ctx) error {
		role, _ := c.Locals("role").(string)
		if _, ok := allowedSet[role]; !ok {
			return fiber.NewError(fiber.StatusForbidden,
				fmt.Sprintf("❌ Role %q tidak boleh mengakses fitur %s.", role, feature))
		}
		return c.Next()
	}
}
