package auth

import (
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
)

// Application profiles carried in the JWT profileList claim.
const (
	ProfileAuthorities   = "Authorities"
	ProfileStandardUsers = "StandardUsers"
)

// Identity is the per-request caller context. It is extracted from the
// verified JWT on every request instead of being kept in any shared state.
type Identity struct {
	UuIdentity  string
	ProfileList []string
}

func (id Identity) HasProfile(profile string) bool {
	for _, p := range id.ProfileList {
		if p == profile {
			return true
		}
	}
	return false
}

// FromCtx reads the caller identity from the JWT that the jwt middleware
// stored in c.Locals("user"). Claims of unexpected shape are treated as
// an unauthenticated request.
func FromCtx(c *fiber.Ctx) (Identity, error) {
	u := c.Locals("user")
	if u == nil {
		return Identity{}, fiber.ErrUnauthorized
	}
	tok, ok := u.(*jwt.Token)
	if !ok {
		return Identity{}, fiber.ErrUnauthorized
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return Identity{}, fiber.ErrUnauthorized
	}

	raw, ok := claims["uuIdentity"]
	if !ok {
		return Identity{}, fiber.ErrUnauthorized
	}
	uuIdentity, ok := raw.(string)
	if !ok || uuIdentity == "" {
		return Identity{}, fiber.ErrUnauthorized
	}

	id := Identity{UuIdentity: uuIdentity}
	switch v := claims["profileList"].(type) {
	case []any:
		for _, p := range v {
			if s, ok := p.(string); ok {
				id.ProfileList = append(id.ProfileList, s)
			}
		}
	case []string:
		id.ProfileList = append(id.ProfileList, v...)
	}
	return id, nil
}

// Authorize reports whether the caller's profile set intersects the
// command's required set. An empty required set admits any caller that
// made it past the JWT middleware.
func Authorize(caller Identity, required []string) bool {
	if len(required) == 0 {
		return true
	}
	for _, r := range required {
		if caller.HasProfile(r) {
			return true
		}
	}
	return false
}
