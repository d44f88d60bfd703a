package domain

import (
	"fmt"
	"strings"
)

// Role enumerates account roles.
type Role string

const (
	RolePatient    Role = "patient"
	RoleDoctor     Role = "doctor"
	RoleAdmin      Role = "admin"
	RolePharmacist Role = "pharmacist"
)

// Roles returns every role in the enumeration.
func Roles() []Role {
	return []Role{RolePatient, RoleDoctor, RoleAdmin, RolePharmacist}
}

// Valid reports whether r belongs to the enumeration.
func (r Role) Valid() bool {
	switch r {
	case RolePatient, RoleDoctor, RoleAdmin, RolePharmacist:
		return true
	}
	return false
}

// ParseRole converts raw input into a Role.
func ParseRole(raw string) (Role, bool) {
	role := Role(strings.ToLower(strings.TrimSpace(raw)))
	return role, role.Valid()
}

// RoleAreas maps each role to the single path prefix it navigates under.
var RoleAreas = map[Role]string{
	RolePatient:    "/patient",
	RoleDoctor:     "/doctor",
	RoleAdmin:      "/admin",
	RolePharmacist: "/pharmacist",
}

// ValidateAreas checks that areas covers every role with a distinct, non-overlapping prefix.
func ValidateAreas(areas map[Role]string) error {
	for _, role := range Roles() {
		area, ok := areas[role]
		if !ok {
			return fmt.Errorf("role %q has no area", role)
		}
		if area == "" || !strings.HasPrefix(area, "/") || area == "/" {
			return fmt.Errorf("role %q has invalid area %q", role, area)
		}
	}
	for role, area := range areas {
		if !role.Valid() {
			return fmt.Errorf("area %q mapped to unknown role %q", area, role)
		}
		for other, otherArea := range areas {
			if role == other {
				continue
			}
			if area == otherArea || strings.HasPrefix(otherArea, area+"/") {
				return fmt.Errorf("areas of %q and %q overlap", role, other)
			}
		}
	}
	return nil
}

// InArea reports whether path lies under area on a segment boundary.
func InArea(path, area string) bool {
	return path == area || strings.HasPrefix(path, area+"/")
}
