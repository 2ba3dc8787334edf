package model

import "testing"

func TestValidRole(t *testing.T) {
	if !ValidRole(RoleUser) || !ValidRole(RoleAdmin) {
		t.Fatal("built-in roles must be valid")
	}
	for _, r := range []string{"", "root", "Admin", "USER"} {
		if ValidRole(r) {
			t.Errorf("role %q unexpectedly valid", r)
		}
	}
}

func TestUserValidate(t *testing.T) {
	u := User{Name: "Ana", Email: "ana@example.com", PasswordHash: "x", Role: RoleUser}
	if err := u.Validate(); err != nil {
		t.Fatalf("valid user rejected: %v", err)
	}

	cases := map[string]User{
		"blank name":   {Email: "a@b", PasswordHash: "x", Role: RoleUser},
		"blank email":  {Name: "Ana", PasswordHash: "x", Role: RoleUser},
		"missing hash": {Name: "Ana", Email: "a@b", Role: RoleUser},
		"bad role":     {Name: "Ana", Email: "a@b", PasswordHash: "x", Role: "root"},
	}
	for name, u := range cases {
		if err := u.Validate(); err == nil {
			t.Errorf("%s: expected validation error", name)
		}
	}
}
