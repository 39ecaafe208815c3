package validate

import (
	"net/http/httptest"
	"strings"
	"testing"
)

func parseBody(t *testing.T, body string) *Input {
	t.Helper()
	r := httptest.NewRequest("POST", "/api/auth/register", strings.NewReader(body))
	in, err := Parse(r)
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	return in
}

var credentialRules = []Rule{
	Required("email", "Invalid value"),
	Email("email", "a valid email is required"),
	Required("password", "Invalid value"),
	MinLength("password", 8, "a valid password is required"),
}

// 校验阶段必须收集所有违规项，而不是在第一条失败时短路
func TestRun_CollectsAllViolations(t *testing.T) {
	tests := []struct {
		name string
		body string
		want int
	}{
		{"empty body", `{}`, 4},
		{"missing email", `{"password":"samplepassword"}`, 2},
		{"invalid email format", `{"email":"test3gmail.com","password":"samplepassword"}`, 1},
		{"missing password", `{"email":"test1234@gmail.com"}`, 2},
		{"short password", `{"email":"test3@gmail.com","password":"sam"}`, 1},
		{"valid", `{"email":"test1234@gmail.com","password":"samplepassword"}`, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := Run(parseBody(t, tt.body), credentialRules)
			if len(errs) != tt.want {
				t.Errorf("got %d errors %v, want %d", len(errs), errs, tt.want)
			}
		})
	}
}

func TestEmail_Message(t *testing.T) {
	errs := Run(parseBody(t, `{"email":"nope","password":"samplepassword"}`), credentialRules)
	if len(errs) != 1 {
		t.Fatalf("got %d errors, want 1", len(errs))
	}
	if errs[0].Message != "a valid email is required" {
		t.Errorf("got message %q", errs[0].Message)
	}
}

func TestMinLength_Message(t *testing.T) {
	errs := Run(parseBody(t, `{"email":"a@b.com","password":"sam"}`), credentialRules)
	if len(errs) != 1 {
		t.Fatalf("got %d errors, want 1", len(errs))
	}
	if errs[0].Message != "a valid password is required" {
		t.Errorf("got message %q", errs[0].Message)
	}
}

func TestOneOf_RequiredEnum(t *testing.T) {
	rules := []Rule{OneOf("role", []string{"admin", "user"}, "A valid role is required")}

	if errs := Run(parseBody(t, `{"role":"admin"}`), rules); len(errs) != 0 {
		t.Errorf("admin should pass, got %v", errs)
	}
	if errs := Run(parseBody(t, `{"role":"userr"}`), rules); len(errs) != 1 {
		t.Errorf("invalid role should fail once, got %v", errs)
	}
	// 缺失同样违规
	if errs := Run(parseBody(t, `{}`), rules); len(errs) != 1 {
		t.Errorf("missing role should fail once, got %v", errs)
	}
}

func TestOptionalOneOf_SkipsAbsent(t *testing.T) {
	rules := []Rule{OptionalOneOf("role", []string{"admin", "user"}, "Invalid role")}

	if errs := Run(parseBody(t, `{}`), rules); len(errs) != 0 {
		t.Errorf("absent role should pass, got %v", errs)
	}
	if errs := Run(parseBody(t, `{"role":"adminer"}`), rules); len(errs) != 1 || errs[0].Message != "Invalid role" {
		t.Errorf("present invalid role should fail, got %v", errs)
	}
}

func TestQueryOptionalOneOf(t *testing.T) {
	rules := []Rule{QueryOptionalOneOf("role", []string{"admin", "user"}, "Invalid role query")}

	r := httptest.NewRequest("GET", "/api/users", nil)
	in, _ := Parse(r)
	if errs := Run(in, rules); len(errs) != 0 {
		t.Errorf("absent query should pass, got %v", errs)
	}

	r = httptest.NewRequest("GET", "/api/users?role=superuser", nil)
	in, _ = Parse(r)
	if errs := Run(in, rules); len(errs) != 1 || errs[0].Message != "Invalid role query" {
		t.Errorf("invalid query should fail, got %v", errs)
	}
}

func TestObjectIDParam(t *testing.T) {
	rules := []Rule{ObjectIDParam("id", "Invalid ID parameter")}

	r := httptest.NewRequest("GET", "/api/user/648e10c5453611c8d3c4dc11", nil)
	r.SetPathValue("id", "648e10c5453611c8d3c4dc11")
	in, _ := Parse(r)
	if errs := Run(in, rules); len(errs) != 0 {
		t.Errorf("valid ObjectID should pass, got %v", errs)
	}

	r = httptest.NewRequest("GET", "/api/user/not-an-id", nil)
	r.SetPathValue("id", "not-an-id")
	in, _ = Parse(r)
	if errs := Run(in, rules); len(errs) != 1 || errs[0].Message != "Invalid ID parameter" {
		t.Errorf("invalid ObjectID should fail, got %v", errs)
	}
}

func TestAllowedFields(t *testing.T) {
	rules := []Rule{AllowedFields("firstName", "lastName", "role")}

	if errs := Run(parseBody(t, `{"firstName":"a","role":"user"}`), rules); len(errs) != 0 {
		t.Errorf("allowed fields should pass, got %v", errs)
	}

	errs := Run(parseBody(t, `{"nickname":"x","color":"blue"}`), rules)
	if len(errs) != 1 {
		t.Fatalf("unexpected fields should aggregate to one error, got %v", errs)
	}
	if errs[0].Message != "Invalid fields: color, nickname" {
		t.Errorf("got message %q", errs[0].Message)
	}
}

func TestParse_EmptyBodyIsEmptyObject(t *testing.T) {
	r := httptest.NewRequest("POST", "/api/auth/register", nil)
	in, err := Parse(r)
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if len(in.Body) != 0 {
		t.Errorf("expected empty body map, got %v", in.Body)
	}
}

func TestParse_MalformedJSON(t *testing.T) {
	r := httptest.NewRequest("POST", "/api/auth/register", strings.NewReader(`{"email":`))
	if _, err := Parse(r); err == nil {
		t.Error("expected error for malformed JSON")
	}
}
