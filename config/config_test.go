package config

import (
	"context"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/aws/aws-sdk-go-v2/service/ssm/types"
)

func TestLoadDefaults(t *testing.T) {
	s := Load(map[string]string{"DATABASE_URL": "postgres://localhost/x"})

	if s.Port != "8080" {
		t.Fatalf("expected default port 8080, got %q", s.Port)
	}
	if s.Database.Name != DefaultDBName {
		t.Fatalf("expected db name %q, got %q", DefaultDBName, s.Database.Name)
	}
	if !s.UsesDefaultSecret() {
		t.Fatalf("expected built-in jwt secret")
	}
	if s.JWT.TTL != 24*time.Hour {
		t.Fatalf("expected 24h token ttl, got %s", s.JWT.TTL)
	}
	if s.Admin.Username != "admin" || s.Admin.Password != DefaultAdminPassword {
		t.Fatalf("unexpected admin defaults: %+v", s.Admin)
	}
	if s.Cloudinary.Configured() {
		t.Fatalf("cloudinary should not be configured without credentials")
	}
	if len(s.AcceptedOrigin) != 1 || s.AcceptedOrigin[0] != "*" {
		t.Fatalf("unexpected origins %v", s.AcceptedOrigin)
	}
	if err := s.Validate(); err != nil {
		t.Fatalf("unexpected validate error: %v", err)
	}
}

func TestValidateRequiresDatabaseURL(t *testing.T) {
	if err := Load(map[string]string{}).Validate(); err != ErrMissingDatabaseURL {
		t.Fatalf("expected ErrMissingDatabaseURL, got %v", err)
	}
}

func TestGetters(t *testing.T) {
	c := map[string]string{
		"N":      "12",
		"BAD":    "x",
		"B":      "true",
		"EMPTY":  "",
		"ORIGIN": "https://a.example, ,https://b.example",
	}
	if GetInt(c, "N", 1) != 12 || GetInt(c, "BAD", 7) != 7 || GetInt(c, "MISSING", 3) != 3 {
		t.Fatalf("GetInt returned unexpected values")
	}
	if !GetBool(c, "B", false) || GetBool(c, "BAD", false) {
		t.Fatalf("GetBool returned unexpected values")
	}
	if GetString(c, "EMPTY", "fallback") != "fallback" {
		t.Fatalf("empty values should fall back")
	}
	got := GetList(c, "ORIGIN", nil)
	if len(got) != 2 || got[1] != "https://b.example" {
		t.Fatalf("GetList = %v", got)
	}
}

type fakeSSM struct {
	pages []*ssm.GetParametersByPathOutput
	calls int
}

func (f *fakeSSM) GetParametersByPath(ctx context.Context, in *ssm.GetParametersByPathInput, _ ...func(*ssm.Options)) (*ssm.GetParametersByPathOutput, error) {
	page := f.pages[f.calls]
	f.calls++
	return page, nil
}

func TestOverlaySSM(t *testing.T) {
	client := &fakeSSM{pages: []*ssm.GetParametersByPathOutput{
		{
			Parameters: []types.Parameter{{Name: aws.String("/gaffer/prod/jwt_secret_key"), Value: aws.String("s3cret")}},
			NextToken:  aws.String("next"),
		},
		{
			Parameters: []types.Parameter{{Name: aws.String("/gaffer/prod/emailjs-user-id"), Value: aws.String("user_1")}},
		},
	}}

	base := map[string]string{"JWT_SECRET_KEY": "old", "PORT": "9000"}
	merged, err := overlaySSM(context.Background(), client, "/gaffer/prod", base)
	if err != nil {
		t.Fatalf("overlay: %v", err)
	}
	if merged["JWT_SECRET_KEY"] != "s3cret" || merged["EMAILJS_USER_ID"] != "user_1" || merged["PORT"] != "9000" {
		t.Fatalf("unexpected merged map %v", merged)
	}
	if base["JWT_SECRET_KEY"] != "old" {
		t.Fatalf("base map must not be mutated")
	}
}
