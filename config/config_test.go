package config

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/aws/aws-sdk-go-v2/service/ssm/types"

	"github.com/rpupo63/artist-portfolio-backend/errs"
)

func TestGetters(t *testing.T) {
	c := map[string]string{
		"NAME":    "portfolio",
		"EMPTY":   "",
		"COUNT":   " 12 ",
		"BAD":     "twelve",
		"ENABLED": "false",
		"LIST":    "https://a.example, ,https://b.example,",
	}

	if got := GetString(c, "NAME", "x"); got != "portfolio" {
		t.Errorf("GetString = %q", got)
	}
	if got := GetString(c, "EMPTY", "fallback"); got != "fallback" {
		t.Errorf("GetString on empty value = %q", got)
	}
	if got := GetString(nil, "NAME", "fallback"); got != "fallback" {
		t.Errorf("GetString on nil map = %q", got)
	}
	if got := GetInt(c, "COUNT", 1); got != 12 {
		t.Errorf("GetInt = %d", got)
	}
	if got := GetInt(c, "BAD", 7); got != 7 {
		t.Errorf("GetInt on invalid value = %d", got)
	}
	if got := GetBool(c, "ENABLED", true); got {
		t.Error("GetBool = true, want false")
	}
	if got := GetBool(c, "MISSING", true); !got {
		t.Error("GetBool default not applied")
	}
	want := []string{"https://a.example", "https://b.example"}
	if got := GetList(c, "LIST"); !reflect.DeepEqual(got, want) {
		t.Errorf("GetList = %v, want %v", got, want)
	}
}

func TestLoadDefaults(t *testing.T) {
	s, err := Load(map[string]string{})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s.Port != "8080" || s.DataDir != "data" || s.PublicDir != "public" {
		t.Fatalf("unexpected defaults: %+v", s)
	}
	if s.MediaBackend != MediaBackendLocal || s.S3Prefix != "uploads" {
		t.Fatalf("unexpected media defaults: %+v", s)
	}
	if s.MaxUploadBytes != 64<<20 {
		t.Fatalf("MaxUploadBytes = %d", s.MaxUploadBytes)
	}
	if s.ReadTimeout != 180*time.Second || !s.MetricsEnabled {
		t.Fatalf("unexpected server defaults: %+v", s)
	}
	if s.AdminAPIKey != "" {
		t.Fatal("admin secret must not have a default")
	}
}

func TestLoadRejectsInvalidMediaBackend(t *testing.T) {
	_, err := Load(map[string]string{"MEDIA_BACKEND": "ftp"})
	if !errs.IsConfigError(err) {
		t.Fatalf("expected config error, got %v", err)
	}

	_, err = Load(map[string]string{"MEDIA_BACKEND": "S3"})
	if !errors.Is(err, errs.ErrEnvironmentVariable) {
		t.Fatalf("expected missing S3_BUCKET, got %v", err)
	}

	s, err := Load(map[string]string{"MEDIA_BACKEND": "s3", "S3_BUCKET": "assets"})
	if err != nil || s.MediaBackend != MediaBackendS3 {
		t.Fatalf("Load s3 = %+v, %v", s, err)
	}
}

type getParameterStub struct {
	input *ssm.GetParameterInput
	value *string
	err   error
}

func (s *getParameterStub) GetParameter(_ context.Context, params *ssm.GetParameterInput, _ ...func(*ssm.Options)) (*ssm.GetParameterOutput, error) {
	s.input = params
	if s.err != nil {
		return nil, s.err
	}
	return &ssm.GetParameterOutput{Parameter: &types.Parameter{Value: s.value}}, nil
}

func TestResolveAdminSecret(t *testing.T) {
	ctx := context.Background()

	secret, err := ResolveAdminSecret(ctx, Settings{AdminAPIKey: "from-env"}, nil)
	if err != nil || secret != "from-env" {
		t.Fatalf("env secret = %q, %v", secret, err)
	}

	secret, err = ResolveAdminSecret(ctx, Settings{}, nil)
	if err != nil || secret != "" {
		t.Fatalf("unset secret = %q, %v", secret, err)
	}

	stub := &getParameterStub{value: aws.String("from-ssm")}
	s := Settings{AdminAPIKey: "from-env", AdminAPIKeySSMParameter: "/portfolio/admin-key"}
	secret, err = ResolveAdminSecret(ctx, s, stub)
	if err != nil || secret != "from-ssm" {
		t.Fatalf("ssm secret = %q, %v", secret, err)
	}
	if aws.ToString(stub.input.Name) != "/portfolio/admin-key" || !aws.ToBool(stub.input.WithDecryption) {
		t.Fatalf("unexpected GetParameter input: %+v", stub.input)
	}

	if _, err := ResolveAdminSecret(ctx, s, &getParameterStub{err: errors.New("denied")}); !errs.IsConfigError(err) {
		t.Fatalf("expected config error, got %v", err)
	}
	if _, err := ResolveAdminSecret(ctx, s, &getParameterStub{}); !errs.IsConfigError(err) {
		t.Fatalf("expected config error for empty parameter, got %v", err)
	}
}
