package service

import (
	"context"
	"testing"
	"time"

	"github.com/go-stride/stride/internal/engine/model"
	httpx "github.com/go-stride/stride/pkg/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthEnv() (*env, *AuthService) {
	e := newEnv()
	auth := httpx.Auth{
		SecretKey:     "test-secret",
		AccessExpire:  time.Duration(15),
		RefreshExpire: time.Duration(60),
	}
	return e, NewAuthService(e.users, e.dispatcher, auth)
}

func TestRegister_ValidatesRoleAndUniqueness(t *testing.T) {
	e, authSvc := newAuthEnv()
	defer e.dispatcher.Close()
	ctx := context.Background()

	err := authSvc.Register(ctx, &model.Register{
		Username: "meredith",
		Email:    "meredith@example.com",
		Password: "hunter2",
		Role:     model.RoleProjectManager,
	})
	require.NoError(t, err)

	// role outside the closed set
	err = authSvc.Register(ctx, &model.Register{
		Username: "sam",
		Email:    "sam@example.com",
		Password: "hunter2",
		Role:     "Admin",
	})
	assert.Error(t, err)

	// duplicate username
	err = authSvc.Register(ctx, &model.Register{
		Username: "meredith",
		Email:    "other@example.com",
		Password: "hunter2",
		Role:     model.RoleTeamLead,
	})
	assert.Error(t, err)

	// duplicate email
	err = authSvc.Register(ctx, &model.Register{
		Username: "other",
		Email:    "meredith@example.com",
		Password: "hunter2",
		Role:     model.RoleTeamLead,
	})
	assert.Error(t, err)
}

func TestLogin_VerifiesPasswordAndIssuesTokens(t *testing.T) {
	e, authSvc := newAuthEnv()
	defer e.dispatcher.Close()
	ctx := context.Background()

	require.NoError(t, authSvc.Register(ctx, &model.Register{
		Username: "logan",
		Email:    "logan@example.com",
		Password: "correct horse",
		Role:     model.RoleTeamLead,
	}))

	_, err := authSvc.Login(ctx, &model.Login{Email: "logan@example.com", Password: "wrong"})
	assert.Error(t, err)

	_, err = authSvc.Login(ctx, &model.Login{Email: "nobody@example.com", Password: "correct horse"})
	assert.Error(t, err)

	resp, err := authSvc.Login(ctx, &model.Login{Email: "logan@example.com", Password: "correct horse"})
	require.NoError(t, err)
	assert.Equal(t, "logan", resp.UserInfo.Username)
	assert.Equal(t, model.RoleTeamLead, resp.UserInfo.Role)
	assert.NotEmpty(t, resp.Token["accessToken"])
	assert.NotEmpty(t, resp.Token["refreshToken"])

	// login by username works too
	_, err = authSvc.Login(ctx, &model.Login{Username: "logan", Password: "correct horse"})
	assert.NoError(t, err)
}
