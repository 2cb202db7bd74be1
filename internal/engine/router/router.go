/*
Copyright 2025 Stride Team

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package router

import (
	"errors"
	"time"

	"github.com/bytedance/sonic"
	"github.com/go-stride/stride/internal/engine/consts"
	"github.com/go-stride/stride/internal/engine/model"
	"github.com/go-stride/stride/internal/engine/repo"
	"github.com/go-stride/stride/internal/engine/service"
	"github.com/go-stride/stride/internal/pkg/notify"
	"github.com/go-stride/stride/pkg/ctx"
	httpx "github.com/go-stride/stride/pkg/http"
	"github.com/go-stride/stride/pkg/http/jwt"
	"github.com/go-stride/stride/pkg/http/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

type Router struct {
	Http *httpx.Http
	Ctx  *ctx.Context

	authService    *service.AuthService
	userService    *service.UserService
	projectService *service.ProjectService
	teamService    *service.TeamService
	taskService    *service.TaskService
}

func NewRouter(httpConf *httpx.Http, appCtx *ctx.Context, dispatcher *notify.Dispatcher) *Router {
	userRepo := repo.NewUserRepo(appCtx)
	projectRepo := repo.NewProjectRepo(appCtx)
	teamRepo := repo.NewTeamRepo(appCtx)
	taskRepo := repo.NewTaskRepo(appCtx)
	access := service.NewAccessResolver(teamRepo)

	return &Router{
		Http:           httpConf,
		Ctx:            appCtx,
		authService:    service.NewAuthService(userRepo, dispatcher, httpConf.Auth),
		userService:    service.NewUserService(userRepo),
		projectService: service.NewProjectService(projectRepo, teamRepo, taskRepo, userRepo, access, dispatcher),
		teamService:    service.NewTeamService(teamRepo, projectRepo, userRepo, access, dispatcher),
		taskService:    service.NewTaskService(taskRepo, projectRepo, teamRepo, userRepo, access, dispatcher),
	}
}

func (rt *Router) Router() *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "stride",
		JSONEncoder:  sonic.Marshal,
		JSONDecoder:  sonic.Unmarshal,
		ReadTimeout:  time.Duration(rt.Http.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(rt.Http.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(rt.Http.IdleTimeout) * time.Second,
	})

	app.Use(middleware.CorsMiddleware())
	app.Use(middleware.ExceptionMiddleware)
	app.Use(middleware.UnifiedResponseMiddleware())

	if rt.Http.AccessLog {
		app.Use(logger.New())
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	api := app.Group(rt.Http.ContextPath)
	auth := middleware.AuthorizationMiddleware(rt.Http.Auth.SecretKey, rt.Ctx.Redis)

	rt.authRouter(api, auth)
	rt.userRouter(api, auth)
	rt.projectRouter(api, auth)
	rt.teamRouter(api, auth)
	rt.taskRouter(api, auth)

	return app
}

// claims pulls the authenticated identity set by the authorization
// middleware.
func (rt *Router) claims(c *fiber.Ctx) *jwt.AuthClaims {
	claims, _ := c.Locals(consts.Claims).(*jwt.AuthClaims)
	return claims
}

// caller resolves the full acting user behind the request's claims.
func (rt *Router) caller(c *fiber.Ctx) (*model.UserInfo, error) {
	claims := rt.claims(c)
	if claims == nil {
		return nil, errors.New(httpx.Unauthorized.Msg)
	}
	return rt.userService.GetUserInfo(c.UserContext(), claims.UserId)
}
