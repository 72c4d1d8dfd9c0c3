package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/taskflow-io/taskflow/internal/modules/serializer"
	"github.com/taskflow-io/taskflow/internal/modules/service"
)

type AuthHandler struct {
	svc service.AuthService
}

func NewAuthHandler(s service.AuthService) *AuthHandler {
	return &AuthHandler{svc: s}
}

type RegisterReq struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type LoginReq struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Register godoc
//
//	@Summary		Register
//	@Description	Create a user account and return a bearer token
//	@Tags			auth
//	@Accept			json
//	@Produce		json
//	@Param			payload	body	handler.RegisterReq	true	"Register payload"
//	@Success		201	{object}	serializer.Response{data=service.AuthOutput}
//	@Router			/auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	req := RegisterReq{}
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	out, err := h.svc.Register(c.Request.Context(), service.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		respondErr(c, err)
		return
	}

	c.JSON(http.StatusCreated, serializer.OK(out))
}

// Login godoc
//
//	@Summary		Login
//	@Description	Exchange credentials for a bearer token
//	@Tags			auth
//	@Accept			json
//	@Produce		json
//	@Param			payload	body	handler.LoginReq	true	"Login payload"
//	@Success		200	{object}	serializer.Response{data=service.AuthOutput}
//	@Router			/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	req := LoginReq{}
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	out, err := h.svc.Login(c.Request.Context(), service.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		respondErr(c, err)
		return
	}

	c.JSON(http.StatusOK, serializer.OK(out))
}

// Me godoc
//
//	@Summary		Current user
//	@Description	Return the authenticated user's profile
//	@Tags			auth
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=model.User}
//	@Router			/auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, serializer.AuthErr(""))
		return
	}

	user, err := h.svc.GetUser(c.Request.Context(), userID)
	if err != nil {
		respondErr(c, err)
		return
	}

	c.JSON(http.StatusOK, serializer.OK(user))
}
