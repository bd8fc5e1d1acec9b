package controllers

import (
	"GestionClinique/handlers"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	authHandler *handlers.AuthHandler
}

func NewAuthController(authHandler *handlers.AuthHandler) *AuthController {
	return &AuthController{authHandler: authHandler}
}

// RegisterRoutes registers the authentication endpoints.
func (ac *AuthController) RegisterRoutes(router *gin.Engine) {
	router.POST("/auth/login", ac.authHandler.Login)
	router.POST("/auth/refresh", ac.authHandler.Refresh)
}
