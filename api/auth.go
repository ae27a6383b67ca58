package api

import (
	"net/http"
	"venuebook/db"
	"venuebook/service/security"
	"venuebook/util"

	"github.com/gin-gonic/gin"
)

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type TokenResponse struct {
	Token string  `json:"token"`
	Role  db.Role `json:"role"`
}

// AdminLogin godoc
// @Summary      Admin login
// @Description  Authenticates an admin by username and password and returns a JWT access token.
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request body LoginRequest true "Admin credentials"
// @Success      200 {object} TokenResponse "Login success"
// @Failure      400 {object} ErrorResponse "Invalid request body"
// @Failure      401 {object} ErrorResponse "Invalid username or password"
// @Failure      500 {object} ErrorResponse "Internal server error"
// @Router       /api/admin/login [post]
func (server *Server) AdminLogin(ctx *gin.Context) {
	// Get request body and validate
	var req LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.LOGGER.Warn("POST /api/admin/login: failed to bind request body", "error", err)
		ctx.JSON(http.StatusBadRequest, ErrorResponse{"Invalid request body"})
		return
	}

	admin, err := server.queries.GetAdminByUsername(ctx, req.Username)
	if err != nil || !security.BcryptCompare(admin.Password, req.Password) {
		// Same message for unknown username and wrong password
		ctx.JSON(http.StatusUnauthorized, ErrorResponse{"Invalid username or password"})
		return
	}

	token, err := server.jwtService.CreateToken(admin.ID, db.RoleAdmin)
	if err != nil {
		util.LOGGER.Error("POST /api/admin/login: failed to create token", "error", err)
		ctx.JSON(http.StatusInternalServerError, ErrorResponse{"Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, TokenResponse{Token: token, Role: db.RoleAdmin})
}

type OwnerRegisterRequest struct {
	FirstName  string `json:"first_name" binding:"required"`
	LastName   string `json:"last_name" binding:"required"`
	Username   string `json:"username" binding:"required"`
	Password   string `json:"password" binding:"required,min=6"`
	CardNumber string `json:"card_number" binding:"required"`
}

// OwnerRegister godoc
// @Summary      Register a venue owner account
// @Description  Creates a venue owner account. New owners start active with a 30-day trial subscription.
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request body OwnerRegisterRequest true "Owner registration information"
// @Success      200 {object} db.VenueOwner "Account created successfully"
// @Failure      400 {object} ErrorResponse "Invalid request body"
// @Failure      409 {object} ErrorResponse "Username already exists"
// @Failure      500 {object} ErrorResponse "Internal server error"
// @Router       /api/owner/register [post]
func (server *Server) OwnerRegister(ctx *gin.Context) {
	// Get request body and validate
	var req OwnerRegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.LOGGER.Warn("POST /api/owner/register: failed to bind request body", "error", err)
		ctx.JSON(http.StatusBadRequest, ErrorResponse{"Invalid request body"})
		return
	}

	hashed, err := security.BcryptHash(req.Password)
	if err != nil {
		util.LOGGER.Error("POST /api/owner/register: failed to hash password", "error", err)
		ctx.JSON(http.StatusInternalServerError, ErrorResponse{"Internal server error"})
		return
	}

	owner := &db.VenueOwner{
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Username:   req.Username,
		Password:   hashed,
		CardNumber: req.CardNumber,
	}
	if err := server.queries.CreateOwner(ctx, owner); err != nil {
		server.StorageError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, owner)
}

// OwnerLogin godoc
// @Summary      Venue owner login
// @Description  Authenticates a venue owner by username and password and returns a JWT access token.
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request body LoginRequest true "Owner credentials"
// @Success      200 {object} TokenResponse "Login success"
// @Failure      400 {object} ErrorResponse "Invalid request body"
// @Failure      401 {object} ErrorResponse "Invalid username or password"
// @Failure      500 {object} ErrorResponse "Internal server error"
// @Router       /api/owner/login [post]
func (server *Server) OwnerLogin(ctx *gin.Context) {
	// Get request body and validate
	var req LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.LOGGER.Warn("POST /api/owner/login: failed to bind request body", "error", err)
		ctx.JSON(http.StatusBadRequest, ErrorResponse{"Invalid request body"})
		return
	}

	owner, err := server.queries.GetOwnerByUsername(ctx, req.Username)
	if err != nil || !security.BcryptCompare(owner.Password, req.Password) {
		ctx.JSON(http.StatusUnauthorized, ErrorResponse{"Invalid username or password"})
		return
	}

	token, err := server.jwtService.CreateToken(owner.ID, db.RoleOwner)
	if err != nil {
		util.LOGGER.Error("POST /api/owner/login: failed to create token", "error", err)
		ctx.JSON(http.StatusInternalServerError, ErrorResponse{"Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, TokenResponse{Token: token, Role: db.RoleOwner})
}

type UserRegisterRequest struct {
	FirstName   string `json:"first_name" binding:"required"`
	LastName    string `json:"last_name" binding:"required"`
	PhoneNumber string `json:"phone_number" binding:"required"`
}

// UserRegister godoc
// @Summary      Register an end-user account
// @Description  Creates an end-user account identified by phone number. No password is involved.
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request body UserRegisterRequest true "User registration information"
// @Success      200 {object} db.User "Account created successfully"
// @Failure      400 {object} ErrorResponse "Invalid request body"
// @Failure      409 {object} ErrorResponse "Phone number already exists"
// @Failure      500 {object} ErrorResponse "Internal server error"
// @Router       /api/user/register [post]
func (server *Server) UserRegister(ctx *gin.Context) {
	// Get request body and validate
	var req UserRegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.LOGGER.Warn("POST /api/user/register: failed to bind request body", "error", err)
		ctx.JSON(http.StatusBadRequest, ErrorResponse{"Invalid request body"})
		return
	}

	user := &db.User{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		PhoneNumber: req.PhoneNumber,
	}
	if err := server.queries.CreateUser(ctx, user); err != nil {
		server.StorageError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, user)
}

type UserLoginRequest struct {
	PhoneNumber string `json:"phone_number" binding:"required"`
}

// UserLogin godoc
// @Summary      End-user login
// @Description  Authenticates an end user by phone number and returns a JWT access token.
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request body UserLoginRequest true "User phone number"
// @Success      200 {object} TokenResponse "Login success"
// @Failure      400 {object} ErrorResponse "Invalid request body"
// @Failure      401 {object} ErrorResponse "Phone number not registered"
// @Failure      500 {object} ErrorResponse "Internal server error"
// @Router       /api/user/login [post]
func (server *Server) UserLogin(ctx *gin.Context) {
	// Get request body and validate
	var req UserLoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.LOGGER.Warn("POST /api/user/login: failed to bind request body", "error", err)
		ctx.JSON(http.StatusBadRequest, ErrorResponse{"Invalid request body"})
		return
	}

	user, err := server.queries.GetUserByPhone(ctx, req.PhoneNumber)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, ErrorResponse{"Phone number not registered"})
		return
	}

	token, err := server.jwtService.CreateToken(user.ID, db.RoleUser)
	if err != nil {
		util.LOGGER.Error("POST /api/user/login: failed to create token", "error", err)
		ctx.JSON(http.StatusInternalServerError, ErrorResponse{"Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, TokenResponse{Token: token, Role: db.RoleUser})
}
