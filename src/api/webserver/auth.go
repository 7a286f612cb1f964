package webserver

import (
	"net/http"
	"regexp"

	"github.com/gin-gonic/gin"
	"github.com/siiddhantt/ai-chat-assistant/src/api/apperr"
	"github.com/siiddhantt/ai-chat-assistant/src/api/data"
	"github.com/siiddhantt/ai-chat-assistant/src/api/types"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const bcryptCost = 12

var slugRE = regexp.MustCompile(`^[a-z0-9-]+$`)

type Auth struct {
	db     *gorm.DB
	secret []byte
}

func NewAuth(db *gorm.DB, secret []byte) Auth {
	return Auth{db: db, secret: secret}
}

func userPayload(u *types.User) gin.H {
	email := ""
	if u.Email != nil {
		email = *u.Email
	}
	return gin.H{"id": u.ID, "email": email, "name": u.Name, "role": u.Role}
}

func tenantPayload(t *types.Tenant) gin.H {
	return gin.H{"id": t.ID, "slug": t.Slug, "name": t.Name}
}

func (a Auth) OwnerRegister(c *gin.Context) {
	var req struct {
		Email        string `json:"email" binding:"required,email"`
		Password     string `json:"password" binding:"required"`
		Name         string `json:"name" binding:"required"`
		BusinessName string `json:"businessName" binding:"required"`
		BusinessSlug string `json:"businessSlug" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperr.New(http.StatusBadRequest, "MISSING_FIELDS", "All fields are required"))
		return
	}
	if len(req.Password) < 8 {
		respondError(c, apperr.New(http.StatusBadRequest, "WEAK_PASSWORD", "Password must be at least 8 characters"))
		return
	}
	if !slugRE.MatchString(req.BusinessSlug) {
		respondError(c, apperr.New(http.StatusBadRequest, "INVALID_SLUG",
			"Business slug can only contain lowercase letters, numbers, and hyphens"))
		return
	}

	users := data.Users{DB: a.db}
	tenants := data.Tenants{DB: a.db}

	if existing, err := users.FindByEmail(req.Email); err != nil {
		respondError(c, err)
		return
	} else if existing != nil {
		respondError(c, apperr.New(http.StatusConflict, "EMAIL_EXISTS", "Email already registered"))
		return
	}
	if existing, err := tenants.FindBySlug(req.BusinessSlug); err != nil {
		respondError(c, err)
		return
	} else if existing != nil {
		respondError(c, apperr.New(http.StatusConflict, "SLUG_EXISTS", "Business slug already taken"))
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		respondError(c, err)
		return
	}

	user := types.User{
		Email:        &req.Email,
		PasswordHash: string(hash),
		Name:         req.Name,
		Role:         types.RoleOwner,
		AuthProvider: "credentials",
	}
	if err := users.Create(&user); err != nil {
		respondError(c, err)
		return
	}

	tenant := types.Tenant{Slug: req.BusinessSlug, Name: req.BusinessName, OwnerID: user.ID}
	settings := types.TenantSettings{
		WelcomeMessage: "Welcome to " + req.BusinessName + "! How can we help you today?",
	}
	if err := tenants.Create(&tenant, settings); err != nil {
		respondError(c, err)
		return
	}

	token, err := issueJWT(a.secret, user.ID, tenant.ID, user.Role)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"token":  token,
		"user":   userPayload(&user),
		"tenant": tenantPayload(&tenant),
	})
}

func (a Auth) OwnerLogin(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperr.New(http.StatusBadRequest, "MISSING_CREDENTIALS", "Email and password are required"))
		return
	}

	users := data.Users{DB: a.db}
	user, err := users.FindByEmail(req.Email)
	if err != nil {
		respondError(c, err)
		return
	}
	if user == nil || user.PasswordHash == "" {
		respondError(c, apperr.New(http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid credentials"))
		return
	}
	if user.Role != types.RoleOwner && user.Role != types.RoleAdmin {
		respondError(c, apperr.New(http.StatusForbidden, "WRONG_LOGIN_TYPE", "Access denied. Use customer login."))
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		respondError(c, apperr.New(http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid credentials"))
		return
	}

	tenant, err := data.Tenants{DB: a.db}.FindByOwner(user.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	if tenant == nil {
		respondError(c, apperr.New(http.StatusNotFound, "NO_TENANT", "No business found for this account"))
		return
	}

	token, err := issueJWT(a.secret, user.ID, tenant.ID, user.Role)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"token":  token,
		"user":   userPayload(user),
		"tenant": tenantPayload(tenant),
	})
}

func (a Auth) CustomerRegister(c *gin.Context) {
	var req struct {
		Email     string `json:"email" binding:"required,email"`
		Password  string `json:"password" binding:"required"`
		Name      string `json:"name"`
		VisitorID string `json:"visitorId"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperr.New(http.StatusBadRequest, "MISSING_FIELDS", "Email and password are required"))
		return
	}
	if len(req.Password) < 8 {
		respondError(c, apperr.New(http.StatusBadRequest, "WEAK_PASSWORD", "Password must be at least 8 characters"))
		return
	}

	users := data.Users{DB: a.db}
	if existing, err := users.FindByEmail(req.Email); err != nil {
		respondError(c, err)
		return
	} else if existing != nil {
		respondError(c, apperr.New(http.StatusConflict, "EMAIL_EXISTS", "Email already registered"))
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		respondError(c, err)
		return
	}

	user := types.User{
		Email:         &req.Email,
		PasswordHash:  string(hash),
		Name:          req.Name,
		Role:          types.RoleCustomer,
		AuthProvider:  "credentials",
		FingerprintID: req.VisitorID,
	}
	if err := users.Create(&user); err != nil {
		respondError(c, err)
		return
	}

	if req.VisitorID != "" {
		if err := (data.Customers{DB: a.db}).LinkAllByVisitor(req.VisitorID, user.ID); err != nil {
			respondError(c, err)
			return
		}
	}

	token, err := issueJWT(a.secret, user.ID, "", user.Role)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"token": token, "user": userPayload(&user)})
}

func (a Auth) CustomerLogin(c *gin.Context) {
	var req struct {
		Email     string `json:"email" binding:"required"`
		Password  string `json:"password" binding:"required"`
		VisitorID string `json:"visitorId"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperr.New(http.StatusBadRequest, "MISSING_CREDENTIALS", "Email and password are required"))
		return
	}

	users := data.Users{DB: a.db}
	user, err := users.FindByEmail(req.Email)
	if err != nil {
		respondError(c, err)
		return
	}
	if user == nil || user.PasswordHash == "" {
		respondError(c, apperr.New(http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid credentials"))
		return
	}
	if user.Role != types.RoleCustomer {
		respondError(c, apperr.New(http.StatusForbidden, "WRONG_LOGIN_TYPE", "Access denied. Use owner login."))
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		respondError(c, apperr.New(http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid credentials"))
		return
	}

	if req.VisitorID != "" {
		if err := (data.Customers{DB: a.db}).LinkAllByVisitor(req.VisitorID, user.ID); err != nil {
			respondError(c, err)
			return
		}
	}

	token, err := issueJWT(a.secret, user.ID, "", user.Role)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token, "user": userPayload(user)})
}

func (a Auth) Me(c *gin.Context) {
	user, err := data.Users{DB: a.db}.FindByID(c.GetString(ctxUserID))
	if err != nil {
		respondError(c, err)
		return
	}
	if user == nil {
		respondError(c, apperr.New(http.StatusNotFound, "USER_NOT_FOUND", "User not found"))
		return
	}

	resp := gin.H{"user": userPayload(user)}

	if tenantID := c.GetString(ctxTenantID); tenantID != "" {
		tenant, err := data.Tenants{DB: a.db}.FindByID(tenantID)
		if err != nil {
			respondError(c, err)
			return
		}
		if tenant != nil {
			resp["tenant"] = gin.H{
				"id":       tenant.ID,
				"slug":     tenant.Slug,
				"name":     tenant.Name,
				"settings": data.Settings(tenant),
			}
		}
	}

	if user.Role == types.RoleCustomer {
		n, err := data.Customers{DB: a.db}.CountByUser(user.ID)
		if err != nil {
			respondError(c, err)
			return
		}
		resp["linkedTenants"] = n
	}

	c.JSON(http.StatusOK, resp)
}
