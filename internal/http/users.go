package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/avasiliev/userbase/internal/auth"
	"github.com/avasiliev/userbase/internal/database/users"
)

type updateUserRequest struct {
	Email    *string `json:"email"`
	Password *string `json:"password"`
}

// UsersController handles user CRUD endpoints. All routes are protected by
// the auth middleware.
type UsersController struct {
	store  UserStore
	hasher *auth.Hasher
}

// NewUsersController creates a new UsersController.
func NewUsersController(store UserStore, hasher *auth.Hasher) *UsersController {
	return &UsersController{
		store:  store,
		hasher: hasher,
	}
}

// List returns all users as {id,email} projections.
func (uc *UsersController) List(c *gin.Context) {
	records, err := uc.store.List()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list users"})
		return
	}

	resp := make([]userResponse, 0, len(records))
	for i := range records {
		resp = append(resp, toUserResponse(&records[i]))
	}
	c.JSON(http.StatusOK, resp)
}

// Get returns a single user by id.
func (uc *UsersController) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	user, err := uc.store.GetByID(id)
	if err != nil {
		if errors.Is(err, users.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load user"})
		return
	}

	c.JSON(http.StatusOK, toUserResponse(user))
}

// Update applies a partial update. A supplied password is re-hashed before it
// reaches the store.
func (uc *UsersController) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req updateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	update := users.UserUpdate{Email: req.Email}
	if req.Password != nil {
		hash, err := uc.hasher.Hash(*req.Password)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		update.PasswordHash = &hash
	}

	user, err := uc.store.Update(id, update)
	if err != nil {
		switch {
		case errors.Is(err, users.ErrNotFound),
			errors.Is(err, users.ErrDuplicateEmail):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update user"})
		}
		return
	}

	c.JSON(http.StatusOK, toUserResponse(user))
}

// Delete removes a user by id.
func (uc *UsersController) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := uc.store.Delete(id); err != nil {
		if errors.Is(err, users.ErrNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "user not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete user"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "user deleted"})
}

// parseID extracts the :id path parameter, writing a 400 on failure.
func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return 0, false
	}
	return uint(id), true
}
