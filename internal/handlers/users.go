package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/foodtrack/internal/models"
	"github.com/localnerve/foodtrack/internal/services"
	"github.com/localnerve/foodtrack/internal/utils"
)

// UserHandler handles registration, login and the user's own profile
type UserHandler struct {
	Credentials *services.CredentialService
	Sessions    *services.SessionService
}

// LoginInput is a login request. Username may also be an email address.
type LoginInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse carries the logged in user and a bearer token
type LoginResponse struct {
	User  models.UserView `json:"user"`
	Token string          `json:"token"`
}

// Register handles POST /api/users
// @Summary Register a user
// @Description Create an account. Usernames are 5-15 alphanumeric characters.
// @Tags Users
// @Accept json
// @Produce json
// @Param user body services.RegisterInput true "New user"
// @Success 201 {object} models.UserView
// @Failure 409 {object} utils.ErrorResponseStruct
// @Failure 422 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /users [post]
func (h *UserHandler) Register(c *fiber.Ctx) error {
	var input services.RegisterInput
	if err := bind(c, &input); err != nil {
		return err
	}

	user, err := h.Credentials.Register(c.UserContext(), input)
	if err != nil {
		return err
	}

	return utils.SuccessResponse(c, user.View(), fiber.StatusCreated)
}

// Login handles POST /api/login
// @Summary Log in
// @Description Verify a username (or email) and password and issue a bearer token
// @Tags Users
// @Accept json
// @Produce json
// @Param credentials body LoginInput true "Credentials"
// @Success 200 {object} LoginResponse
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /login [post]
func (h *UserHandler) Login(c *fiber.Ctx) error {
	var input LoginInput
	if err := bind(c, &input); err != nil {
		return err
	}

	user, err := h.Credentials.Verify(c.UserContext(), input.Username, input.Password)
	if err != nil {
		return err
	}

	token, err := h.Sessions.Issue(user)
	if err != nil {
		return err
	}

	return utils.SuccessResponse(c, LoginResponse{User: user.View(), Token: token}, fiber.StatusOK)
}

// GetUser handles GET /api/users/:username
// @Summary Get a user
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Param username path string true "Username"
// @Success 200 {object} models.UserView
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /users/{username} [get]
func (h *UserHandler) GetUser(c *fiber.Ctx) error {
	user, err := h.Credentials.Get(c.UserContext(), c.Params("username"))
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, user.View(), fiber.StatusOK)
}

// UpdateUser handles PUT /api/users/:username
// @Summary Update a user's profile
// @Description Only the supplied fields are changed
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param username path string true "Username"
// @Param profile body services.ProfilePatch true "Profile fields"
// @Success 200 {object} models.UserView
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 409 {object} utils.ErrorResponseStruct
// @Failure 422 {object} utils.ErrorResponseStruct
// @Router /users/{username} [put]
func (h *UserHandler) UpdateUser(c *fiber.Ctx) error {
	var patch services.ProfilePatch
	if err := bind(c, &patch); err != nil {
		return err
	}

	user, err := h.Credentials.UpdateProfile(c.UserContext(), c.Params("username"), patch)
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, user.View(), fiber.StatusOK)
}

// DeleteUser handles DELETE /api/users/:username
// @Summary Deregister a user
// @Description Removes the user, their diary and saved meals
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Param username path string true "Username"
// @Success 200 {object} utils.MessageResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /users/{username} [delete]
func (h *UserHandler) DeleteUser(c *fiber.Ctx) error {
	username := c.Params("username")
	if err := h.Credentials.Deregister(c.UserContext(), username); err != nil {
		return err
	}
	return utils.MessageResponse(c, fmt.Sprintf("%s was deleted", username))
}

// SaveMeal handles POST /api/users/:username/meals/:ref
// @Summary Save a meal reference
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Param username path string true "Username"
// @Param ref path string true "Food or meal reference"
// @Success 200 {object} models.UserView
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Router /users/{username}/meals/{ref} [post]
func (h *UserHandler) SaveMeal(c *fiber.Ctx) error {
	user, err := h.Credentials.SaveMeal(c.UserContext(), c.Params("username"), param(c, "ref"))
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, user.View(), fiber.StatusOK)
}

// UnsaveMeal handles DELETE /api/users/:username/meals/:ref
// @Summary Remove a saved meal reference
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Param username path string true "Username"
// @Param ref path string true "Food or meal reference"
// @Success 200 {object} models.UserView
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Router /users/{username}/meals/{ref} [delete]
func (h *UserHandler) UnsaveMeal(c *fiber.Ctx) error {
	user, err := h.Credentials.UnsaveMeal(c.UserContext(), c.Params("username"), param(c, "ref"))
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, user.View(), fiber.StatusOK)
}
