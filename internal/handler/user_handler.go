package handler

import (
	"movie_review/internal/service"
	"movie_review/pkg/response"

	"github.com/gofiber/fiber/v2"
)

type IUserHandler interface {
	SaveUser(c *fiber.Ctx) error
	ListUsers(c *fiber.Ctx) error
}

type UserHandler struct {
	userService service.IUserService
}

func NewUserHandler(userService service.IUserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

//------------------------------------------
//------------------------------------------

type saveUserReq struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
	Action   string `json:"action" form:"action"`
}

//------------------------------------------
//------------------------------------------

// SaveUser godoc
//
//	@Summary		Save User
//	@Description	upsert (default), insert or delete a credential row. Passwords are stored as bcrypt hashes.
//	@Tags			User
//	@Accept			json,x-www-form-urlencoded
//	@Param			username	formData	string	true	"username"
//	@Param			password	formData	string	false	"required unless action is delete"
//	@Param			action		formData	string	false	"upsert, insert or delete"
//	@Success		200			{object}	model.UserSaveRes
//	@Success		200			{object}	model.UserDeleteRes
//	@Failure		400,500,503	{object}	response.ResponseErrorModel
//	@Router			/v1/users [post]
func (u *UserHandler) SaveUser(c *fiber.Ctx) error {
	var req saveUserReq
	if err := c.BodyParser(&req); err != nil {
		return response.ResponseError(c, response.BadRequestBody, fiber.StatusBadRequest)
	}

	res, err := u.userService.SaveUser(c.UserContext(), service.SaveUserInput{
		Username: req.Username,
		Password: req.Password,
		Action:   req.Action,
	})
	if err != nil {
		return serviceError(c, err, response.HashFailed)
	}
	return response.ResponseOKWithData(c, res)
}

// ListUsers godoc
//
//	@Summary		List Users
//	@Description	recent users, newest first. Password hashes are never included.
//	@Tags			User
//	@Param			limit	query		int	false	"limit, default 50"
//	@Success		200		{object}	model.UserListRes
//	@Failure		500,503	{object}	response.ResponseErrorModel
//	@Router			/v1/users [get]
func (u *UserHandler) ListUsers(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", service.DefaultUserListLimit)

	res, err := u.userService.ListUsers(c.UserContext(), limit)
	if err != nil {
		return serviceError(c, err, response.ServerError)
	}
	return response.ResponseOKWithData(c, res)
}
