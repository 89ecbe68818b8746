package handler

import (
	"net/http"
	"strconv"

	"github.com/adrianmtzc/campusmatch-backend/internal/delivery/http/middleware"
	"github.com/adrianmtzc/campusmatch-backend/internal/usecase/user"
	"github.com/gin-gonic/gin"
)

// maxPhotoSize caps uploads at 5 MiB.
const maxPhotoSize = 5 << 20

type UserHandler struct {
	userUseCase *user.UserUseCase
}

func NewUserHandler(userUseCase *user.UserUseCase) *UserHandler {
	return &UserHandler{
		userUseCase: userUseCase,
	}
}

// GetMyProfile returns the caller's profile
// @Summary Get my profile
// @Tags profile
// @Security BearerAuth
// @Produce json
// @Success 200 {object} domain.User
// @Router /profile/me [get]
func (h *UserHandler) GetMyProfile(c *gin.Context) {
	profile, err := h.userUseCase.GetProfile(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// GetProfile returns another user's profile
// @Summary Get profile by id
// @Tags profile
// @Security BearerAuth
// @Produce json
// @Param user_id path string true "User ID"
// @Success 200 {object} domain.User
// @Failure 404 {object} ErrorResponse
// @Router /profile/{user_id} [get]
func (h *UserHandler) GetProfile(c *gin.Context) {
	profile, err := h.userUseCase.GetProfile(c.Request.Context(), c.Param("user_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// UpdateMyProfile updates the caller's mutable fields
// @Summary Update my profile
// @Tags profile
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body user.UpdateProfileRequest true "Profile update"
// @Success 200 {object} domain.User
// @Failure 400 {object} ErrorResponse
// @Router /profile/me [put]
func (h *UserHandler) UpdateMyProfile(c *gin.Context) {
	var req user.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	profile, err := h.userUseCase.UpdateProfile(c.Request.Context(), middleware.UserID(c), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// UploadPhoto adds a profile photo
// @Summary Upload photo
// @Tags profile
// @Security BearerAuth
// @Accept multipart/form-data
// @Produce json
// @Param photo formData file true "Photo file"
// @Success 201 {object} domain.Photo
// @Failure 400 {object} ErrorResponse
// @Router /profile/photos [post]
func (h *UserHandler) UploadPhoto(c *gin.Context) {
	fileHeader, err := c.FormFile("photo")
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "photo file is required"})
		return
	}
	if fileHeader.Size > maxPhotoSize {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "photo exceeds 5MB limit"})
		return
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType != "image/jpeg" && contentType != "image/png" && contentType != "image/webp" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "photo must be jpeg, png or webp"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "cannot read photo file"})
		return
	}
	defer file.Close()

	photo, err := h.userUseCase.UploadPhoto(c.Request.Context(), middleware.UserID(c), fileHeader.Filename, contentType, file)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, photo)
}

// DeletePhoto removes a profile photo
// @Summary Delete photo
// @Tags profile
// @Security BearerAuth
// @Param photo_id path string true "Photo ID"
// @Success 200 {object} SuccessResponse
// @Router /profile/photos/{photo_id} [delete]
func (h *UserHandler) DeletePhoto(c *gin.Context) {
	if err := h.userUseCase.DeletePhoto(c.Request.Context(), middleware.UserID(c), c.Param("photo_id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "photo deleted"})
}

// Search lists users by campus and career
// @Summary Search users
// @Tags profile
// @Security BearerAuth
// @Produce json
// @Param campus query string false "Campus"
// @Param career query string false "Career"
// @Success 200 {array} domain.User
// @Router /users/search [get]
func (h *UserHandler) Search(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	users, err := h.userUseCase.Search(c.Request.Context(), c.Query("campus"), c.Query("career"), limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}
