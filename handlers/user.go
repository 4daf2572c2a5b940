package handlers

import (
	"net/http"

	"sacredgreeks/models"
	"sacredgreeks/services/storage"
	"sacredgreeks/services/user"
	"sacredgreeks/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type UserHandler struct {
	UserService user.UserService
	Storage     storage.StorageService
}

func NewUserHandler(userSvc user.UserService, store storage.StorageService) *UserHandler {
	return &UserHandler{UserService: userSvc, Storage: store}
}

// RegisterHandler handles POST /api/auth/register.
func (h *UserHandler) RegisterHandler(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	resp, err := h.UserService.Register(c.Request.Context(), req, deviceFromContext(c))
	if err != nil {
		respondError(c, err, "Registration failed")
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// LoginHandler handles POST /api/auth/login.
func (h *UserHandler) LoginHandler(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	resp, err := h.UserService.Authenticate(c.Request.Context(), req.Email, req.Password, deviceFromContext(c))
	if err != nil {
		respondError(c, err, "Login failed")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// LogoutHandler signs out the device making the request.
func (h *UserHandler) LogoutHandler(c *gin.Context) {
	if err := h.UserService.SignOut(c.Request.Context(), currentUserID(c), currentDeviceID(c)); err != nil {
		respondError(c, err, "Failed to sign out")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Signed out"})
}

func (h *UserHandler) GetProfileHandler(c *gin.Context) {
	usr, err := h.UserService.GetProfile(c.Request.Context(), currentUserID(c))
	if err != nil {
		respondError(c, err, "Failed to retrieve profile")
		return
	}
	c.JSON(http.StatusOK, usr)
}

func (h *UserHandler) UpdateProfileHandler(c *gin.Context) {
	var req models.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	usr, err := h.UserService.UpdateProfile(c.Request.Context(), currentUserID(c), req)
	if err != nil {
		respondError(c, err, "Failed to update profile")
		return
	}
	c.JSON(http.StatusOK, usr)
}

func (h *UserHandler) DeleteAccountHandler(c *gin.Context) {
	if err := h.UserService.DeleteAccount(c.Request.Context(), currentUserID(c)); err != nil {
		respondError(c, err, "Failed to delete account")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Account deleted"})
}

// UploadAvatarHandler accepts a multipart "avatar" file and stores it under the avatars folder.
func (h *UserHandler) UploadAvatarHandler(c *gin.Context) {
	logger := utils.GetLogger()
	userID := currentUserID(c)
	if h.Storage == nil {
		utils.JSONError(c, http.StatusServiceUnavailable, "Media storage is not configured", "")
		return
	}

	fileHeader, err := c.FormFile("avatar")
	if err != nil {
		badRequest(c, err)
		return
	}
	if fileHeader.Size > storage.MaxImageBytes {
		respondError(c, storage.ErrTooLarge, "Upload failed")
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		logger.Error("Failed to open avatar upload", zap.String("userID", userID), zap.Error(err))
		utils.JSONError(c, http.StatusBadRequest, "Could not read upload", "")
		return
	}
	defer file.Close()

	url, publicID, err := h.Storage.UploadImage(c.Request.Context(), file, storage.AvatarFolder, userID)
	if err != nil {
		respondError(c, err, "Upload failed")
		return
	}
	usr, err := h.UserService.SetAvatar(c.Request.Context(), userID, url, publicID)
	if err != nil {
		respondError(c, err, "Failed to update avatar")
		return
	}
	c.JSON(http.StatusOK, usr)
}

func (h *UserHandler) ChangePasswordHandler(c *gin.Context) {
	var req models.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	err := h.UserService.ChangePassword(c.Request.Context(), currentUserID(c), req.CurrentPassword, req.NewPassword, currentDeviceID(c))
	if err != nil {
		respondError(c, err, "Failed to change password")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Password updated. Other devices have been signed out."})
}

func (h *UserHandler) ListDevicesHandler(c *gin.Context) {
	devices, err := h.UserService.ListDevices(c.Request.Context(), currentUserID(c))
	if err != nil {
		respondError(c, err, "Failed to list devices")
		return
	}
	c.JSON(http.StatusOK, gin.H{"devices": devices, "currentDeviceId": currentDeviceID(c)})
}

// SignOutDeviceHandler handles DELETE /api/me/devices/:deviceId.
func (h *UserHandler) SignOutDeviceHandler(c *gin.Context) {
	if err := h.UserService.SignOut(c.Request.Context(), currentUserID(c), c.Param("deviceId")); err != nil {
		respondError(c, err, "Failed to sign out device")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Device signed out"})
}

func (h *UserHandler) SignOutOtherDevicesHandler(c *gin.Context) {
	if err := h.UserService.SignOutOtherDevices(c.Request.Context(), currentUserID(c), currentDeviceID(c)); err != nil {
		respondError(c, err, "Failed to sign out other devices")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Other devices signed out"})
}
