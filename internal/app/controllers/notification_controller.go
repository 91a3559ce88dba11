package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/akash/placementhub/internal/app/models/dto"
	"github.com/akash/placementhub/internal/app/services"
	"github.com/akash/placementhub/internal/middleware"
)

// NotificationController handles notification and device token endpoints
type NotificationController struct {
	notificationService *services.NotificationService
}

// NewNotificationController creates a new NotificationController
func NewNotificationController(notificationService *services.NotificationService) *NotificationController {
	return &NotificationController{notificationService: notificationService}
}

// ListNotifications lists a student's notifications
// @Summary List notifications
// @Description Lists a student's notifications. Students see their own; admins pick a student with the studentId parameter.
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Param studentId query int false "Student ID (admins only)"
// @Param unread query bool false "Only unread notifications"
// @Param page query int false "Page number"
// @Param size query int false "Page size"
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedResponse} "Notifications"
// @Router /notifications [get]
func (c *NotificationController) ListNotifications(ctx *gin.Context) {
	var filter dto.NotificationListFilter
	if err := ctx.ShouldBindQuery(&filter); err != nil {
		bindError(ctx, "Invalid filter parameters", err)
		return
	}

	actor := middleware.Actor(ctx)
	studentID := actor.SubjectID
	if actor.Role.IsAdmin() {
		if filter.StudentID == 0 {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "studentId is required for admins")
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
			return
		}
		studentID = filter.StudentID
	}

	notifications, pagination, err := c.notificationService.ListMine(ctx, studentID, filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ok(ctx, dto.PaginatedResponse{Items: notifications, Pagination: *pagination})
}

// UnreadCount returns the acting student's unread notification count
// @Summary Unread notification count
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse "Unread count"
// @Router /notifications/unread-count [get]
func (c *NotificationController) UnreadCount(ctx *gin.Context) {
	actor := middleware.Actor(ctx)

	count, err := c.notificationService.UnreadCount(ctx, actor.SubjectID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ok(ctx, gin.H{"unread": count})
}

// MarkRead flags one notification as read
// @Summary Mark notification read
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Param id path int true "Notification ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Marked read"
// @Failure 404 {object} dto.ErrorResponse "Notification not found"
// @Router /notifications/{id}/read [put]
func (c *NotificationController) MarkRead(ctx *gin.Context) {
	id, valid := parseIDParam(ctx, "id")
	if !valid {
		return
	}

	actor := middleware.Actor(ctx)
	if err := c.notificationService.MarkRead(ctx, actor.SubjectID, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ok(ctx, dto.SuccessResponse{Message: "Notification marked read"})
}

// MarkAllRead flags all of the student's notifications as read
// @Summary Mark all notifications read
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse "Marked count"
// @Router /notifications/read-all [put]
func (c *NotificationController) MarkAllRead(ctx *gin.Context) {
	actor := middleware.Actor(ctx)

	count, err := c.notificationService.MarkAllRead(ctx, actor.SubjectID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ok(ctx, gin.H{"marked": count})
}

// Broadcast sends an announcement to a set of students
// @Summary Broadcast announcement
// @Description Sends an announcement to all students, selected branches, selected registration IDs, or the applicants of a drive. Branch admins always broadcast to their own branch.
// @Tags notifications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.BroadcastRequest true "Announcement and audience"
// @Success 200 {object} dto.APIResponse{data=dto.BroadcastResponse} "Recipient count"
// @Failure 400 {object} dto.ErrorResponse "Empty audience"
// @Router /notifications/broadcast [post]
func (c *NotificationController) Broadcast(ctx *gin.Context) {
	var req dto.BroadcastRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		bindError(ctx, "Invalid broadcast data", err)
		return
	}

	actor := middleware.Actor(ctx)
	resp, err := c.notificationService.Broadcast(ctx, req, actor.Role, actor.Branch)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ok(ctx, resp)
}

// UpdateNotification edits a stored notification
// @Summary Update notification
// @Tags notifications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Notification ID"
// @Param request body dto.UpdateNotificationRequest true "Notification fields"
// @Success 200 {object} dto.APIResponse{data=models.Notification} "Updated notification"
// @Failure 404 {object} dto.ErrorResponse "Notification not found"
// @Router /notifications/{id} [put]
func (c *NotificationController) UpdateNotification(ctx *gin.Context) {
	id, valid := parseIDParam(ctx, "id")
	if !valid {
		return
	}

	var req dto.UpdateNotificationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		bindError(ctx, "Invalid notification data", err)
		return
	}

	notification, err := c.notificationService.Update(ctx, id, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ok(ctx, notification)
}

// DeleteNotification removes a stored notification
// @Summary Delete notification
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Param id path int true "Notification ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Notification deleted"
// @Failure 404 {object} dto.ErrorResponse "Notification not found"
// @Router /notifications/{id} [delete]
func (c *NotificationController) DeleteNotification(ctx *gin.Context) {
	id, valid := parseIDParam(ctx, "id")
	if !valid {
		return
	}

	if err := c.notificationService.Delete(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ok(ctx, dto.SuccessResponse{Message: "Notification deleted"})
}

// BulkDeleteNotifications removes a set of notifications
// @Summary Bulk delete notifications
// @Tags notifications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.BulkDeleteNotificationsRequest true "Notification IDs"
// @Success 200 {object} dto.APIResponse "Deleted count"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Router /notifications/bulk-delete [post]
func (c *NotificationController) BulkDeleteNotifications(ctx *gin.Context) {
	var req dto.BulkDeleteNotificationsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		bindError(ctx, "Invalid bulk delete data", err)
		return
	}

	count, err := c.notificationService.DeleteBulk(ctx, req.IDs)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ok(ctx, gin.H{"deleted": count})
}

// RegisterDeviceToken stores a push token for the acting student
// @Summary Register device token
// @Description Stores a push token. Re-registering a known token refreshes it.
// @Tags device-tokens
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.RegisterDeviceTokenRequest true "Token and platform"
// @Success 201 {object} dto.APIResponse{data=models.DeviceToken} "Token registered"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Router /device-tokens [post]
func (c *NotificationController) RegisterDeviceToken(ctx *gin.Context) {
	var req dto.RegisterDeviceTokenRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		bindError(ctx, "Invalid device token data", err)
		return
	}

	actor := middleware.Actor(ctx)
	token, err := c.notificationService.RegisterDeviceToken(ctx, actor.SubjectID, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	created(ctx, token)
}

// RemoveDeviceToken deletes one of the student's push tokens
// @Summary Remove device token
// @Tags device-tokens
// @Produce json
// @Security BearerAuth
// @Param token path string true "Device token"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Token removed"
// @Router /device-tokens/{token} [delete]
func (c *NotificationController) RemoveDeviceToken(ctx *gin.Context) {
	actor := middleware.Actor(ctx)

	if err := c.notificationService.RemoveDeviceToken(ctx, actor.SubjectID, ctx.Param("token")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ok(ctx, dto.SuccessResponse{Message: "Device token removed"})
}
