package handler

import (
	"net/http"
	"strconv"

	"app/internal/config"
	"app/internal/domain/model"
	"app/internal/middleware"
	"app/internal/repository"
	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

// 管理者の審査API
type AdminProductHandler struct {
	uc *usecase.ModerationUsecase
}

// DI
func NewAdminProductHandler(uc *usecase.ModerationUsecase) *AdminProductHandler {
	return &AdminProductHandler{uc: uc}
}

type rejectRequest struct {
	Reason string `json:"reason"`
}

// /admin/products を登録
func (h *AdminProductHandler) RegisterRoutes(e *echo.Echo, cfg config.Config, userRepo repository.UserRepository) {
	g := e.Group("/admin/products")
	g.Use(middleware.AuthJWT(cfg))
	g.Use(middleware.TokenVersionGuard(userRepo))
	g.Use(middleware.RequireRole(string(model.RoleAdmin)))

	g.GET("", h.list)
	g.GET("/trash", h.listTrash)
	g.POST("/:id/approve", h.approve)
	g.POST("/:id/reject", h.reject)
	g.POST("/:id/revert", h.revert)
	g.POST("/:id/trash", h.trash)
	g.POST("/:id/restore", h.restore)
	g.DELETE("/:id", h.purge)
}

func (h *AdminProductHandler) list(c echo.Context) error {
	status := c.QueryParam("status")
	if status == "" {
		status = string(model.ProductStatusPending)
	}

	items, err := h.uc.ListByStatus(c.Request().Context(), status)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, items)
}

func (h *AdminProductHandler) listTrash(c echo.Context) error {
	items, err := h.uc.ListTrash(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, items)
}

func (h *AdminProductHandler) approve(c echo.Context) error {
	adminID, id, errResp := h.actorAndID(c)
	if errResp != nil {
		return errResp(c)
	}

	if err := h.uc.Approve(c.Request().Context(), adminID, id); err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, MessageResponse{Message: "approved"})
}

func (h *AdminProductHandler) reject(c echo.Context) error {
	adminID, id, errResp := h.actorAndID(c)
	if errResp != nil {
		return errResp(c)
	}

	var req rejectRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	if err := h.uc.Reject(c.Request().Context(), adminID, id, req.Reason); err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, MessageResponse{Message: "rejected"})
}

func (h *AdminProductHandler) revert(c echo.Context) error {
	adminID, id, errResp := h.actorAndID(c)
	if errResp != nil {
		return errResp(c)
	}

	if err := h.uc.Revert(c.Request().Context(), adminID, id); err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, MessageResponse{Message: "reverted"})
}

func (h *AdminProductHandler) trash(c echo.Context) error {
	adminID, id, errResp := h.actorAndID(c)
	if errResp != nil {
		return errResp(c)
	}

	var req ConfirmRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	if err := h.uc.MoveToTrash(c.Request().Context(), adminID, id, req.Confirm); err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, MessageResponse{Message: "trashed"})
}

func (h *AdminProductHandler) restore(c echo.Context) error {
	adminID, id, errResp := h.actorAndID(c)
	if errResp != nil {
		return errResp(c)
	}

	if err := h.uc.Restore(c.Request().Context(), adminID, id); err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, MessageResponse{Message: "restored"})
}

func (h *AdminProductHandler) purge(c echo.Context) error {
	adminID, id, errResp := h.actorAndID(c)
	if errResp != nil {
		return errResp(c)
	}

	var req ConfirmRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	if err := h.uc.PermanentDelete(c.Request().Context(), adminID, id, req.Confirm); err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, MessageResponse{Message: "deleted"})
}

// 操作者IDとパスの:idをまとめて取り出す
func (h *AdminProductHandler) actorAndID(c echo.Context) (int64, int64, func(echo.Context) error) {
	adminID, ok := getUserIDFromContext(c)
	if !ok {
		return 0, 0, func(c echo.Context) error {
			return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		}
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, 0, func(c echo.Context) error {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
		}
	}

	return adminID, id, nil
}
