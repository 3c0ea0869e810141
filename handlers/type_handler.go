package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"portfolio-blog-api/helper"
	"portfolio-blog-api/models"
	"portfolio-blog-api/services"
)

type TypeHandler struct {
	typeService services.TypeService
	Helper      *helper.HTTPHelper
}

func NewTypeHandler(typeService services.TypeService, h *helper.HTTPHelper) *TypeHandler {
	return &TypeHandler{typeService: typeService, Helper: h}
}

func (h *TypeHandler) GetTypes(c *gin.Context) {
	types, err := h.typeService.GetTypes()
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, types)
}

func (h *TypeHandler) GetType(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		h.Helper.SendBadRequest(c, "Invalid type ID")
		return
	}

	t, err := h.typeService.GetType(uint(id))
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, t)
}

func (h *TypeHandler) CreateType(c *gin.Context) {
	var req models.CreateTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Helper.SendBadRequest(c, "Invalid request body")
		return
	}
	if !h.Helper.ValidateStruct(c, req) {
		return
	}

	t, err := h.typeService.CreateType(req)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, t)
}

func (h *TypeHandler) UpdateType(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		h.Helper.SendBadRequest(c, "Invalid type ID")
		return
	}

	var req models.CreateTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Helper.SendBadRequest(c, "Invalid request body")
		return
	}
	if !h.Helper.ValidateStruct(c, req) {
		return
	}

	t, err := h.typeService.UpdateType(uint(id), req)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, t)
}

func (h *TypeHandler) DeleteType(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		h.Helper.SendBadRequest(c, "Invalid type ID")
		return
	}

	if err := h.typeService.DeleteType(uint(id)); err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Type deleted"})
}
