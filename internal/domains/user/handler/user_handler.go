package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"library-backend/internal/domains/user"
	"library-backend/internal/shared/response"
)

type UserHandler struct {
	service user.Service
}

func NewUserHandler(svc user.Service) *UserHandler {
	return &UserHandler{
		service: svc,
	}
}

// List handles GET /users. With ?byUsername= it returns a single-element
// list holding that user.
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.service.ListOrByUsername(c.Request.Context(), c.Query("byUsername"))
	if err != nil {
		response.ErrorResponse(c, user.ToHTTPStatus(err), user.ToErrorCode(err), err.Error())
		return
	}
	response.Success(c, http.StatusOK, users)
}

// Search handles GET /users/search with optional name, birthdateFrom and
// birthdateTo (YYYY-MM-DD) query parameters.
func (h *UserHandler) Search(c *gin.Context) {
	filter := user.Filter{Name: c.Query("name")}

	if raw := c.Query("birthdateFrom"); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			response.BadRequest(c, "birthdateFrom must be YYYY-MM-DD")
			return
		}
		filter.BirthdateFrom = &t
	}
	if raw := c.Query("birthdateTo"); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			response.BadRequest(c, "birthdateTo must be YYYY-MM-DD")
			return
		}
		filter.BirthdateTo = &t
	}

	users, err := h.service.Search(c.Request.Context(), filter)
	if err != nil {
		response.ErrorResponse(c, user.ToHTTPStatus(err), user.ToErrorCode(err), err.Error())
		return
	}
	response.Success(c, http.StatusOK, users)
}

// GetByID handles GET /users/:id.
func (h *UserHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid user id")
		return
	}

	u, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		response.ErrorResponse(c, user.ToHTTPStatus(err), user.ToErrorCode(err), err.Error())
		return
	}
	response.Success(c, http.StatusOK, u)
}

// Create handles POST /users.
func (h *UserHandler) Create(c *gin.Context) {
	var req user.CreateRequest
	if err := c.BindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	created, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.ErrorResponse(c, user.ToHTTPStatus(err), user.ToErrorCode(err), err.Error())
		return
	}
	response.Success(c, http.StatusCreated, created)
}

// Update handles PUT /users/:id. The body id must match the path id.
func (h *UserHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid user id")
		return
	}

	var req user.UpdateRequest
	if err := c.BindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	updated, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		response.ErrorResponse(c, user.ToHTTPStatus(err), user.ToErrorCode(err), err.Error())
		return
	}
	response.Success(c, http.StatusOK, updated)
}

// Delete handles DELETE /users/:id.
func (h *UserHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid user id")
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		response.ErrorResponse(c, user.ToHTTPStatus(err), user.ToErrorCode(err), err.Error())
		return
	}
	c.Status(http.StatusNoContent)
}

// AddBook handles POST /users/:id/addBook.
func (h *UserHandler) AddBook(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid user id")
		return
	}

	var req user.AddBookRequest
	if err := c.BindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	u, err := h.service.AddBook(c.Request.Context(), id, req.BookID)
	if err != nil {
		response.ErrorResponse(c, user.ToHTTPStatus(err), user.ToErrorCode(err), err.Error())
		return
	}
	response.Success(c, http.StatusOK, u)
}

// RemoveBook handles DELETE /users/:id/removeBook. Removing a book the
// user does not hold still answers 200 with the unchanged library.
func (h *UserHandler) RemoveBook(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid user id")
		return
	}

	var req user.RemoveBookRequest
	if err := c.BindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	u, err := h.service.RemoveBook(c.Request.Context(), id, req.Author)
	if err != nil {
		response.ErrorResponse(c, user.ToHTTPStatus(err), user.ToErrorCode(err), err.Error())
		return
	}
	response.Success(c, http.StatusOK, u)
}

// ReplaceLibrary handles PUT /users/:id/library.
func (h *UserHandler) ReplaceLibrary(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid user id")
		return
	}

	var req user.ReplaceLibraryRequest
	if err := c.BindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	u, err := h.service.ReplaceLibrary(c.Request.Context(), id, req.BookIDs)
	if err != nil {
		response.ErrorResponse(c, user.ToHTTPStatus(err), user.ToErrorCode(err), err.Error())
		return
	}
	response.Success(c, http.StatusOK, u)
}

// Login handles POST /auth/login.
func (h *UserHandler) Login(c *gin.Context) {
	var req user.LoginRequest
	if err := c.BindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	resp, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		response.ErrorResponse(c, user.ToHTTPStatus(err), user.ToErrorCode(err), err.Error())
		return
	}
	response.Success(c, http.StatusOK, resp)
}
