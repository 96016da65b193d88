package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"library-backend/internal/domains/book"
	"library-backend/internal/domains/catalog"
	"library-backend/internal/shared/response"
)

type BookHandler struct {
	service book.Service
	catalog catalog.Service
}

func NewBookHandler(svc book.Service, cat catalog.Service) *BookHandler {
	return &BookHandler{
		service: svc,
		catalog: cat,
	}
}

// List handles GET /books. With ?byAuthor= it returns a single-element
// list holding the first book by that author.
func (h *BookHandler) List(c *gin.Context) {
	books, err := h.service.ListOrByAuthor(c.Request.Context(), c.Query("byAuthor"))
	if err != nil {
		response.ErrorResponse(c, book.ToHTTPStatus(err), book.ToErrorCode(err), err.Error())
		return
	}
	response.Success(c, http.StatusOK, books)
}

// GetByISBN handles GET /books/byIsbn/:isbn. A locally known ISBN answers
// 200; an ISBN fetched and ingested from the external catalog answers 201.
func (h *BookHandler) GetByISBN(c *gin.Context) {
	b, ingested, err := h.catalog.ResolveByISBN(c.Request.Context(), c.Param("isbn"))
	if err != nil {
		response.ErrorResponse(c, catalog.ToHTTPStatus(err), catalog.ToErrorCode(err), err.Error())
		return
	}

	status := http.StatusOK
	if ingested {
		status = http.StatusCreated
	}
	response.Success(c, status, b)
}

// Search handles GET /books/search with optional publisher, genre and
// year query parameters.
func (h *BookHandler) Search(c *gin.Context) {
	filter := book.Filter{
		Publisher: c.Query("publisher"),
		Genre:     c.Query("genre"),
		Year:      c.Query("year"),
	}

	books, err := h.service.Search(c.Request.Context(), filter)
	if err != nil {
		response.ErrorResponse(c, book.ToHTTPStatus(err), book.ToErrorCode(err), err.Error())
		return
	}
	response.Success(c, http.StatusOK, books)
}

// GetByID handles GET /books/:id.
func (h *BookHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid book id")
		return
	}

	b, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		response.ErrorResponse(c, book.ToHTTPStatus(err), book.ToErrorCode(err), err.Error())
		return
	}
	response.Success(c, http.StatusOK, b)
}

// Create handles POST /books.
func (h *BookHandler) Create(c *gin.Context) {
	var attrs book.Attributes
	if err := c.BindJSON(&attrs); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	created, err := h.service.Create(c.Request.Context(), attrs)
	if err != nil {
		response.ErrorResponse(c, book.ToHTTPStatus(err), book.ToErrorCode(err), err.Error())
		return
	}
	response.Success(c, http.StatusCreated, created)
}

// Update handles PUT /books/:id. The body id must match the path id.
func (h *BookHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid book id")
		return
	}

	var req book.UpdateRequest
	if err := c.BindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	updated, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		response.ErrorResponse(c, book.ToHTTPStatus(err), book.ToErrorCode(err), err.Error())
		return
	}
	response.Success(c, http.StatusOK, updated)
}

// Delete handles DELETE /books/:id.
func (h *BookHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid book id")
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		response.ErrorResponse(c, book.ToHTTPStatus(err), book.ToErrorCode(err), err.Error())
		return
	}
	c.Status(http.StatusNoContent)
}
