package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/goliatone/go-formbuilder/pkg/builder"
	"github.com/goliatone/go-formbuilder/pkg/codec"
	"github.com/goliatone/go-formbuilder/pkg/formtree"
	"github.com/goliatone/go-formbuilder/pkg/schema"
)

// Response is the envelope of every JSON answer.
type Response struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// Application error codes; the HTTP status is code / 100.
const (
	CodeOK            = 0
	CodeBadRequest    = 40000
	CodeNotFound      = 40400
	CodeConflict      = 40900
	CodeConfirm       = 40901
	CodeFloor         = 40902
	CodeUnprocessable = 42200
	CodeInternal      = 50000
)

// Success writes a 200 envelope.
func Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, Response{Code: CodeOK, Message: "success", Data: data})
}

// Created writes a 201 envelope.
func Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, Response{Code: CodeOK, Message: "success", Data: data})
}

// Error writes an error envelope whose status derives from code.
func Error(c *gin.Context, code int, message string) {
	status := code / 100
	if status < 100 || status > 599 {
		status = http.StatusInternalServerError
	}
	c.AbortWithStatusJSON(status, Response{Code: code, Message: message})
}

// BadRequest writes a 400 envelope.
func BadRequest(c *gin.Context, message string) {
	Error(c, CodeBadRequest, message)
}

// Fail maps err onto an error envelope.
func Fail(c *gin.Context, err error) {
	var photoErr *formtree.PhotoError
	switch {
	case errors.As(err, &photoErr):
		Error(c, CodeUnprocessable, photoErr.Message)
	case errors.Is(err, formtree.ErrFieldNotFound):
		Error(c, CodeNotFound, err.Error())
	case errors.Is(err, formtree.ErrLastTableRow), errors.Is(err, formtree.ErrLastTableColumn):
		Error(c, CodeFloor, err.Error())
	case errors.Is(err, formtree.ErrDuplicateName), errors.Is(err, schema.ErrDuplicateProperty):
		Error(c, CodeConflict, err.Error())
	case errors.Is(err, formtree.ErrIndexOutOfRange),
		errors.Is(err, formtree.ErrNotContainer),
		errors.Is(err, formtree.ErrNotTable),
		errors.Is(err, formtree.ErrNotPhoto),
		errors.Is(err, formtree.ErrCyclicMove),
		errors.Is(err, formtree.ErrNilField),
		errors.Is(err, formtree.ErrEmptyName),
		errors.Is(err, formtree.ErrNotEditing),
		errors.Is(err, codec.ErrNotArray),
		errors.Is(err, codec.ErrUnknownFormat):
		BadRequest(c, err.Error())
	case errors.Is(err, builder.ErrDeclined):
		Error(c, CodeConfirm, err.Error())
	default:
		Error(c, CodeInternal, err.Error())
	}
}
