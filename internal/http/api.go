// Package http wires the GraphQL endpoint, the image upload route, and
// static image serving into a gin router.
package http

import (
	"fmt"
	"net/http"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/graphql-go/graphql"
	"github.com/graphql-go/graphql/gqlerrors"
	"github.com/sirupsen/logrus"

	"blog-api/internal/apperr"
	"blog-api/internal/auth"
	"blog-api/internal/storage"
)

var allowedImageTypes = map[string]bool{
	"image/png":  true,
	"image/jpg":  true,
	"image/jpeg": true,
}

// Handler serves the HTTP surface of the blog backend.
type Handler struct {
	schema graphql.Schema
	files  storage.Service
	logger *logrus.Logger
}

func NewHandler(schema graphql.Schema, files storage.Service, logger *logrus.Logger) *Handler {
	return &Handler{
		schema: schema,
		files:  files,
		logger: logger,
	}
}

func (h *Handler) RegisterRoutes(router *gin.Engine, tokens *auth.TokenService, imagesDir string) {
	router.Use(corsMiddleware())
	router.Use(auth.Middleware(tokens))

	router.Static("/"+storage.PublicPrefix, imagesDir)
	router.PUT("/post-image", h.uploadImage)
	router.POST("/graphql", h.graphQL)
	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": "ok"})
	})
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

type graphQLRequest struct {
	Query         string                 `json:"query"`
	OperationName string                 `json:"operationName"`
	Variables     map[string]interface{} `json:"variables"`
}

// GraphQLError is the uniform failure envelope for operation-level errors.
type GraphQLError struct {
	Message string              `json:"message"`
	Status  int                 `json:"status"`
	Data    []apperr.FieldError `json:"data,omitempty"`
}

func (h *Handler) graphQL(c *gin.Context) {
	var req graphQLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, GraphQLError{Message: "invalid request body", Status: http.StatusBadRequest})
		return
	}

	result := graphql.Do(graphql.Params{
		Schema:         h.schema,
		RequestString:  req.Query,
		OperationName:  req.OperationName,
		VariableValues: req.Variables,
		Context:        c.Request.Context(),
	})

	resp := gin.H{"data": result.Data}
	if len(result.Errors) > 0 {
		errs := make([]GraphQLError, len(result.Errors))
		for i, fe := range result.Errors {
			errs[i] = formatError(fe)
		}
		resp["errors"] = errs
	}
	c.JSON(http.StatusOK, resp)
}

func formatError(fe gqlerrors.FormattedError) GraphQLError {
	out := GraphQLError{Message: fe.Message, Status: http.StatusInternalServerError}
	if err := resolverError(fe); err != nil {
		appErr := apperr.From(err)
		out.Message = appErr.Message
		out.Status = appErr.Status
		out.Data = appErr.Data
	}
	return out
}

// resolverError digs the error a resolver returned out of the wrappers the
// executor layers around it. Query-level errors (bad syntax, unknown
// fields) have no resolver error and keep the default 500 envelope.
func resolverError(fe gqlerrors.FormattedError) error {
	err := fe.OriginalError()
	for err != nil {
		switch e := err.(type) {
		case *gqlerrors.Error:
			err = e.OriginalError
		case gqlerrors.FormattedError:
			err = e.OriginalError()
		default:
			return err
		}
	}
	return nil
}

func (h *Handler) uploadImage(c *gin.Context) {
	ac := auth.FromContext(c.Request.Context())
	if !ac.Authenticated {
		c.JSON(http.StatusUnauthorized, GraphQLError{Message: "not authenticated", Status: http.StatusUnauthorized})
		return
	}

	file, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"message": "no file provided"})
		return
	}

	contentType := file.Header.Get("Content-Type")
	if !allowedImageTypes[contentType] {
		c.JSON(http.StatusUnprocessableEntity, GraphQLError{Message: "unsupported image type", Status: http.StatusUnprocessableEntity})
		return
	}

	// replacing an image orphans the previous file; losing it is acceptable
	if oldPath := c.PostForm("oldPath"); oldPath != "" {
		if err := h.files.Remove(c.Request.Context(), oldPath); err != nil {
			h.logger.Warnf("remove old image %s: %v", oldPath, err)
		}
	}

	src, err := file.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, GraphQLError{Message: "could not read file", Status: http.StatusInternalServerError})
		return
	}
	defer src.Close()

	name := fmt.Sprintf("%s-%s%s",
		time.Now().UTC().Format("2006-01-02T15-04-05"),
		uuid.NewString(),
		filepath.Ext(file.Filename),
	)
	storedPath, err := h.files.Save(c.Request.Context(), name, contentType, src)
	if err != nil {
		h.logger.Errorf("store image: %v", err)
		c.JSON(http.StatusInternalServerError, GraphQLError{Message: "could not store file", Status: http.StatusInternalServerError})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "file stored.", "filePath": storedPath})
}
