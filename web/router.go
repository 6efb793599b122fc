// Package web serves an in-memory implementation of the blog list REST API.
// It backs `bloglist -serve` for local development and the integration tests.
package web

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/deemkeen/bloglist/domain"
	"github.com/deemkeen/bloglist/util"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

const (
	maxBodyBytes = 64 << 10
	userIdKey    = "userId"
)

// Options tunes the router
type Options struct {
	RequestsPerSecond float64
	Burst             int
}

func Router(store *Store, opts Options) *gin.Engine {
	g := gin.New()
	g.Use(gin.Recovery())
	g.Use(gzip.Gzip(gzip.DefaultCompression))
	g.Use(MaxBytesMiddleware(maxBodyBytes))
	if opts.RequestsPerSecond > 0 {
		burst := opts.Burst
		if burst < 1 {
			burst = 1
		}
		g.Use(RateLimitMiddleware(NewRateLimiter(rate.Limit(opts.RequestsPerSecond), burst)))
	}

	api := g.Group("/api")
	api.POST("/login", handleLogin(store))

	blogs := api.Group("/blogs")
	blogs.GET("", handleList(store))
	blogs.PUT("/:id", handleUpdate(store))
	blogs.POST("", requireToken(store), handleCreate(store))
	blogs.DELETE("/:id", requireToken(store), handleDelete(store))

	return g
}

// Serve runs the development server until it fails
func Serve(conf *util.AppConfig, store *Store) error {
	gin.SetMode(gin.ReleaseMode)
	addr := fmt.Sprintf(":%d", conf.Conf.HttpPort)
	log.Printf("Web: serving blog list API on %s (users: %s)", addr, strings.Join(store.Usernames(), ", "))
	return http.ListenAndServe(addr, Router(store, Options{RequestsPerSecond: 20, Burst: 40}))
}

func requireToken(store *Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(auth, "Bearer ")
		if !ok || token == "" {
			abortWithError(c, http.StatusUnauthorized, ErrInvalidToken)
			return
		}
		userId, err := store.UserForToken(token)
		if err != nil {
			abortWithError(c, http.StatusUnauthorized, err)
			return
		}
		c.Set(userIdKey, userId)
		c.Next()
	}
}

func handleLogin(store *Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var creds domain.Credentials
		if err := c.ShouldBindJSON(&creds); err != nil {
			abortWithError(c, http.StatusBadRequest, err)
			return
		}
		s, err := store.Login(creds.Username, creds.Password)
		if err != nil {
			abortWithError(c, http.StatusUnauthorized, err)
			return
		}
		c.JSON(http.StatusOK, s)
	}
}

func handleList(store *Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, store.List())
	}
}

func handleCreate(store *Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var draft domain.Draft
		if err := c.ShouldBindJSON(&draft); err != nil {
			abortWithError(c, http.StatusBadRequest, err)
			return
		}
		post, err := store.Create(c.GetString(userIdKey), draft)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, err)
			return
		}
		c.JSON(http.StatusCreated, post)
	}
}

func handleUpdate(store *Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var fields domain.UpdateFields
		if err := c.ShouldBindJSON(&fields); err != nil {
			abortWithError(c, http.StatusBadRequest, err)
			return
		}
		post, err := store.Update(c.Param("id"), fields)
		if err != nil {
			abortWithError(c, statusFor(err), err)
			return
		}
		c.JSON(http.StatusOK, post)
	}
}

func handleDelete(store *Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := store.Delete(c.GetString(userIdKey), c.Param("id")); err != nil {
			abortWithError(c, statusFor(err), err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, ErrBlogNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrNotBlogOwner):
		return http.StatusForbidden
	default:
		return http.StatusBadRequest
	}
}

func abortWithError(c *gin.Context, status int, err error) {
	c.AbortWithStatusJSON(status, gin.H{"error": err.Error()})
}
