package http

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mrlokans/library/internal/dto"
	"github.com/mrlokans/library/internal/links"
	"github.com/mrlokans/library/internal/logging"
	"github.com/mrlokans/library/internal/paging"
)

// routeTable registers handlers on the engine and records named routes for
// link generation.
type routeTable struct {
	engine *gin.Engine
	routes *links.Routes
	err    error
}

func (t *routeTable) handle(name, method, path string, handler gin.HandlerFunc) {
	t.engine.Handle(method, path, handler)
	if name == "" || t.err != nil {
		return
	}
	if err := t.routes.Add(name, method, path); err != nil {
		t.err = err
	}
}

// NewRouter creates and configures the HTTP router with all endpoints.
// It fails when a linked route is missing or the sort mappings cannot be resolved.
func NewRouter(cfg RouterConfig) (*gin.Engine, error) {
	if err := applyDefaults(&cfg); err != nil {
		return nil, err
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(logging.Middleware(cfg.Logger))

	routes := links.NewRoutes()
	hyper := NewHypermedia(routes, cfg.BaseURL, cfg.HypermediaMediaType)
	t := &routeTable{engine: router, routes: routes}

	root := NewRootController(hyper)
	authorsController, err := NewAuthorsController(
		cfg.AuthorStore,
		cfg.AuditLogger,
		cfg.Mappings,
		cfg.Catalog,
		cfg.Validator,
		cfg.Limits,
		hyper,
		cfg.Now,
	)
	if err != nil {
		return nil, fmt.Errorf("authors controller: %w", err)
	}
	booksController := NewBooksController(cfg.AuthorStore, cfg.BookStore, cfg.AuditLogger, cfg.Validator, hyper)
	collections := NewAuthorCollectionsController(cfg.AuthorStore, cfg.AuditLogger, cfg.Validator, hyper, cfg.Now)

	var pinger Pinger
	if cfg.Database != nil {
		pinger = cfg.Database
	}
	health := NewHealthController(pinger, cfg.Version)

	// Health endpoints
	t.handle("", http.MethodGet, "/health", health.Status)
	t.handle("", http.MethodGet, "/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})

	t.handle(RouteGetRoot, http.MethodGet, "/api", root.GetRoot)

	// Authors
	t.handle(RouteGetAuthors, http.MethodGet, "/api/authors", authorsController.GetAuthors)
	t.handle(RouteCreateAuthor, http.MethodPost, "/api/authors", authorsController.CreateAuthor)
	t.handle(RouteGetAuthor, http.MethodGet, "/api/authors/:id", authorsController.GetAuthor)
	t.handle("", http.MethodPost, "/api/authors/:id", authorsController.BlockAuthorCreation)
	t.handle(RouteDeleteAuthor, http.MethodDelete, "/api/authors/:id", authorsController.DeleteAuthor)

	// Books of an author
	t.handle(RouteGetBooksForAuthor, http.MethodGet, "/api/authors/:id/books", booksController.GetBooksForAuthor)
	t.handle(RouteCreateBookForAuthor, http.MethodPost, "/api/authors/:id/books", booksController.CreateBookForAuthor)
	t.handle(RouteGetBookForAuthor, http.MethodGet, "/api/authors/:id/books/:bookId", booksController.GetBookForAuthor)
	t.handle(RouteDeleteBookForAuthor, http.MethodDelete, "/api/authors/:id/books/:bookId", booksController.DeleteBookForAuthor)
	t.handle(RouteUpdateBookForAuthor, http.MethodPut, "/api/authors/:id/books/:bookId", booksController.UpdateBookForAuthor)
	t.handle(RoutePartiallyUpdateBookForAuthor, http.MethodPatch, "/api/authors/:id/books/:bookId", booksController.PartiallyUpdateBookForAuthor)

	// Author collections
	t.handle(RouteCreateAuthorCollection, http.MethodPost, "/api/authorcollections", collections.CreateAuthorCollection)
	t.handle(RouteGetAuthorCollection, http.MethodGet, "/api/authorcollections/:ids", collections.GetAuthorCollection)

	// Task management endpoints
	if cfg.TaskQueue != nil || cfg.Maintenance != nil {
		tasksController := NewTasksController(cfg.TaskQueue, cfg.Maintenance)
		t.handle("", http.MethodGet, "/api/tasks/types", tasksController.ListTaskTypes)
		t.handle("", http.MethodPost, "/api/tasks/maintenance/run", tasksController.RunMaintenance)
		t.handle("", http.MethodGet, "/api/tasks/:id", tasksController.GetTaskStatus)
	}

	// Audit log
	if cfg.AuditReader != nil {
		auditController := NewAuditController(cfg.AuditReader)
		t.handle("", http.MethodGet, "/api/admin/audit", auditController.GetAuditEvents)
	}

	if t.err != nil {
		return nil, t.err
	}
	if err := routes.Require(linkedRoutes...); err != nil {
		return nil, err
	}

	return router, nil
}

// applyDefaults fills in the optional parts of cfg.
func applyDefaults(cfg *RouterConfig) error {
	if cfg.Logger == nil {
		cfg.Logger = zap.L()
	}
	if cfg.Catalog == nil {
		catalog, err := dto.NewCatalog()
		if err != nil {
			return fmt.Errorf("property catalog: %w", err)
		}
		cfg.Catalog = catalog
	}
	if cfg.Mappings == nil {
		mappings, err := dto.NewMappingRegistry()
		if err != nil {
			return fmt.Errorf("property mappings: %w", err)
		}
		cfg.Mappings = mappings
	}
	if cfg.Validator == nil {
		cfg.Validator = dto.NewValidator()
	}
	if cfg.Limits.MaxPageSize < 1 {
		cfg.Limits = paging.DefaultLimits()
	}
	return nil
}
