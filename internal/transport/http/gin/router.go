package httpgin

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/kioskgym/kioskgym/internal/catalog"
	"github.com/kioskgym/kioskgym/internal/domain"
	"github.com/kioskgym/kioskgym/internal/flow"
	redisrepo "github.com/kioskgym/kioskgym/internal/repository/redis"
	"github.com/kioskgym/kioskgym/internal/seating"
	"github.com/kioskgym/kioskgym/internal/service"
	"github.com/kioskgym/kioskgym/internal/service/sessions"
)

func NewRouter(
	svcs *service.Services,
	cat *catalog.Catalog,
	idem *redisrepo.IdempotencyStore,
	logger *slog.Logger,
	middlewares ...gin.HandlerFunc,
) *gin.Engine {
	r := gin.New()

	r.Use(gin.Recovery(), LoggingMiddleware(logger), RequestIDMiddleware(), CORS())
	for _, m := range middlewares {
		if m != nil {
			r.Use(m)
		}
	}

	// Swagger UI
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// health
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":   "ok",
			"sessions": svcs.Sessions.Count(),
		})
	})

	// Reference data
	r.GET("/catalog/:storefront/menu", handleGetMenu(cat))
	r.GET("/catalog/movies", handleListMovies(cat))
	r.GET("/catalog/theaters", handleListTheaters(cat))

	// Training history
	r.GET("/history", handleListHistory(svcs))

	// Sessions
	r.POST("/sessions", handleCreateSession(svcs))
	r.GET("/sessions/:id", handleGetSession(svcs))
	r.DELETE("/sessions/:id", handleDeleteSession(svcs))

	s := r.Group("/sessions/:id")
	{
		s.POST("/restart", mutation(svcs, func(sess *flow.Session, _ *gin.Context) (bool, error) {
			return true, sess.Restart()
		}))
		s.POST("/back", boolMutation(svcs, (*flow.Session).Back))
		s.POST("/home", boolMutation(svcs, (*flow.Session).Home))

		s.POST("/booking/start", boolMutation(svcs, (*flow.Session).StartBooking))
		s.POST("/booking/movie", handleSelectMovie(svcs))
		s.POST("/booking/time", handleSelectTime(svcs))
		s.POST("/booking/theater", handleSelectTheater(svcs))
		s.POST("/booking/headcount", handleChangeHeadcount(svcs))
		s.POST("/booking/proceed-seats", boolMutation(svcs, (*flow.Session).ProceedToSeats))

		s.POST("/seats/toggle", handleToggleSeat(svcs))
		s.POST("/seats/confirm", boolMutation(svcs, (*flow.Session).ConfirmSeats))

		s.POST("/payment", handleChoosePayment(svcs))

		s.POST("/snack/start", boolMutation(svcs, (*flow.Session).StartSnack))
		s.POST("/snack/finish", boolMutation(svcs, (*flow.Session).FinishSnack))
		s.POST("/print/start", boolMutation(svcs, (*flow.Session).StartPrint))

		s.POST("/practice/start", boolMutation(svcs, (*flow.Session).StartPractice))
		s.POST("/cart/category", handleSelectCategory(svcs))
		s.POST("/cart/lines", handleAddLine(svcs))
		s.POST("/cart/lines/change", handleChangeLine(svcs))
		s.POST("/cart/clear", boolMutation(svcs, (*flow.Session).ClearCart))
		s.POST("/checkout", handleCheckout(svcs, idem))
	}

	return r
}

// --- Handlers with Swagger annotations ---

// @Summary  Get storefront menu
// @Param    storefront  path  string  true  "burger|cafe|restaurant|cinema"
// @Success  200  {array}   ItemView
// @Failure  404  {object}  ErrorResponse
// @Router   /catalog/{storefront}/menu [get]
func handleGetMenu(cat *catalog.Catalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		storefront := domain.StorefrontType(c.Param("storefront"))
		if !storefront.Valid() {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "unknown storefront"})
			return
		}
		items := cat.Menu(storefront)
		out := make([]ItemView, 0, len(items))
		for _, it := range items {
			out = append(out, toItemView(it))
		}
		// ETag + Cache-Control 300s, menus never change at runtime
		writeJSONWithCache(c, http.StatusOK, out, "public, max-age=300", true)
	}
}

// @Summary  List movies with show times
// @Success  200  {array}  MovieView
// @Router   /catalog/movies [get]
func handleListMovies(cat *catalog.Catalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		movies := cat.Movies()
		out := make([]MovieView, 0, len(movies))
		for _, m := range movies {
			out = append(out, toMovieView(m))
		}
		writeJSONWithCache(c, http.StatusOK, out, "public, max-age=300", true)
	}
}

// @Summary  List halls
// @Success  200  {array}  TheaterView
// @Router   /catalog/theaters [get]
func handleListTheaters(cat *catalog.Catalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		theaters := cat.Theaters()
		out := make([]TheaterView, 0, len(theaters))
		for _, t := range theaters {
			out = append(out, toTheaterView(t))
		}
		writeJSONWithCache(c, http.StatusOK, out, "public, max-age=300", true)
	}
}

// @Summary  List past training results, most recent first
// @Success  200  {array}  domain.HistoryRecord
// @Router   /history [get]
func handleListHistory(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		recs := svcs.History.List(c.Request.Context())
		// short-lived ETag, the list grows after every finished attempt
		writeJSONWithCache(c, http.StatusOK, recs, "public, max-age=5", true)
	}
}

// @Summary  Start a training session
// @Param    req body  CreateSessionRequest true "payload"
// @Success  201 {object} SessionView
// @Failure  400 {object} ErrorResponse
// @Failure  429 {object} ErrorResponse "rate limited"
// @Router   /sessions [post]
func handleCreateSession(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateSessionRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}

		sess, err := svcs.Sessions.Create(
			c.Request.Context(),
			domain.StorefrontType(req.Storefront),
			req.Practice,
			"ip:"+c.ClientIP(),
		)
		if err != nil {
			if errors.Is(err, sessions.ErrRateLimited) {
				c.Header("Retry-After", "60")
				c.JSON(http.StatusTooManyRequests, ErrorResponse{Error: err.Error()})
				return
			}
			respondErr(c, err)
			return
		}

		c.JSON(http.StatusCreated, toSessionView(sess.Snapshot()))
	}
}

// @Summary  Get session state
// @Param    id  path  string  true  "Session ID (uuid)"
// @Success  200 {object} SessionView
// @Failure  404 {object} ErrorResponse
// @Router   /sessions/{id} [get]
func handleGetSession(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, err := svcs.Sessions.Get(c.Param("id"))
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, toSessionView(sess.Snapshot()))
	}
}

// @Summary  End a session
// @Param    id  path  string  true  "Session ID (uuid)"
// @Success  204
// @Failure  404 {object} ErrorResponse
// @Router   /sessions/{id} [delete]
func handleDeleteSession(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svcs.Sessions.Remove(c.Param("id")); err != nil {
			respondErr(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

// @Summary  Select a movie
// @Param    id  path  string  true  "Session ID"
// @Param    req body  SelectMovieRequest true "payload"
// @Success  200 {object} MutationResponse
// @Router   /sessions/{id}/booking/movie [post]
func handleSelectMovie(svcs *service.Services) gin.HandlerFunc {
	return mutation(svcs, func(sess *flow.Session, c *gin.Context) (bool, error) {
		var req SelectMovieRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			return false, bindErr(err)
		}
		return sess.SelectMovie(req.MovieID)
	})
}

// @Summary  Select a show time
// @Param    id  path  string  true  "Session ID"
// @Param    req body  SelectTimeRequest true "payload"
// @Success  200 {object} MutationResponse
// @Router   /sessions/{id}/booking/time [post]
func handleSelectTime(svcs *service.Services) gin.HandlerFunc {
	return mutation(svcs, func(sess *flow.Session, c *gin.Context) (bool, error) {
		var req SelectTimeRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			return false, bindErr(err)
		}
		return sess.SelectTime(req.Time)
	})
}

// @Summary  Select a hall
// @Param    id  path  string  true  "Session ID"
// @Param    req body  SelectTheaterRequest true "payload"
// @Success  200 {object} MutationResponse
// @Router   /sessions/{id}/booking/theater [post]
func handleSelectTheater(svcs *service.Services) gin.HandlerFunc {
	return mutation(svcs, func(sess *flow.Session, c *gin.Context) (bool, error) {
		var req SelectTheaterRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			return false, bindErr(err)
		}
		return sess.SelectTheater(req.TheaterID)
	})
}

// @Summary  Adjust a headcount category
// @Param    id  path  string  true  "Session ID"
// @Param    req body  ChangeHeadcountRequest true "payload"
// @Success  200 {object} MutationResponse
// @Router   /sessions/{id}/booking/headcount [post]
func handleChangeHeadcount(svcs *service.Services) gin.HandlerFunc {
	return mutation(svcs, func(sess *flow.Session, c *gin.Context) (bool, error) {
		var req ChangeHeadcountRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			return false, bindErr(err)
		}
		return sess.ChangeHeadcount(domain.PersonCategory(req.Category), req.Delta)
	})
}

// @Summary  Toggle a seat
// @Param    id  path  string  true  "Session ID"
// @Param    req body  ToggleSeatRequest true "payload"
// @Success  200 {object} MutationResponse
// @Failure  409 {object} ErrorResponse "seat occupied"
// @Router   /sessions/{id}/seats/toggle [post]
func handleToggleSeat(svcs *service.Services) gin.HandlerFunc {
	return mutation(svcs, func(sess *flow.Session, c *gin.Context) (bool, error) {
		var req ToggleSeatRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			return false, bindErr(err)
		}
		return sess.ToggleSeat(req.Slot)
	})
}

// @Summary  Choose the payment channel and start the timed sequence
// @Param    id  path  string  true  "Session ID"
// @Param    req body  ChoosePaymentRequest true "payload"
// @Success  200 {object} MutationResponse
// @Router   /sessions/{id}/payment [post]
func handleChoosePayment(svcs *service.Services) gin.HandlerFunc {
	return mutation(svcs, func(sess *flow.Session, c *gin.Context) (bool, error) {
		var req ChoosePaymentRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			return false, bindErr(err)
		}
		return sess.ChoosePayment(domain.PaymentChannel(req.Channel))
	})
}

// @Summary  Record the browsed menu category
// @Param    id  path  string  true  "Session ID"
// @Param    req body  SelectCategoryRequest true "payload"
// @Success  200 {object} MutationResponse
// @Router   /sessions/{id}/cart/category [post]
func handleSelectCategory(svcs *service.Services) gin.HandlerFunc {
	return mutation(svcs, func(sess *flow.Session, c *gin.Context) (bool, error) {
		var req SelectCategoryRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			return false, bindErr(err)
		}
		return sess.SelectCategory(req.Category), nil
	})
}

// @Summary  Add an item to the cart
// @Param    id  path  string  true  "Session ID"
// @Param    req body  AddLineRequest true "payload"
// @Success  200 {object} MutationResponse
// @Failure  404 {object} ErrorResponse "unknown item or modifier"
// @Router   /sessions/{id}/cart/lines [post]
func handleAddLine(svcs *service.Services) gin.HandlerFunc {
	return mutation(svcs, func(sess *flow.Session, c *gin.Context) (bool, error) {
		var req AddLineRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			return false, bindErr(err)
		}
		return sess.AddCartLine(req.ItemID, req.Quantity, req.Modifiers)
	})
}

// @Summary  Change a cart line's quantity
// @Param    id  path  string  true  "Session ID"
// @Param    req body  ChangeLineRequest true "payload"
// @Success  200 {object} MutationResponse
// @Failure  404 {object} ErrorResponse "unknown line"
// @Router   /sessions/{id}/cart/lines/change [post]
func handleChangeLine(svcs *service.Services) gin.HandlerFunc {
	return mutation(svcs, func(sess *flow.Session, c *gin.Context) (bool, error) {
		var req ChangeLineRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			return false, bindErr(err)
		}
		return sess.ChangeCartLine(req.Key, req.Delta)
	})
}

// @Summary  Check the cart out against the mission (idempotent)
// @Param    id  path  string  true  "Session ID"
// @Header   200 {string} Idempotency-Key "echo"
// @Success  200 {object} MutationResponse
// @Router   /sessions/{id}/checkout [post]
func handleCheckout(
	svcs *service.Services,
	idem *redisrepo.IdempotencyStore,
) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, err := svcs.Sessions.Get(c.Param("id"))
		if err != nil {
			respondErr(c, err)
			return
		}

		idemKey := strings.TrimSpace(c.GetHeader("Idempotency-Key"))
		var idemStorageKey string
		if idem != nil && idemKey != "" {
			idemStorageKey = redisrepo.KeyIdemCheckout(sess.ID(), idemKey)

			if payload, ok, _ := idem.GetResult(c.Request.Context(), idemStorageKey); ok {
				c.Header("Idempotency-Key", idemKey)
				c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(payload))
				return
			}

			locked, err := idem.AcquireLock(c.Request.Context(), idemStorageKey, 60*time.Second)
			if err != nil {
				respondErr(c, err)
				return
			}
			if !locked {
				if payload, ok, _ := idem.GetResult(c.Request.Context(), idemStorageKey); ok {
					c.Header("Idempotency-Key", idemKey)
					c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(payload))
					return
				}
				c.Header("Retry-After", "1")
				c.JSON(http.StatusConflict, ErrorResponse{Error: "idempotency key in progress"})
				return
			}
		}

		changed := sess.Checkout()
		resp := MutationResponse{Changed: changed, Session: toSessionView(sess.Snapshot())}

		if idemStorageKey != "" {
			if changed {
				b, _ := json.Marshal(resp)
				_ = idem.SaveResult(c.Request.Context(), idemStorageKey, string(b))
			} else {
				_ = idem.Release(c.Request.Context(), idemStorageKey)
			}
			c.Header("Idempotency-Key", idemKey)
		}

		c.JSON(http.StatusOK, resp)
	}
}

// --- Helpers ---

// mutation adapts a session-mutating call into the uniform handler: it
// resolves the session, runs fn, maps domain errors and replies with
// MutationResponse.
func mutation(
	svcs *service.Services,
	fn func(sess *flow.Session, c *gin.Context) (bool, error),
) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, err := svcs.Sessions.Get(c.Param("id"))
		if err != nil {
			respondErr(c, err)
			return
		}
		changed, err := fn(sess, c)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, MutationResponse{
			Changed: changed,
			Session: toSessionView(sess.Snapshot()),
		})
	}
}

func boolMutation(svcs *service.Services, fn func(sess *flow.Session) bool) gin.HandlerFunc {
	return mutation(svcs, func(sess *flow.Session, _ *gin.Context) (bool, error) {
		return fn(sess), nil
	})
}

type bindError struct{ err error }

func bindErr(err error) error     { return bindError{err: err} }
func (e bindError) Error() string { return e.err.Error() }
func (e bindError) Unwrap() error { return e.err }

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: msg})
}

func respondErr(c *gin.Context, err error) {
	if err == nil {
		c.Status(http.StatusNoContent)
		return
	}

	var be bindError
	if errors.As(err, &be) {
		badRequest(c, be.Error())
		return
	}

	switch {
	// sessions service
	case errors.Is(err, sessions.ErrSessionNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "session not found"})
		return
	case errors.Is(err, sessions.ErrInvalidStorefront):
		badRequest(c, "invalid storefront")
		return
	// seat inventory
	case errors.Is(err, seating.ErrSlotOccupied):
		c.JSON(http.StatusConflict, ErrorResponse{Error: "seat occupied"})
		return
	case errors.Is(err, seating.ErrUnknownSlot):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "unknown seat"})
		return
	// flow reference lookups
	case errors.Is(err, flow.ErrUnknownMovie):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "unknown movie"})
		return
	case errors.Is(err, flow.ErrUnknownTime):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "unknown show time"})
		return
	case errors.Is(err, flow.ErrUnknownTheater):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "unknown hall"})
		return
	case errors.Is(err, flow.ErrUnknownItem):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "unknown item"})
		return
	case errors.Is(err, flow.ErrUnknownModifier):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "unknown modifier"})
		return
	case errors.Is(err, flow.ErrUnknownLine):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "unknown cart line"})
		return
	case errors.Is(err, flow.ErrUnknownCategory):
		badRequest(c, "unknown category")
		return
	case errors.Is(err, flow.ErrInvalidChannel):
		badRequest(c, "invalid payment channel")
		return
	case errors.Is(err, flow.ErrInvalidQuantity):
		badRequest(c, "invalid quantity")
		return
	}

	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
}
