package handlers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"collabboard/configs"
	"collabboard/internal/errs"
	"collabboard/internal/models"
	"collabboard/internal/msgs"
	"collabboard/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

func MustAuthenticateMiddleware(authService *services.AuthenticationService) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		jwtToken := ctx.GetHeader("Authorization")
		if strings.Contains(jwtToken, "Bearer") {
			jwtToken = strings.Replace(jwtToken, "Bearer ", "", 1)
		}

		if jwtToken == "" {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, models.Response{
				Success: false,
				Message: msgs.MsgYouMustLoginFirst,
				Errors:  []string{errs.ErrUnauthorized.Error()},
			})
			return
		}

		claims, err := authService.VerifyToken(jwtToken)
		if err != nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, models.Response{
				Success: false,
				Message: msgs.MsgYouMustLoginFirst,
				Errors:  []string{errs.ErrUnauthorized.Error()},
			})
			return
		}

		ctx.Set("user_id", claims.ID)
		ctx.Set("user_email", claims.Email)
		ctx.Set("user_name", claims.Name)
		ctx.Set("authenticated", true)
		ctx.Next()
	}
}

// RateLimitMiddleware caps requests per client IP inside a fixed
// window, counted in redis so the limit holds across replicas. Redis
// being down fails open: collaboration should not stop because the
// limiter is unavailable.
func RateLimitMiddleware(rdb *redis.Client, config *configs.Config) gin.HandlerFunc {
	limit := config.Viper.GetInt64("ratelimit.requests")
	window := time.Duration(config.Viper.GetInt("ratelimit.window_seconds")) * time.Second

	return func(ctx *gin.Context) {
		key := fmt.Sprintf("ratelimit:%s", ctx.ClientIP())

		pipe := rdb.Pipeline()
		incr := pipe.Incr(ctx.Request.Context(), key)
		pipe.Expire(ctx.Request.Context(), key, window)
		if _, err := pipe.Exec(ctx.Request.Context()); err != nil {
			logrus.WithError(err).Warn("Rate limiter unavailable, allowing request")
			ctx.Next()
			return
		}

		if incr.Val() > limit {
			ctx.AbortWithStatusJSON(http.StatusTooManyRequests, models.Response{
				Success: false,
				Message: msgs.MsgOperationFailed,
				Errors:  []string{"too many requests"},
			})
			return
		}
		ctx.Next()
	}
}
