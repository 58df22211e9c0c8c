package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"pms-be-svc/internal/models"
	"pms-be-svc/pkg/utils"
)

const actorContextKey = "actor"

// ActorContext reads the actor identity placed on the request by the
// identity provider at the gateway. The identity is trusted as-is; the
// workflow engines receive it as an explicit parameter rather than reading
// ambient request state.
func ActorContext() gin.HandlerFunc {
	return func(c *gin.Context) {
		idHeader := c.GetHeader("X-Actor-Id")
		if idHeader != "" {
			if id, err := strconv.ParseUint(idHeader, 10, 32); err == nil {
				c.Set(actorContextKey, models.Actor{
					ID:   uint(id),
					Role: c.GetHeader("X-Actor-Role"),
				})
			}
		}

		c.Next()
	}
}

// RequireActor rejects mutating requests that carry no actor identity
func RequireActor() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := CurrentActor(c); !ok {
			utils.UnauthorizedResponse(c, "Actor identity is required for this operation")
			c.Abort()
			return
		}

		c.Next()
	}
}

// CurrentActor returns the actor attached to the request, if any
func CurrentActor(c *gin.Context) (models.Actor, bool) {
	value, exists := c.Get(actorContextKey)
	if !exists {
		return models.Actor{}, false
	}

	actor, ok := value.(models.Actor)
	return actor, ok
}
