package middleware

import (
	"database/sql"
	"net/http"

	"fleetlog/internal/utils"

	"github.com/gin-gonic/gin"
)

const connKey = "db_conn"

// DBSession checks out one connection for the lifetime of the request and
// returns it to the pool once the handler chain is done.
func DBSession(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		conn, err := db.Conn(c.Request.Context())
		if err != nil {
			utils.LogError(GetRequestID(c), "db", "checkout", err)
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{
				"error":      "database unavailable",
				"request_id": GetRequestID(c),
			})
			return
		}
		defer conn.Close()

		c.Set(connKey, conn)
		c.Next()
	}
}

// GetConn returns the request-scoped connection set by DBSession.
func GetConn(c *gin.Context) *sql.Conn {
	if v, ok := c.Get(connKey); ok {
		if conn, ok := v.(*sql.Conn); ok {
			return conn
		}
	}
	return nil
}
