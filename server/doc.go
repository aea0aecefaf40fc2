// Package server writes service errors to HTTP clients.
//
// RespondWithError and WriteError render any error through an errors.Registry
// and write the resulting status, content type and body:
//
//	func getUser(c *gin.Context) {
//		user, err := users.Find(c.Param("id"))
//		if err != nil {
//			server.RespondWithError(c, err)
//			return
//		}
//		c.JSON(http.StatusOK, user)
//	}
//
// Server bundles a Gin engine with the error-aware middleware stack from
// server/middleware:
//
//   - Recovery: panics become INTERNAL_ERROR responses
//   - RequestID: X-Request-Id generation and propagation
//   - RequestLogger: request logging with status and duration
//   - ErrorHandler: renders errors attached with c.Error
//   - RateLimit: RATE_LIMITED responses with Retry-After
//   - Auth: JWT verification answering UNAUTHORIZED, TOKEN_EXPIRED or INVALID_TOKEN
package server
