package middleware

import (
	"net/http"

	"go-payroll/internal/shared/response"

	"github.com/gin-gonic/gin"
)

// RequireCompanyScope rejects callers whose token carries no company
// profile. Owners get the claim at login once their company exists.
func RequireCompanyScope() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString("company_id") == "" {
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "No company profile associated with this account", nil)
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireEmployeeScope rejects callers whose token carries no employee
// profile.
func RequireEmployeeScope() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString("employee_id") == "" {
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "No employee profile associated with this account", nil)
			c.Abort()
			return
		}
		c.Next()
	}
}
