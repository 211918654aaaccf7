package middlewares

import (
	"fmt"
	"log"
	"net/http"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	mongodbadapter "github.com/casbin/mongodb-adapter/v3"
	"github.com/gin-gonic/gin"
)

var enforcer *casbin.Enforcer

const rbacModelText = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub) && r.obj == p.obj && r.act == p.act
`

// InitCasbin initializes the Casbin enforcer with a MongoDB adapter and the
// farmer/authority policy set
func InitCasbin(databaseURI string) error {
	adapter, err := mongodbadapter.NewAdapter(databaseURI)
	if err != nil {
		return fmt.Errorf("failed to create Casbin adapter: %w", err)
	}

	m, err := model.NewModelFromString(rbacModelText)
	if err != nil {
		return fmt.Errorf("failed to create Casbin model: %w", err)
	}

	enforcer, err = casbin.NewEnforcer(m, adapter)
	if err != nil {
		return fmt.Errorf("failed to create Casbin enforcer: %w", err)
	}

	if err := enforcer.LoadPolicy(); err != nil {
		return fmt.Errorf("failed to load policy: %w", err)
	}

	ensureDefaultPolicies()

	log.Println("Casbin RBAC initialized successfully")
	return nil
}

// ensureDefaultPolicies adds the role policies if missing (idempotent)
func ensureDefaultPolicies() {
	defaultPolicies := []struct {
		role     string
		resource string
		action   string
	}{
		{"authority", "missions", "manage"},
		{"authority", "rewards", "manage"},
		{"authority", "redemptions", "manage"},
		{"authority", "users", "read"},
		{"farmer", "missions", "participate"},
		{"farmer", "rewards", "redeem"},
		{"farmer", "posts", "write"},
		{"farmer", "cropdoctor", "use"},
	}

	for _, policy := range defaultPolicies {
		hasPolicy, err := enforcer.HasPolicy(policy.role, policy.resource, policy.action)
		if err != nil {
			log.Printf("Error checking policy %v: %v", policy, err)
			continue
		}
		if !hasPolicy {
			if _, err := enforcer.AddPolicy(policy.role, policy.resource, policy.action); err != nil {
				log.Printf("Error adding policy %v: %v", policy, err)
			}
		}
	}
}

// RequirePermission enforces that the authenticated role may perform the
// action on the resource. Must run after AuthMiddleware.
func RequirePermission(resource, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get("role")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "User not authenticated"})
			c.Abort()
			return
		}

		allowed, err := enforcer.Enforce(role.(string), resource, action)
		if err != nil {
			log.Printf("RBAC enforcement error: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Authorization check failed"})
			c.Abort()
			return
		}
		if !allowed {
			c.JSON(http.StatusForbidden, gin.H{"success": false, "message": "Not authorized for this action"})
			c.Abort()
			return
		}

		c.Next()
	}
}
