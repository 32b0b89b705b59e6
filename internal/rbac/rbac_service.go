package rbac

import (
	"sort"
	"sync"

	"github.com/casbin/casbin/v2"
	"go.uber.org/zap"
)

//go:generate mockgen -source=rbac_service.go -destination=mock/rbac_service_mock.go -package=mock
type Service interface {
	Enforce(role, resource, action string) (bool, error)
	Permissions(role string) ([]Permission, error)
	HasRole(role string) bool
	Reload(policy Policy) error
}

type service struct {
	enforcer *casbin.Enforcer
	roles    map[string]struct{}
	mu       sync.RWMutex
	logger   *zap.Logger
}

func NewService(enforcer *casbin.Enforcer, policy Policy, logger ...*zap.Logger) (Service, error) {
	l := zap.L().Named("rbac.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("rbac.service")
	}
	s := &service{enforcer: enforcer, logger: l}
	if err := s.Reload(policy); err != nil {
		return nil, err
	}
	return s, nil
}

// Reload replaces every loaded rule with policy.
func (s *service) Reload(policy Policy) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.enforcer.ClearPolicy()
	roles := make(map[string]struct{}, len(policy.Roles))
	rules := 0
	for _, name := range policy.RoleNames() {
		role := policy.Roles[name]
		roles[name] = struct{}{}
		for _, parent := range role.Inherits {
			if _, err := s.enforcer.AddGroupingPolicy(name, parent); err != nil {
				return err
			}
		}
		for resource, actions := range role.Permissions {
			for _, action := range actions {
				if _, err := s.enforcer.AddPolicy(name, resource, action); err != nil {
					return err
				}
				rules++
			}
		}
	}
	s.roles = roles

	s.logger.Info("rbac policy loaded", zap.Int("roles", len(roles)), zap.Int("rules", rules))
	return nil
}

func (s *service) HasRole(role string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.roles[role]
	return ok
}

func (s *service) Enforce(role, resource, action string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	allowed, err := s.enforcer.Enforce(role, resource, action)
	if err != nil {
		s.logger.Error("rbac enforce failed",
			zap.String("role", role),
			zap.String("resource", resource),
			zap.String("action", action),
			zap.Error(err),
		)
		return false, err
	}

	s.logger.Debug("rbac enforce result",
		zap.String("role", role),
		zap.String("resource", resource),
		zap.String("action", action),
		zap.Bool("allowed", allowed),
	)
	return allowed, nil
}

func (s *service) Permissions(role string) ([]Permission, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rules, err := s.enforcer.GetImplicitPermissionsForUser(role)
	if err != nil {
		return nil, err
	}

	seen := make(map[Permission]struct{}, len(rules))
	perms := make([]Permission, 0, len(rules))
	for _, rule := range rules {
		if len(rule) < 3 {
			continue
		}
		p := Permission{Resource: rule[1], Action: rule[2]}
		if _, dup := seen[p]; dup {
			continue
		}
		seen[p] = struct{}{}
		perms = append(perms, p)
	}
	sort.Slice(perms, func(i, j int) bool {
		if perms[i].Resource != perms[j].Resource {
			return perms[i].Resource < perms[j].Resource
		}
		return perms[i].Action < perms[j].Action
	})
	return perms, nil
}
