package authorization

import (
	"context"
	_ "embed"
	"fmt"
	"strings"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	gormadapter "github.com/casbin/gorm-adapter/v3"
	auditdomain "github.com/smallbiznis/waterline/internal/audit/domain"
	identitydomain "github.com/smallbiznis/waterline/internal/identity/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:embed model.conf
var modelText string

const (
	ObjectAdminDashboard  = "admin_dashboard"
	ObjectClientDashboard = "client_dashboard"
	ObjectReservoir       = "reservoir"
	ObjectWaterSource     = "water_source"
	ObjectPump            = "pump"
	ObjectEnergy          = "energy"
	ObjectDistribution    = "distribution"
	ObjectAlert           = "alert"
	ObjectAuditLog        = "audit_log"
	ObjectFeedback        = "feedback"
	ObjectInvoice         = "invoice"
)

const (
	ActionView    = "view"
	ActionCreate  = "create"
	ActionUpdate  = "update"
	ActionExport  = "export"
	ActionResolve = "resolve"
	ActionSubmit  = "submit"
)

type Params struct {
	fx.In

	DB       *gorm.DB
	Log      *zap.Logger
	Enforcer *casbin.SyncedEnforcer
	AuditSvc auditdomain.Service `optional:"true"`
}

type ServiceImpl struct {
	db       *gorm.DB
	log      *zap.Logger
	enforcer *casbin.SyncedEnforcer
	auditSvc auditdomain.Service
}

// NewEnforcer persists policies through gorm-adapter into casbin_rule.
func NewEnforcer(db *gorm.DB) (*casbin.SyncedEnforcer, error) {
	adapter, err := gormadapter.NewAdapterByDB(db)
	if err != nil {
		return nil, err
	}
	m, err := model.NewModelFromString(modelText)
	if err != nil {
		return nil, err
	}
	enforcer, err := casbin.NewSyncedEnforcer(m, adapter)
	if err != nil {
		return nil, err
	}
	enforcer.EnableAutoSave(true)
	enforcer.EnableAutoBuildRoleLinks(true)
	if err := enforcer.LoadPolicy(); err != nil {
		return nil, err
	}
	if err := seedPolicies(enforcer); err != nil {
		return nil, err
	}
	enforcer.BuildRoleLinks()
	return enforcer, nil
}

// NewMemoryEnforcer holds the default policies without a backing store.
func NewMemoryEnforcer() (*casbin.SyncedEnforcer, error) {
	m, err := model.NewModelFromString(modelText)
	if err != nil {
		return nil, err
	}
	enforcer, err := casbin.NewSyncedEnforcer(m)
	if err != nil {
		return nil, err
	}
	if err := seedPolicies(enforcer); err != nil {
		return nil, err
	}
	return enforcer, nil
}

func NewService(p Params) Service {
	return &ServiceImpl{
		db:       p.DB,
		log:      p.Log.Named("authorization.service"),
		enforcer: p.Enforcer,
		auditSvc: p.AuditSvc,
	}
}

func (s *ServiceImpl) Authorize(ctx context.Context, principal identitydomain.Principal, object string, action string) error {
	if principal.UserID == 0 || principal.Role == "" {
		return ErrInvalidActor
	}
	object = strings.TrimSpace(object)
	if object == "" {
		return ErrInvalidObject
	}
	action = strings.TrimSpace(action)
	if action == "" {
		return ErrInvalidAction
	}

	subject := fmt.Sprintf("user:%s", principal.UserID.String())
	roleName := fmt.Sprintf("role:%s", principal.Role)
	if err := s.ensureGrouping(subject, roleName); err != nil {
		return err
	}

	allowed, err := s.enforcer.Enforce(subject, object, action)
	if err != nil {
		return err
	}
	if !allowed {
		s.auditDenied(ctx, principal, object, action)
		return ErrForbidden
	}
	return nil
}

// ensureGrouping keeps exactly one role link per subject.
func (s *ServiceImpl) ensureGrouping(subject string, roleName string) error {
	existing, err := s.enforcer.GetFilteredGroupingPolicy(0, subject)
	if err != nil {
		return err
	}
	for _, rule := range existing {
		if len(rule) < 2 {
			continue
		}
		if rule[1] != roleName {
			params := make([]interface{}, 0, len(rule))
			for _, value := range rule {
				params = append(params, value)
			}
			_, _ = s.enforcer.RemoveGroupingPolicy(params...)
		}
	}

	has, err := s.enforcer.HasGroupingPolicy(subject, roleName)
	if err != nil {
		return err
	}
	if has {
		return nil
	}
	_, err = s.enforcer.AddGroupingPolicy(subject, roleName)
	return err
}

func (s *ServiceImpl) auditDenied(ctx context.Context, principal identitydomain.Principal, object string, action string) {
	if s.auditSvc == nil {
		return
	}
	actorID := principal.UserID.String()
	targetID := "capability"
	_ = s.auditSvc.AuditLog(ctx, string(principal.Role), &actorID, "authorization.denied", "authorization", &targetID, map[string]any{
		"object": object,
		"action": action,
	})
}

func seedPolicies(enforcer *casbin.SyncedEnforcer) error {
	policies := [][]string{
		// Administrator
		{"role:admin", ObjectAdminDashboard, ActionView},
		{"role:admin", ObjectReservoir, ActionView},
		{"role:admin", ObjectReservoir, ActionCreate},
		{"role:admin", ObjectReservoir, ActionUpdate},
		{"role:admin", ObjectWaterSource, ActionCreate},
		{"role:admin", ObjectPump, ActionView},
		{"role:admin", ObjectPump, ActionCreate},
		{"role:admin", ObjectPump, ActionUpdate},
		{"role:admin", ObjectEnergy, ActionView},
		{"role:admin", ObjectEnergy, ActionCreate},
		{"role:admin", ObjectDistribution, ActionView},
		{"role:admin", ObjectDistribution, ActionCreate},
		{"role:admin", ObjectDistribution, ActionExport},
		{"role:admin", ObjectAlert, ActionView},
		{"role:admin", ObjectAlert, ActionCreate},
		{"role:admin", ObjectAlert, ActionResolve},
		{"role:admin", ObjectAuditLog, ActionView},

		// Client
		{"role:client", ObjectClientDashboard, ActionView},
		{"role:client", ObjectFeedback, ActionSubmit},
		{"role:client", ObjectInvoice, ActionView},
	}

	for _, policy := range policies {
		if len(policy) < 3 {
			continue
		}
		if _, err := enforcer.AddPolicy(policy); err != nil {
			return err
		}
	}
	return nil
}
