// Package access derives UI-facing capabilities from the current session.
//
// The capability set is a pure function of the session at evaluation
// time: it is recomputed every time a view needs it and never cached
// across navigation. Determination is fail-closed: an absent field, an
// errored permissions call or an unreachable server all yield the
// all-false set, because these flags guard content-creating and
// destructive actions.
package access

import (
	"context"

	"trotamundos/internal/api"
	"trotamundos/internal/logging"
	"trotamundos/internal/session"
)

// Capabilities is the boolean permission set of the current session.
type Capabilities struct {
	CanCreateContent bool
	IsAdmin          bool
	Role             string
}

// Gate evaluates capabilities against the permissions endpoint.
type Gate struct {
	client api.Client
	log    logging.Logger
}

func NewGate(client api.Client, log logging.Logger) *Gate {
	if log == nil {
		log = logging.Discard()
	}
	return &Gate{client: client, log: log}
}

// Evaluate returns the capability set for sess. An anonymous session
// resolves immediately to all-false without a network call; a failed
// permissions lookup also resolves to all-false rather than erroring.
func (g *Gate) Evaluate(ctx context.Context, sess session.Session) Capabilities {
	if sess.Token == "" {
		return Capabilities{}
	}

	perms, err := g.client.Permissions(ctx)
	if err != nil {
		g.log.Debug(ctx, "permissions lookup failed, denying all", "error", err)
		return Capabilities{}
	}
	return Capabilities{
		CanCreateContent: perms.CanCreateContent,
		IsAdmin:          perms.IsAdmin,
		Role:             perms.Role,
	}
}

// IsOwner reports whether the session's user authored the resource with
// the given author id. Pure comparison, no network: recompute whenever
// either operand changes.
func IsOwner(sess session.Session, authorID int64) bool {
	return sess.User != nil && sess.User.ID == authorID
}
