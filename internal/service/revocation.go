package service

import (
	"context"
	"errors"
	"time"

	"github.com/davitkhm/docvault/internal/logging"
	"github.com/davitkhm/docvault/internal/repo"
)

// Reject reasons. They stay distinguishable in logs even though most render
// as the same generic 401.
const (
	ReasonUserNotFound = "user not found"
	ReasonNoIssuedAt   = "token has no issuance time"
	ReasonStale        = "token issued at or before last logout"
	ReasonStoreError   = "revocation state unavailable"
)

// Decision is the outcome of a revocation check: admit, or reject with a
// reason. Modeling the reason explicitly keeps "determined revoked" and
// "could not determine" apart internally.
type Decision struct {
	Admitted bool
	Reason   string
}

func admit() Decision { return Decision{Admitted: true} }

func reject(reason string) Decision { return Decision{Reason: reason} }

// RevocationGuard decides whether a token is still honored by comparing its
// issuance time against the subject's current revocation watermark, read
// fresh from the store on every check. Any condition that cannot positively
// establish validity rejects.
type RevocationGuard struct {
	Repo *repo.GormRepo
}

func NewRevocationGuard(r *repo.GormRepo) *RevocationGuard {
	return &RevocationGuard{Repo: r}
}

// Check applies the revocation policy for subject. issuedAt is nil when the
// token carried no parseable iat claim.
func (g *RevocationGuard) Check(ctx context.Context, subject string, issuedAt *time.Time) Decision {
	user, err := g.Repo.FindUserByID(ctx, subject)
	if err != nil {
		if errors.Is(err, repo.ErrUserNotFound) {
			return reject(ReasonUserNotFound)
		}
		logging.FromContext(ctx).Error("revocation_check_failed", "subject", subject, "error", err)
		return reject(ReasonStoreError)
	}

	if issuedAt == nil {
		return reject(ReasonNoIssuedAt)
	}

	if user.LastLogout == nil {
		return admit()
	}

	// Strictly newer than the watermark: a token minted in the same second
	// as a logout is already dead.
	if issuedAt.Unix() <= *user.LastLogout {
		return reject(ReasonStale)
	}

	return admit()
}
