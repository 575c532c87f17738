package gsuspend

import (
	"context"
	"strings"

	admin "google.golang.org/api/admin/directory/v1"

	"github.com/opsdesk/stalesweep/tools"
)

// MirrorResult counts how the Google side of a disable run went.
type MirrorResult struct {
	Suspended int
	Failed    int
	Skipped   int
}

// SuspendUsers marks the given Workspace users suspended, mirroring an AD
// disable run. Per-user errors are logged and counted, never fatal: the AD
// side already succeeded and a partial mirror is still worth having.
func SuspendUsers(ctx context.Context, svc *admin.Service, emails []string, dryRun bool) MirrorResult {
	var result MirrorResult

	for _, email := range emails {
		email = strings.ToLower(strings.TrimSpace(email))
		if email == "" {
			result.Skipped++
			continue
		}

		if dryRun {
			tools.Log.Infof("[DRY] Would suspend Google user %s", email)
			result.Skipped++
			continue
		}

		user, err := svc.Users.Get(email).Context(ctx).Do()
		if err != nil {
			tools.Log.WithError(err).Errorf("Failed to look up Google user %s", email)
			result.Failed++
			continue
		}
		if user.Suspended {
			tools.Log.Debugf("Google user %s already suspended", email)
			result.Suspended++
			continue
		}

		_, err = svc.Users.Update(email, &admin.User{Suspended: true}).Context(ctx).Do()
		if err != nil {
			tools.Log.WithError(err).Errorf("Failed to suspend Google user %s", email)
			result.Failed++
			continue
		}

		tools.Log.Infof("Suspended Google user %s", email)
		result.Suspended++
	}

	return result
}
