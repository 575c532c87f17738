package cli

import (
	"github.com/opsdesk/stalesweep/internal/active_directory"
	"github.com/opsdesk/stalesweep/internal/ldapclient"
)

// ldapDirectory adapts the live LDAP client to the executor's mutation
// interfaces.
type ldapDirectory struct {
	client *ldapclient.Client
}

func (d ldapDirectory) Disable(dn string) error {
	return active_directory.DisableAccount(d.client, dn)
}

func (d ldapDirectory) Move(dn, targetOU string) error {
	return active_directory.MoveAccount(d.client, dn, targetOU)
}

func (d ldapDirectory) ResetPassword(sam, newPassword string) error {
	account, err := active_directory.FindAccountBySAM(d.client, sam)
	if err != nil {
		return err
	}
	return active_directory.ResetPassword(d.client, account.DN, newPassword)
}
