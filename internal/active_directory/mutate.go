package active_directory

import (
	"fmt"
	"strconv"

	"github.com/go-ldap/ldap/v3"
	"golang.org/x/text/encoding/unicode"

	"github.com/opsdesk/stalesweep/internal/ldapclient"
	"github.com/opsdesk/stalesweep/tools"
)

const uacAccountDisable = 0x2

// DisableAccount sets the ACCOUNTDISABLE bit on the account's
// userAccountControl. Disabling an already-disabled account is a no-op
// success.
func DisableAccount(client *ldapclient.Client, dn string) error {
	searchReq := ldap.NewSearchRequest(
		dn,
		ldap.ScopeBaseObject,
		ldap.NeverDerefAliases,
		1, 0, false,
		"(objectClass=*)",
		[]string{"userAccountControl"},
		nil,
	)

	result, err := client.Conn.Search(searchReq)
	if err != nil {
		return fmt.Errorf("failed to read userAccountControl for %s: %w", dn, err)
	}
	if len(result.Entries) == 0 {
		return fmt.Errorf("%w: %s", ErrAccountNotFound, dn)
	}

	uac, err := strconv.Atoi(result.Entries[0].GetAttributeValue("userAccountControl"))
	if err != nil {
		return fmt.Errorf("unparseable userAccountControl on %s: %w", dn, err)
	}

	if uac&uacAccountDisable != 0 {
		tools.Log.WithField("dn", dn).Debug("Account already disabled")
		return nil
	}

	modReq := ldap.NewModifyRequest(dn, nil)
	modReq.Replace("userAccountControl", []string{strconv.Itoa(uac | uacAccountDisable)})

	if err := client.Conn.Modify(modReq); err != nil {
		return fmt.Errorf("failed to disable %s: %w", dn, err)
	}

	return nil
}

// MoveAccount relocates the account into targetOU, keeping its RDN.
func MoveAccount(client *ldapclient.Client, dn, targetOU string) error {
	modDNReq := ldap.NewModifyDNRequest(dn, RDN(dn), true, targetOU)

	if err := client.Conn.ModifyDN(modDNReq); err != nil {
		return fmt.Errorf("failed to move %s to %s: %w", dn, targetOU, err)
	}

	return nil
}

// ResetPassword replaces the account's password via the unicodePwd
// attribute. AD requires the new value quoted and UTF-16LE encoded, and the
// connection must be privileged enough for an administrative reset.
func ResetPassword(client *ldapclient.Client, dn, newPassword string) error {
	encoder := unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewEncoder()
	encoded, err := encoder.String(`"` + newPassword + `"`)
	if err != nil {
		return fmt.Errorf("failed to encode password for %s: %w", dn, err)
	}

	modReq := ldap.NewModifyRequest(dn, nil)
	modReq.Replace("unicodePwd", []string{encoded})

	if err := client.Conn.Modify(modReq); err != nil {
		return fmt.Errorf("failed to reset password for %s: %w", dn, err)
	}

	return nil
}

// ValidateContainer confirms that dn exists and is an OU or container.
// Callers depending on a target container run this before mutating anything.
func ValidateContainer(client *ldapclient.Client, dn string) error {
	searchReq := ldap.NewSearchRequest(
		dn,
		ldap.ScopeBaseObject,
		ldap.NeverDerefAliases,
		1, 0, false,
		"(|(objectClass=organizationalUnit)(objectClass=container))",
		[]string{"distinguishedName"},
		nil,
	)

	result, err := client.Conn.Search(searchReq)
	if err != nil {
		if ldapErr, ok := err.(*ldap.Error); ok && ldapErr.ResultCode == ldap.LDAPResultNoSuchObject {
			return fmt.Errorf("%w: %s does not exist", ErrInvalidTargetContainer, dn)
		}
		return fmt.Errorf("%w: cannot verify %s: %v", ldapclient.ErrDirectoryUnavailable, dn, err)
	}
	if len(result.Entries) == 0 {
		return fmt.Errorf("%w: %s is not an OU or container", ErrInvalidTargetContainer, dn)
	}

	return nil
}
