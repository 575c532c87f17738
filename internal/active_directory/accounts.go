package active_directory

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-ldap/ldap/v3"

	"github.com/opsdesk/stalesweep/internal/ldapclient"
	"github.com/opsdesk/stalesweep/tools"
)

// Kind selects which account class a query returns.
type Kind string

const (
	KindUser     Kind = "User"
	KindComputer Kind = "Computer"
	KindAny      Kind = "Any"
)

// ParseKind maps a CLI value onto a Kind.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "user", "users":
		return KindUser, nil
	case "computer", "computers":
		return KindComputer, nil
	case "", "any", "all":
		return KindAny, nil
	}
	return "", fmt.Errorf("unknown account kind %q (want user, computer or all)", s)
}

// Account represents an AD user or computer object with the activity
// metadata needed for staleness decisions.
type Account struct {
	SAMAccountName string
	Kind           Kind
	CN             string
	DN             string
	GUID           string
	Email          string
	Container      string
	LastActivity   *time.Time // nil means the account never logged on
	WhenCreated    time.Time
	Enabled        bool
	UACFlags       []string
}

var accountAttributes = []string{
	"cn", "sAMAccountName", "distinguishedName", "objectGUID", "mail",
	"lastLogonTimestamp", "whenCreated", "userAccountControl", "objectClass",
}

// ListAccounts returns every account of the given kind under searchBase with
// its activity metadata. Accounts inside any of the excluded OUs are skipped.
func ListAccounts(client *ldapclient.Client, kind Kind, searchBase string, excludeOUs []string) ([]Account, error) {
	if searchBase == "" {
		searchBase = client.BaseDN
	}

	searchReq := ldap.NewSearchRequest(
		searchBase,
		ldap.ScopeWholeSubtree,
		ldap.NeverDerefAliases,
		0, 0, false,
		kindFilter(kind),
		accountAttributes,
		nil,
	)

	result, err := client.Conn.Search(searchReq)
	if err != nil {
		return nil, fmt.Errorf("%w: account search failed: %v", ldapclient.ErrDirectoryUnavailable, err)
	}

	var accounts []Account
	for _, entry := range result.Entries {
		dn := entry.GetAttributeValue("distinguishedName")
		if dn == "" {
			dn = entry.DN
		}
		if shouldExcludeOU(dn, excludeOUs) {
			continue
		}
		accounts = append(accounts, entryToAccount(entry, dn))
	}

	tools.Log.WithFields(map[string]interface{}{
		"base":  searchBase,
		"kind":  string(kind),
		"count": len(accounts),
	}).Debug("Account search complete")

	return accounts, nil
}

// SearchUsers returns enabled user accounts matching the attribute filter
// map. Values are equality matches; an empty value means the attribute must
// be absent.
func SearchUsers(client *ldapclient.Client, filterMap map[string]string) ([]Account, error) {
	filterParts := []string{"(objectClass=user)", "(objectCategory=person)",
		"(!(userAccountControl:1.2.840.113556.1.4.803:=2))"}

	for attr, value := range filterMap {
		if value == "" {
			filterParts = append(filterParts, fmt.Sprintf("(!(%s=*))", ldap.EscapeFilter(attr)))
		} else {
			filterParts = append(filterParts, fmt.Sprintf("(%s=%s)", ldap.EscapeFilter(attr), ldap.EscapeFilter(value)))
		}
	}

	searchReq := ldap.NewSearchRequest(
		client.BaseDN,
		ldap.ScopeWholeSubtree,
		ldap.NeverDerefAliases,
		0, 0, false,
		fmt.Sprintf("(&%s)", strings.Join(filterParts, "")),
		accountAttributes,
		nil,
	)

	result, err := client.Conn.Search(searchReq)
	if err != nil {
		return nil, fmt.Errorf("%w: user search failed: %v", ldapclient.ErrDirectoryUnavailable, err)
	}

	var accounts []Account
	for _, entry := range result.Entries {
		dn := entry.GetAttributeValue("distinguishedName")
		if dn == "" {
			dn = entry.DN
		}
		accounts = append(accounts, entryToAccount(entry, dn))
	}

	return accounts, nil
}

// FindAccountBySAM resolves a single account by sAMAccountName.
func FindAccountBySAM(client *ldapclient.Client, sam string) (*Account, error) {
	searchReq := ldap.NewSearchRequest(
		client.BaseDN,
		ldap.ScopeWholeSubtree,
		ldap.NeverDerefAliases,
		1, 0, false,
		fmt.Sprintf("(sAMAccountName=%s)", ldap.EscapeFilter(sam)),
		accountAttributes,
		nil,
	)

	result, err := client.Conn.Search(searchReq)
	if err != nil {
		return nil, fmt.Errorf("%w: lookup of %s failed: %v", ldapclient.ErrDirectoryUnavailable, sam, err)
	}
	if len(result.Entries) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrAccountNotFound, sam)
	}

	entry := result.Entries[0]
	dn := entry.GetAttributeValue("distinguishedName")
	if dn == "" {
		dn = entry.DN
	}
	account := entryToAccount(entry, dn)
	return &account, nil
}

func kindFilter(kind Kind) string {
	switch kind {
	case KindUser:
		return "(&(objectClass=user)(objectCategory=person))"
	case KindComputer:
		return "(objectCategory=computer)"
	default:
		return "(|(&(objectClass=user)(objectCategory=person))(objectCategory=computer))"
	}
}

func entryToAccount(entry *ldap.Entry, dn string) Account {
	uac := entry.GetAttributeValue("userAccountControl")

	return Account{
		SAMAccountName: entry.GetAttributeValue("sAMAccountName"),
		Kind:           entryKind(entry),
		CN:             entry.GetAttributeValue("cn"),
		DN:             dn,
		GUID:           tools.FormatGUID(entry.GetRawAttributeValue("objectGUID")),
		Email:          entry.GetAttributeValue("mail"),
		Container:      ParentContainer(dn),
		LastActivity:   parseFileTime(entry.GetAttributeValue("lastLogonTimestamp")),
		WhenCreated:    parseGeneralizedTime(entry.GetAttributeValue("whenCreated")),
		Enabled:        !isAccountDisabled(uac),
		UACFlags:       tools.DecodeUserAccountControlFlags(uac),
	}
}

func entryKind(entry *ldap.Entry) Kind {
	for _, class := range entry.GetAttributeValues("objectClass") {
		if strings.EqualFold(class, "computer") {
			return KindComputer
		}
	}
	return KindUser
}
