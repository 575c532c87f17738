package active_directory

import (
	"errors"
	"fmt"

	"github.com/go-ldap/ldap/v3"

	"github.com/opsdesk/stalesweep/internal/ldapclient"
	"github.com/opsdesk/stalesweep/tools"
)

type Group struct {
	CN         string
	DN         string
	Email      string
	Members    []string
	ObjectGUID string
}

var groupAttributes = []string{"cn", "distinguishedName", "mail", "member", "objectGUID"}

func GetGroupByEmail(client *ldapclient.Client, email, baseDN string) (*Group, error) {
	return findGroup(client, fmt.Sprintf("(mail=%s)", ldap.EscapeFilter(email)), baseDN)
}

func GetGroupByCN(client *ldapclient.Client, cn, baseDN string) (*Group, error) {
	return findGroup(client, fmt.Sprintf("(cn=%s)", ldap.EscapeFilter(cn)), baseDN)
}

func findGroup(client *ldapclient.Client, filter, baseDN string) (*Group, error) {
	searchReq := ldap.NewSearchRequest(
		baseDN,
		ldap.ScopeSingleLevel,
		ldap.NeverDerefAliases,
		1, 0, false,
		filter,
		groupAttributes,
		nil,
	)

	result, err := client.Conn.Search(searchReq)
	if err != nil {
		return nil, fmt.Errorf("LDAP search error: %w", err)
	}
	if len(result.Entries) == 0 {
		return nil, fmt.Errorf("%w: %s under %s", ErrGroupNotFound, filter, baseDN)
	}

	entry := result.Entries[0]
	return &Group{
		CN:         entry.GetAttributeValue("cn"),
		DN:         entry.DN,
		Email:      entry.GetAttributeValue("mail"),
		Members:    entry.GetAttributeValues("member"),
		ObjectGUID: tools.FormatGUID(entry.GetRawAttributeValue("objectGUID")),
	}, nil
}

func CreateGroup(client *ldapclient.Client, cn, email, ou, label string) error {
	groupDN := fmt.Sprintf("CN=%s,%s", cn, ou)

	addReq := ldap.NewAddRequest(groupDN, nil)
	addReq.Attribute("objectClass", []string{"top", "group"})
	addReq.Attribute("cn", []string{cn})
	addReq.Attribute("sAMAccountName", []string{cn})
	addReq.Attribute("mail", []string{email})
	addReq.Attribute("displayName", []string{label})
	addReq.Attribute("description", []string{label + " distro group"})
	addReq.Attribute("groupType", []string{fmt.Sprint(0x00000008)})

	if err := client.Conn.Add(addReq); err != nil {
		tools.Log.WithFields(map[string]interface{}{
			"dn":    groupDN,
			"error": err,
		}).Error("Failed to create group")
		return fmt.Errorf("failed to create group: %w", err)
	}

	tools.Log.WithField("cn", cn).Info("Group created successfully")
	return nil
}

func EnsureGroupMailAttribute(client *ldapclient.Client, groupDN, expectedEmail string) error {
	searchReq := ldap.NewSearchRequest(
		groupDN,
		ldap.ScopeBaseObject,
		ldap.NeverDerefAliases,
		1, 0, false,
		"(objectClass=group)",
		[]string{"mail"},
		nil,
	)

	result, err := client.Conn.Search(searchReq)
	if err != nil {
		return fmt.Errorf("failed to search for group mail attribute: %w", err)
	}
	if len(result.Entries) == 0 {
		return fmt.Errorf("%w: no group at DN %s", ErrGroupNotFound, groupDN)
	}

	currentMail := result.Entries[0].GetAttributeValue("mail")
	if currentMail == expectedEmail {
		tools.Log.WithField("dn", groupDN).Debug("Mail attribute already correct")
		return nil
	}

	modReq := ldap.NewModifyRequest(groupDN, nil)
	if currentMail != "" {
		modReq.Replace("mail", []string{expectedEmail})
		tools.Log.WithFields(map[string]interface{}{
			"dn":    groupDN,
			"email": expectedEmail,
		}).Info("Replacing existing mail attribute")
	} else {
		modReq.Add("mail", []string{expectedEmail})
		tools.Log.WithFields(map[string]interface{}{
			"dn":    groupDN,
			"email": expectedEmail,
		}).Info("Adding mail attribute")
	}

	if err := client.Conn.Modify(modReq); err != nil {
		return fmt.Errorf("failed to update mail attribute: %w", err)
	}

	return nil
}

// EnsureGroupExists fetches the group by email, then CN, and creates it when
// neither lookup succeeds. Racing creators are tolerated by re-fetching on
// an entryAlreadyExists result.
func EnsureGroupExists(client *ldapclient.Client, cn, email, ou, label string) (*Group, error) {
	tools.Log.WithFields(map[string]interface{}{
		"cn":    cn,
		"email": email,
	}).Debug("Ensuring group exists")

	group, err := GetGroupByEmail(client, email, ou)
	if err == nil {
		tools.Log.WithField("cn", cn).Debug("Group found by email")
		return group, nil
	}

	group, errCN := GetGroupByCN(client, cn, ou)
	if errCN == nil {
		tools.Log.WithField("cn", cn).Debug("Group found by CN (mail may be missing)")
		if mailErr := EnsureGroupMailAttribute(client, group.DN, email); mailErr != nil {
			tools.Log.WithFields(map[string]interface{}{
				"cn":    cn,
				"error": mailErr,
			}).Warn("Failed to update mail attribute")
		}
		return group, nil
	}

	tools.Log.WithFields(map[string]interface{}{
		"cn":    cn,
		"email": email,
	}).Info("Group not found, creating new group")

	if err := CreateGroup(client, cn, email, ou, label); err != nil {
		var ldapErr *ldap.Error
		if errors.As(err, &ldapErr) && ldapErr.ResultCode == ldap.LDAPResultEntryAlreadyExists {
			tools.Log.WithField("cn", cn).Warn("Group already created by another process. Retrying fetch...")
		} else {
			return nil, fmt.Errorf("failed to create group: %w", err)
		}
	}

	group, err = GetGroupByEmail(client, email, ou)
	if err != nil {
		return nil, fmt.Errorf("group created but cannot be fetched: %w", err)
	}

	tools.Log.WithField("cn", cn).Info("Group creation confirmed")
	return group, nil
}

// AddGroupMember adds a member (by DN) to the group's "member" attribute.
func AddGroupMember(client *ldapclient.Client, groupDN, memberDN string) error {
	modReq := ldap.NewModifyRequest(groupDN, nil)
	modReq.Add("member", []string{memberDN})

	if err := client.Conn.Modify(modReq); err != nil {
		return fmt.Errorf("failed to add %s to group %s: %w", memberDN, groupDN, err)
	}

	return nil
}

// RemoveGroupMember removes a member (by DN) from the group's "member" attribute.
func RemoveGroupMember(client *ldapclient.Client, groupDN, memberDN string) error {
	modReq := ldap.NewModifyRequest(groupDN, nil)
	modReq.Delete("member", []string{memberDN})

	if err := client.Conn.Modify(modReq); err != nil {
		return fmt.Errorf("failed to remove %s from group %s: %w", memberDN, groupDN, err)
	}

	return nil
}
