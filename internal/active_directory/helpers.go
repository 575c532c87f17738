package active_directory

import (
	"strconv"
	"strings"
	"time"
)

// Windows FILETIME counts 100ns intervals since 1601-01-01; the offset to
// the Unix epoch is 11644473600 seconds.
const filetimeEpochOffset = 11644473600

func NormalizeDN(dn string) string {
	return strings.ToLower(strings.TrimSpace(dn))
}

// ParentContainer returns the DN of the object's parent (the OU or container
// holding it).
func ParentContainer(dn string) string {
	parts := strings.SplitN(dn, ",", 2)
	if len(parts) < 2 {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// RDN returns the leading relative DN component, e.g. "CN=jdoe".
func RDN(dn string) string {
	return strings.TrimSpace(strings.SplitN(dn, ",", 2)[0])
}

// parseFileTime decodes attributes like lastLogonTimestamp. Zero or missing
// values mean the account never logged on, reported as nil.
func parseFileTime(s string) *time.Time {
	if s == "" || s == "0" {
		return nil
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil || v == 0 {
		return nil
	}
	t := time.Unix(v/1e7-filetimeEpochOffset, (v%1e7)*100).UTC()
	return &t
}

// parseGeneralizedTime decodes whenCreated values ("20060102150405.0Z").
func parseGeneralizedTime(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse("20060102150405.0Z", s)
	if err != nil {
		return time.Time{}
	}
	return t.UTC()
}

func isAccountDisabled(uac string) bool {
	val, err := strconv.Atoi(uac)
	if err != nil {
		return false
	}
	return val&uacAccountDisable != 0
}

func shouldExcludeOU(dn string, excludeOUs []string) bool {
	lowerDN := strings.ToLower(dn)
	for _, ou := range excludeOUs {
		if strings.Contains(lowerDN, strings.ToLower(ou)) {
			return true
		}
	}
	return false
}
