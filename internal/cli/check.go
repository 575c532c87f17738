package cli

import (
	"fmt"
	"time"

	"github.com/go-ldap/ldap/v3"
	"github.com/spf13/cobra"

	"github.com/opsdesk/stalesweep/tools"
)

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Verify directory connectivity",
		Long:  "Resolves, connects, binds, and reads the root DSE, reporting round-trip timing.",
		RunE: func(_ *cobra.Command, _ []string) error {
			start := time.Now()
			client, err := connect()
			if err != nil {
				return err
			}
			defer client.Close()
			bindTime := time.Since(start)

			searchReq := ldap.NewSearchRequest(
				"",
				ldap.ScopeBaseObject,
				ldap.NeverDerefAliases,
				0, 0, false,
				"(objectClass=*)",
				[]string{"defaultNamingContext", "dnsHostName"},
				nil,
			)

			searchStart := time.Now()
			result, err := client.Conn.Search(searchReq)
			if err != nil {
				return fmt.Errorf("root DSE read failed: %w", err)
			}
			searchTime := time.Since(searchStart)

			host, namingContext := "", ""
			if len(result.Entries) > 0 {
				host = result.Entries[0].GetAttributeValue("dnsHostName")
				namingContext = result.Entries[0].GetAttributeValue("defaultNamingContext")
			}

			tools.Log.WithFields(map[string]interface{}{
				"host":   host,
				"naming": namingContext,
				"bind":   bindTime.Round(time.Millisecond).String(),
				"search": searchTime.Round(time.Millisecond).String(),
			}).Info("Directory connectivity OK")

			return nil
		},
	}
}
