package ldapclient

import (
	"errors"
	"fmt"
	"net"

	"github.com/go-ldap/ldap/v3"

	"github.com/opsdesk/stalesweep/internal/config"
	"github.com/opsdesk/stalesweep/tools"
)

// ErrDirectoryUnavailable marks connection-level failures: the directory
// cannot be reached or refuses the bind. Callers treat it as fatal.
var ErrDirectoryUnavailable = errors.New("directory unavailable")

// Conn is the slice of *ldap.Conn the rest of the repo needs. Tests
// substitute fakes the same way remediate.Directory does.
type Conn interface {
	Search(*ldap.SearchRequest) (*ldap.SearchResult, error)
	Modify(*ldap.ModifyRequest) error
	ModifyDN(*ldap.ModifyDNRequest) error
	Add(*ldap.AddRequest) error
	Close() error
}

type Client struct {
	Conn   Conn
	BaseDN string
}

// Connect resolves the LDAP hostname to an IP and returns a bound Client.
// The configured timeout applies to every subsequent operation on the
// connection.
func Connect(cfg config.Settings) (*Client, error) {
	addrs, err := net.LookupHost(cfg.Server)
	if err != nil || len(addrs) == 0 {
		return nil, fmt.Errorf("%w: DNS lookup failed for %s: %v", ErrDirectoryUnavailable, cfg.Server, err)
	}
	ip := addrs[0]

	tools.Log.WithFields(map[string]interface{}{
		"host": cfg.Server,
		"ip":   ip,
		"port": cfg.Port,
	}).Debug("Resolved LDAP server IP")

	url := fmt.Sprintf("ldap://%s:%s", ip, cfg.Port)
	conn, err := ldap.DialURL(url)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to connect to %s: %v", ErrDirectoryUnavailable, url, err)
	}

	if cfg.Timeout > 0 {
		conn.SetTimeout(cfg.Timeout)
	}

	if err := conn.Bind(cfg.BindDN, cfg.Password); err != nil {
		conn.Close()
		return nil, fmt.Errorf("%w: failed to bind as %s: %v", ErrDirectoryUnavailable, cfg.BindDN, err)
	}

	tools.Log.Debug("Successfully bound to LDAP")

	return &Client{
		Conn:   conn,
		BaseDN: cfg.BaseDN,
	}, nil
}

// Close cleans up the connection
func (c *Client) Close() {
	if c.Conn != nil {
		c.Conn.Close()
		tools.Log.Debug("Closed LDAP connection")
	}
}
