package platform

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// rcFileName is the credentials file written by `serverless login`.
const rcFileName = ".serverlessrc"

type rcFile struct {
	UserID string            `json:"userId"`
	Users  map[string]rcUser `json:"users"`
}

type rcUser struct {
	Dashboard struct {
		AccessKeys map[string]string `json:"accessKeys"`
	} `json:"dashboard"`
}

// AccessKeyForTenant returns the access key for tenant. A configured access key wins
// over the rc file.
func (c *Client) AccessKeyForTenant(_ context.Context, tenant string) (string, error) {
	if c.accessKey != "" {
		return c.accessKey, nil
	}

	path, err := c.rcPath()
	if err != nil {
		return "", err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("no access key for tenant %q, run `serverless login`: %w", tenant, err)
	}

	var rc rcFile
	if err := json.Unmarshal(data, &rc); err != nil {
		return "", fmt.Errorf("parsing %s: %w", path, err)
	}

	user, ok := rc.Users[rc.UserID]
	if !ok {
		return "", fmt.Errorf("no logged in user in %s, run `serverless login`", path)
	}
	key := user.Dashboard.AccessKeys[tenant]
	if key == "" {
		return "", fmt.Errorf("no access key for tenant %q in %s", tenant, path)
	}
	return key, nil
}

func (c *Client) rcPath() (string, error) {
	if c.rcFile != "" {
		return c.rcFile, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("locating home directory: %w", err)
	}
	return filepath.Join(home, rcFileName), nil
}
