package command

import (
	"fmt"
	"os"

	"github.com/pixil98/go-errors"

	"github.com/kingsmud/kings/internal/content"
)

type ContentConfig struct {
	Path string `json:"path"`
}

func (c *ContentConfig) validate() error {
	el := errors.NewErrorList()

	if c.Path == "" {
		el.Add(fmt.Errorf("path is required"))
	} else if info, err := os.Stat(c.Path); err != nil {
		el.Add(fmt.Errorf("content path: %w", err))
	} else if !info.IsDir() {
		el.Add(fmt.Errorf("content path %q is not a directory", c.Path))
	}

	return el.Err()
}

func (c *ContentConfig) BuildStore() (*content.Store, error) {
	return content.NewStore(c.Path)
}
