package providers

import (
	"fmt"
	"github.com/gookit/validate"
	"mindmate/internal/structures"
	"strings"
)

type CnfValidator struct {
	conf *structures.Config
}

func NewCnfValidator(conf *structures.Config) *CnfValidator {
	return &CnfValidator{conf: conf}
}

func (c *CnfValidator) Validate() error {
	v := validate.Struct(c.conf)
	if !v.Validate() {
		return fmt.Errorf("invalid configuration: %s", v.Errors.One())
	}

	scheme, _, ok := strings.Cut(c.conf.Backend.BaseURL, "://")
	if !ok || (scheme != "http" && scheme != "https") {
		return fmt.Errorf("invalid configuration: backend.baseUrl must be an http(s) URL, got %q", c.conf.Backend.BaseURL)
	}
	return nil
}
