package args

import (
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/UnboundID/scim/config"
	"github.com/UnboundID/scim/mapping"
)

// Mapping is the configuration options related to the mapping
// configuration document (§6).
type Mapping struct {
	ConfigPath string
}

// Parse loads and builds the mapping configuration at ConfigPath.
func (arg *Mapping) Parse() (*config.Result, error) {
	f, err := os.Open(arg.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("opening mapping configuration %q: %w", arg.ConfigPath, err)
	}
	defer f.Close()

	return config.Load(f)
}

// ResourceMapping loads the mapping configuration and returns the
// resource mapping for resourceName.
func (arg *Mapping) ResourceMapping(resourceName string) (*mapping.ResourceMapping, error) {
	result, err := arg.Parse()
	if err != nil {
		return nil, err
	}
	rm, ok := result.Mappings[strings.ToLower(resourceName)]
	if !ok {
		return nil, fmt.Errorf("mapping configuration %q declares no resource %q", arg.ConfigPath, resourceName)
	}
	return rm, nil
}

func (arg *Mapping) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "mapping-config",
			Usage:       "Absolute path to the XML mapping configuration document",
			EnvVars:     []string{"MAPPING_CONFIG"},
			Required:    true,
			Destination: &arg.ConfigPath,
		},
	}
}
